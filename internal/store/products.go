package store

// NewProduct carries the caller-supplied fields of a product. Price is the
// origin price; the display price, rating and review count are derived.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
	Category    string
	CategoryID  int
	Stock       int
	Image       string
	SKU         string
	Featured    bool
}

// ProductUpdate names the only fields an update may touch. Nil means
// "leave unchanged". Setting Price re-derives the display price.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	CategoryID  *int
	Stock       *int
	Image       *string
	SKU         *string
	Featured    *bool
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Product(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.productIndex(id)
	if i < 0 {
		return Product{}, false
	}
	return s.products[i], true
}

func (s *Store) ProductsByCategory(categoryID int) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) FeaturedProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) CreateProduct(np NewProduct) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := Product{
		ID:            s.nextProductID,
		Name:          np.Name,
		Description:   np.Description,
		Price:         np.Price * s.multiplier,
		OriginalPrice: np.Price,
		Currency:      s.currency,
		Category:      np.Category,
		CategoryID:    np.CategoryID,
		Stock:         np.Stock,
		Image:         np.Image,
		SKU:           np.SKU,
		Featured:      np.Featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextProductID++
	s.products = append(s.products, p)
	return p
}

func (s *Store) UpdateProduct(id int, up ProductUpdate) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return Product{}, false
	}

	p := &s.products[i]
	if up.Name != nil {
		p.Name = *up.Name
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.Price != nil {
		p.OriginalPrice = *up.Price
		p.Price = *up.Price * s.multiplier
	}
	if up.Category != nil {
		p.Category = *up.Category
	}
	if up.CategoryID != nil {
		p.CategoryID = *up.CategoryID
	}
	if up.Stock != nil {
		p.Stock = *up.Stock
	}
	if up.Image != nil {
		p.Image = *up.Image
	}
	if up.SKU != nil {
		p.SKU = *up.SKU
	}
	if up.Featured != nil {
		p.Featured = *up.Featured
	}
	p.UpdatedAt = s.now()

	return *p, true
}

func (s *Store) DeleteProduct(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true
}

// productIndex must be called with the lock held.
func (s *Store) productIndex(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
