package store

// Seed loads the sample catalog: four categories, a dozen products, two
// users (one admin) and a few reviews. Product ratings come out of the
// review recompute, never from seed literals.
func (s *Store) Seed() error {
	categories := []struct {
		name, description string
	}{
		{"Electronics", "Electronic devices and gadgets"},
		{"Audio", "Audio equipment and accessories"},
		{"Clothing", "Apparel and fashion items"},
		{"Home", "Home and kitchen appliances"},
	}
	for _, c := range categories {
		if _, err := s.CreateCategory(c.name, c.description); err != nil {
			return err
		}
	}

	products := []NewProduct{
		{Name: "Laptop", Description: "High-performance laptop with 16GB RAM", Price: 999.99, Category: "Electronics", CategoryID: 1, Stock: 50, SKU: "ELEC-001", Featured: true},
		{Name: "Smartphone", Description: "Latest smartphone with 5G capability and 128GB storage", Price: 699.99, Category: "Electronics", CategoryID: 1, Stock: 100, SKU: "ELEC-002", Featured: true},
		{Name: "Wireless Headphones", Description: "Premium noise-canceling wireless headphones", Price: 199.99, Category: "Audio", CategoryID: 2, Stock: 75, SKU: "AUDIO-001"},
		{Name: "Cotton T-Shirt", Description: "Comfortable cotton t-shirt in multiple colors", Price: 24.99, Category: "Clothing", CategoryID: 3, Stock: 200, SKU: "CLTH-001"},
		{Name: "Coffee Maker", Description: "Programmable coffee maker with 12-cup capacity", Price: 79.99, Category: "Home", CategoryID: 4, Stock: 30, SKU: "HOME-001", Featured: true},
		{Name: "Smart Watch", Description: "Fitness tracking smartwatch with heart rate monitor", Price: 299.99, Category: "Electronics", CategoryID: 1, Stock: 60, SKU: "ELEC-003"},
		{Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with Cherry MX switches", Price: 129.99, Category: "Electronics", CategoryID: 1, Stock: 80, SKU: "ELEC-006"},
		{Name: "Gaming Monitor", Description: "27-inch 144Hz gaming monitor with 1ms response", Price: 449.99, Category: "Electronics", CategoryID: 1, Stock: 35, SKU: "ELEC-007", Featured: true},
		{Name: "Bluetooth Speaker", Description: "Waterproof Bluetooth speaker with 20-hour battery", Price: 89.99, Category: "Audio", CategoryID: 2, Stock: 110, SKU: "AUDIO-002", Featured: true},
		{Name: "Wireless Earbuds", Description: "True wireless earbuds with active noise cancellation", Price: 149.99, Category: "Audio", CategoryID: 2, Stock: 180, SKU: "AUDIO-003"},
		{Name: "Denim Jacket", Description: "Classic denim jacket with modern fit", Price: 89.99, Category: "Clothing", CategoryID: 3, Stock: 75, SKU: "CLTH-002", Featured: true},
		{Name: "Running Shoes", Description: "Lightweight running shoes with responsive cushioning", Price: 129.99, Category: "Clothing", CategoryID: 3, Stock: 120, SKU: "CLTH-003"},
	}
	for _, p := range products {
		s.CreateProduct(p)
	}

	john, err := s.CreateUser("John Doe", "john@example.com", "password123", RoleCustomer)
	if err != nil {
		return err
	}
	jane, err := s.CreateUser("Jane Smith", "jane@example.com", "password123", RoleAdmin)
	if err != nil {
		return err
	}

	seedReviews := []struct {
		productID int
		user      User
		rating    int
		comment   string
	}{
		{1, john, 5, "Excellent laptop! Very fast and reliable."},
		{1, jane, 4, "Good performance, slightly expensive."},
		{2, john, 5, "Best smartphone ever!"},
	}
	for _, r := range seedReviews {
		if _, err := s.CreateReview(r.productID, r.user.ID, r.user.Name, r.rating, r.comment); err != nil {
			return err
		}
	}

	return nil
}
