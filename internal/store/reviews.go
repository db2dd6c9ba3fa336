package store

func (s *Store) ReviewsByProduct(productID int) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) ReviewsByUser(userID int) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, 0)
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Review(id int) (Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reviews {
		if r.ID == id {
			return r, true
		}
	}
	return Review{}, false
}

// CreateReview appends a review and recomputes the parent product's rating
// and review count in the same critical section.
func (s *Store) CreateReview(productID, userID int, userName string, rating int, comment string) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(productID) < 0 {
		return Review{}, ErrProductNotFound
	}

	r := Review{
		ID:        s.nextReviewID,
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	s.nextReviewID++
	s.reviews = append(s.reviews, r)

	s.recomputeRating(productID)
	return r, nil
}

// DeleteReview removes a review and recomputes the parent product's
// derived fields, so deletion keeps the rating invariant too.
func (s *Store) DeleteReview(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reviews {
		if r.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			s.recomputeRating(r.ProductID)
			return true
		}
	}
	return false
}

// recomputeRating derives rating and reviewCount from the current review
// set. Must be called with the lock held.
func (s *Store) recomputeRating(productID int) {
	i := s.productIndex(productID)
	if i < 0 {
		return
	}

	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}

	if count == 0 {
		s.products[i].Rating = 0
	} else {
		s.products[i].Rating = float64(sum) / float64(count)
	}
	s.products[i].ReviewCount = count
}
