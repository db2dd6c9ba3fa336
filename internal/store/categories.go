package store

import "strings"

type CategoryUpdate struct {
	Name        *string
	Description *string
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Category(id int) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return Category{}, false
	}
	return s.categories[i], true
}

func (s *Store) CategoryByName(name string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// CreateCategory enforces case-insensitive name uniqueness.
func (s *Store) CreateCategory(name, description string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return Category{}, ErrCategoryExists
		}
	}

	c := Category{
		ID:          s.nextCategoryID,
		Name:        name,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.nextCategoryID++
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) UpdateCategory(id int, up CategoryUpdate) (Category, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return Category{}, false, nil
	}

	if up.Name != nil {
		for j, c := range s.categories {
			if j != i && strings.EqualFold(c.Name, *up.Name) {
				return Category{}, true, ErrCategoryExists
			}
		}
		s.categories[i].Name = *up.Name
	}
	if up.Description != nil {
		s.categories[i].Description = *up.Description
	}

	return s.categories[i], true, nil
}

func (s *Store) DeleteCategory(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return false
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return true
}

// categoryIndex must be called with the lock held.
func (s *Store) categoryIndex(id int) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
