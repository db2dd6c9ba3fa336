package store

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

// Users returns all users with credentials stripped.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	for i, u := range s.users {
		u.PasswordHash = nil
		out[i] = u
	}
	return out
}

func (s *Store) User(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.userIndex(id)
	if i < 0 {
		return User{}, false
	}
	u := s.users[i]
	u.PasswordHash = nil
	return u, true
}

// CreateUser hashes the password and enforces case-insensitive email
// uniqueness. An empty role defaults to customer.
func (s *Store) CreateUser(name, email, password, role string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return User{}, ErrEmailExists
		}
	}

	now := s.now()
	u := User{
		ID:           s.nextUserID,
		UUID:         uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextUserID++
	s.users = append(s.users, u)

	u.PasswordHash = nil
	return u, nil
}

// VerifyCredentials compares the bcrypt hash without letting it escape.
func (s *Store) VerifyCredentials(email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	var u User
	found := false
	for _, c := range s.users {
		if strings.EqualFold(c.Email, email) {
			u = c
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	u.PasswordHash = nil
	return u, nil
}

func (s *Store) UpdateUser(id int, up UserUpdate) (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return User{}, false, nil
	}

	if up.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*up.Email))
		for j, u := range s.users {
			if j != i && strings.EqualFold(u.Email, email) {
				return User{}, true, ErrEmailExists
			}
		}
		s.users[i].Email = email
	}
	if up.Name != nil {
		s.users[i].Name = *up.Name
	}
	if up.Role != nil {
		s.users[i].Role = *up.Role
	}
	s.users[i].UpdatedAt = s.now()

	u := s.users[i]
	u.PasswordHash = nil
	return u, true, nil
}

// userIndex must be called with the lock held.
func (s *Store) userIndex(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
