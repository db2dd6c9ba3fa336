package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

// Server owns the user-facing account endpoints: registration, login,
// profile, and the admin user listing.
type Server struct {
	Store *store.Store
	JWT   *TokenMaker
	Log   *zap.Logger
}

// Routes mounts under /users. Login and register take their own rate
// limiters so credential endpoints can be throttled independently.
func (s *Server) Routes(loginLimiter, registerLimiter *kit.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.With(registerLimiter.Middleware).Post("/register", s.register)
	r.With(loginLimiter.Middleware).Post("/login", s.login)

	r.Group(func(pr chi.Router) {
		pr.Use(RequireAuth(s.JWT))

		pr.Get("/profile", s.profile)
		pr.Put("/profile", s.updateProfile)
		pr.Get("/orders", s.myOrders)
		pr.With(RequireAdmin).Get("/", s.list)
		pr.Get("/{id}", s.get)
		pr.With(RequireAdmin).Put("/{id}", s.update)
	})

	return r
}

type registerReq struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	u, err := s.Store.CreateUser(req.Name, req.Email, req.Password, store.RoleCustomer)
	if errors.Is(err, store.ErrEmailExists) {
		kit.WriteError(w, r, http.StatusConflict, "Email already registered", "", nil)
		return
	}
	if err != nil {
		s.Log.Error("create user failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to register user", "", nil)
		return
	}

	token, err := s.JWT.New(u.ID, u.Email, u.Role, u.Name)
	if err != nil {
		s.Log.Error("token issue failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to register user", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusCreated, kit.Envelope{
		"message": "User registered successfully",
		"data":    kit.Envelope{"user": u, "token": token},
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	u, err := s.Store.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "Invalid email or password", "", nil)
		return
	}

	token, err := s.JWT.New(u.ID, u.Email, u.Role, u.Name)
	if err != nil {
		s.Log.Error("token issue failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Login failed", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Login successful",
		"data": kit.Envelope{
			"user":      u,
			"token":     token,
			"tokenType": "Bearer",
			"expiresIn": s.JWT.TTL().String(),
		},
	})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	u, ok := s.Store.User(id.ID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{"data": u})
}

type profileUpdateReq struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var req profileUpdateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	u, found, err := s.Store.UpdateUser(id.ID, store.UserUpdate{Name: req.Name, Email: req.Email})
	if errors.Is(err, store.ErrEmailExists) {
		kit.WriteError(w, r, http.StatusConflict, "Email already registered", "", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Profile updated successfully",
		"data":    u,
	})
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	orders := s.Store.OrdersByUser(id.ID)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(orders),
		"data":  orders,
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	users := s.Store.Users()
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(users),
		"data":  users,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}

	id, _ := IdentityFromContext(r.Context())
	if id.ID != userID && !id.IsAdmin() {
		kit.WriteError(w, r, http.StatusForbidden, "Access denied", "", nil)
		return
	}

	u, ok := s.Store.User(userID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{"data": u})
}

type userUpdateReq struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=customer admin"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}

	var req userUpdateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	u, found, uerr := s.Store.UpdateUser(userID, store.UserUpdate{Name: req.Name, Email: req.Email, Role: req.Role})
	if errors.Is(uerr, store.ErrEmailExists) {
		kit.WriteError(w, r, http.StatusConflict, "Email already registered", "", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "User updated successfully",
		"data":    u,
	})
}
