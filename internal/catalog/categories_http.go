package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

// CategoryRoutes mounts under /categories.
func (s *Server) CategoryRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.listCategories)
	r.Get("/{id}", s.getCategory)

	r.Group(func(adm chi.Router) {
		adm.Use(auth.RequireAuth(s.JWT), auth.RequireAdmin)

		adm.Post("/", s.createCategory)
		adm.Put("/{id}", s.updateCategory)
		adm.Delete("/{id}", s.deleteCategory)
	})

	return r
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.Store.Categories()
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(categories),
		"data":  categories,
	})
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	c, ok := s.Store.Category(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	products := s.Store.ProductsByCategory(id)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"data": kit.Envelope{
			"category":     c,
			"products":     products,
			"productCount": len(products),
		},
	})
}

type categoryReq struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=500"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	c, err := s.Store.CreateCategory(req.Name, req.Description)
	if errors.Is(err, store.ErrCategoryExists) {
		kit.WriteError(w, r, http.StatusConflict, "Category with this name already exists", "", nil)
		return
	}
	s.Log.Info("category created", zap.Int("category_id", c.ID), zap.String("name", c.Name))

	kit.WriteSuccess(w, http.StatusCreated, kit.Envelope{
		"message": "Category created successfully",
		"data":    c,
	})
}

type categoryUpdateReq struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	var req categoryUpdateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	c, found, uerr := s.Store.UpdateCategory(id, store.CategoryUpdate{Name: req.Name, Description: req.Description})
	if errors.Is(uerr, store.ErrCategoryExists) {
		kit.WriteError(w, r, http.StatusConflict, "Category with this name already exists", "", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Category updated successfully",
		"data":    c,
	})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	if !s.Store.DeleteCategory(id) {
		kit.WriteError(w, r, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Category deleted successfully",
	})
}
