package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

// Server serves the product and category catalog. Reads are public;
// mutations require an admin token.
type Server struct {
	Store *store.Store
	JWT   *auth.TokenMaker
	Log   *zap.Logger
}

// ProductRoutes mounts under /products.
func (s *Server) ProductRoutes() http.Handler {
	r := chi.NewRouter()

	r.Group(func(pub chi.Router) {
		pub.Use(auth.OptionalAuth(s.JWT))

		pub.Get("/", s.listProducts)
		pub.Get("/featured", s.featuredProducts)
		pub.Get("/{id}", s.getProduct)
	})

	r.Group(func(adm chi.Router) {
		adm.Use(auth.RequireAuth(s.JWT), auth.RequireAdmin)

		adm.Post("/", s.createProduct)
		adm.Put("/{id}", s.updateProduct)
		adm.Delete("/{id}", s.deleteProduct)
	})

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q, details := ParseQuery(r.URL.Query())
	if details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	res := Run(s.Store.Products(), q)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"data":       res.Data,
		"pagination": res.Pagination,
	})
}

func (s *Server) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products := s.Store.FeaturedProducts()
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(products),
		"data":  products,
	})
}

type productWithReviews struct {
	store.Product
	Reviews []store.Review `json:"reviews"`
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	p, ok := s.Store.Product(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"data": productWithReviews{Product: p, Reviews: s.Store.ReviewsByProduct(id)},
	})
}

type createProductReq struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	CategoryID  int     `json:"categoryId"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image"`
	SKU         string  `json:"sku"`
	Featured    bool    `json:"featured"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	if req.Category == "" {
		req.Category = "Uncategorized"
	}
	if req.CategoryID == 0 {
		if c, ok := s.Store.CategoryByName(req.Category); ok {
			req.CategoryID = c.ID
		}
	}

	p := s.Store.CreateProduct(store.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Image:       req.Image,
		SKU:         req.SKU,
		Featured:    req.Featured,
	})
	s.Log.Info("product created", zap.Int("product_id", p.ID), zap.String("name", p.Name))

	kit.WriteSuccess(w, http.StatusCreated, kit.Envelope{
		"message": "Product created successfully",
		"data":    p,
	})
}

type updateProductReq struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	CategoryID  *int     `json:"categoryId"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	SKU         *string  `json:"sku"`
	Featured    *bool    `json:"featured"`
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	var req updateProductReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	p, ok := s.Store.UpdateProduct(id, store.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Image:       req.Image,
		SKU:         req.SKU,
		Featured:    req.Featured,
	})
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Product updated successfully",
		"data":    p,
	})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	if !s.Store.DeleteProduct(id) {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}
	s.Log.Info("product deleted", zap.Int("product_id", id))

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Product deleted successfully",
	})
}
