package review

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

// Server serves product reviews. Listing a product's reviews is public;
// writing and deleting require a token.
type Server struct {
	Store *store.Store
	JWT   *auth.TokenMaker
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/product/{id}", s.byProduct)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuth(s.JWT))

		pr.Get("/user/{id}", s.byUser)
		pr.Post("/", s.create)
		pr.Delete("/{id}", s.delete)
	})

	return r
}

func (s *Server) byProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}
	if _, ok := s.Store.Product(productID); !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}

	reviews := s.Store.ReviewsByProduct(productID)

	avg := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		avg = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count":         len(reviews),
		"averageRating": avg,
		"data":          reviews,
	})
}

func (s *Server) byUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", "", nil)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	if id.ID != userID && !id.IsAdmin() {
		kit.WriteError(w, r, http.StatusForbidden, "Access denied", "", nil)
		return
	}

	reviews := s.Store.ReviewsByUser(userID)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(reviews),
		"data":  reviews,
	})
}

type createReviewReq struct {
	ProductID int    `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	rv, err := s.Store.CreateReview(req.ProductID, id.ID, id.Name, req.Rating, req.Comment)
	if errors.Is(err, store.ErrProductNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "", nil)
		return
	}
	s.Log.Info("review created",
		zap.Int("review_id", rv.ID),
		zap.Int("product_id", rv.ProductID),
		zap.Int("rating", rv.Rating))

	kit.WriteSuccess(w, http.StatusCreated, kit.Envelope{
		"message": "Review created successfully",
		"data":    rv,
	})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Review not found", "", nil)
		return
	}

	rv, ok := s.Store.Review(reviewID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Review not found", "", nil)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	if rv.UserID != id.ID && !id.IsAdmin() {
		kit.WriteError(w, r, http.StatusForbidden, "Access denied", "You can only delete your own reviews", nil)
		return
	}

	if !s.Store.DeleteReview(reviewID) {
		kit.WriteError(w, r, http.StatusNotFound, "Review not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Review deleted successfully",
	})
}
