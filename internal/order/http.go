package order

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

// Server serves order placement and tracking. Every route expects an
// authenticated caller; the mount point applies RequireAuth.
type Server struct {
	Store *store.Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.myOrders)
	r.With(auth.RequireAdmin).Get("/all", s.listAll)
	r.Get("/{id}", s.get)
	r.Post("/", s.create)
	r.With(auth.RequireAdmin).Put("/{id}/status", s.updateStatus)
	r.Post("/{id}/cancel", s.cancel)

	return r
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	orders := s.Store.OrdersByUser(id.ID)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(orders),
		"data":  orders,
	})
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	userID := 0
	if v := r.URL.Query().Get("userId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			kit.WriteValidationError(w, r, []string{"userId must be an integer"})
			return
		}
		userID = n
	}

	orders := s.Store.Orders(status, userID)
	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"count": len(orders),
		"data":  orders,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	o, ok := s.Store.Order(orderID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	if o.UserID != id.ID && !id.IsAdmin() {
		kit.WriteError(w, r, http.StatusForbidden, "Access denied", "You can only view your own orders", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{"data": o})
}

type itemReq struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

type createOrderReq struct {
	Items           []itemReq     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress store.Address `json:"shippingAddress"`
	PaymentMethod   string        `json:"paymentMethod"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	lines := make([]store.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, store.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	id, _ := auth.IdentityFromContext(r.Context())
	o, itemErrs := s.Store.PlaceOrder(id.ID, lines, req.ShippingAddress, req.PaymentMethod)
	if itemErrs != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Failed to create order", "", itemErrs)
		return
	}
	s.Log.Info("order placed",
		zap.Int("order_id", o.ID),
		zap.Int("user_id", id.ID),
		zap.Float64("total", o.Total))

	kit.WriteSuccess(w, http.StatusCreated, kit.Envelope{
		"message": "Order created successfully",
		"data":    o,
	})
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	var req statusReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error(), nil)
		return
	}
	if details := kit.CheckStruct(req); details != nil {
		kit.WriteValidationError(w, r, details)
		return
	}

	o, ok := s.Store.UpdateOrderStatus(orderID, req.Status)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	o, ok := s.Store.Order(orderID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	if o.UserID != id.ID {
		kit.WriteError(w, r, http.StatusForbidden, "Access denied", "You can only cancel your own orders", nil)
		return
	}

	o, cerr := s.Store.CancelOrder(orderID)
	if errors.Is(cerr, store.ErrNotCancellable) {
		kit.WriteError(w, r, http.StatusBadRequest, "Only pending orders can be cancelled", "", nil)
		return
	}
	if cerr != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", "", nil)
		return
	}

	kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
		"message": "Order cancelled successfully",
		"data":    o,
	})
}
