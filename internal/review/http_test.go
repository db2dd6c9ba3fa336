package review

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/store"
)

type apiResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Error         string          `json:"error"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"averageRating"`
	Data          json.RawMessage `json:"data"`
	Details       []string        `json:"details"`
}

func newReviewServer(t *testing.T) (*httptest.Server, *store.Store, *auth.TokenMaker) {
	t.Helper()

	st := store.New("INR", 83)
	require.NoError(t, st.Seed())
	tm := auth.NewTokenMaker("test-secret", time.Hour)
	srv := &Server{Store: st, JWT: tm, Log: zap.NewNop()}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, st, tm
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, apiResponse) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func customerToken(t *testing.T, tm *auth.TokenMaker) string {
	t.Helper()
	token, err := tm.New(1, "john@example.com", store.RoleCustomer, "John Doe")
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, tm *auth.TokenMaker) string {
	t.Helper()
	token, err := tm.New(2, "jane@example.com", store.RoleAdmin, "Jane Smith")
	require.NoError(t, err)
	return token
}

func TestReviewsByProductIsPublic(t *testing.T) {
	ts, _, _ := newReviewServer(t)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/product/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, out.Count)
	require.Equal(t, 4.5, out.AverageRating)
}

func TestReviewsByProductRoundsAverage(t *testing.T) {
	ts, st, _ := newReviewServer(t)

	// Seeded ratings 5 and 4 plus two 3s average 3.75, reported as 3.8.
	_, err := st.CreateReview(1, 1, "John Doe", 3, "")
	require.NoError(t, err)
	_, err = st.CreateReview(1, 2, "Jane Smith", 3, "")
	require.NoError(t, err)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/product/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 4, out.Count)
	require.Equal(t, 3.8, out.AverageRating)
}

func TestReviewsByProductMissing(t *testing.T) {
	ts, _, _ := newReviewServer(t)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/product/999", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Product not found", out.Error)
}

func TestReviewsByUser(t *testing.T) {
	ts, _, tm := newReviewServer(t)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/user/1", customerToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, out.Count)

	resp, out = doJSON(t, http.MethodGet, ts.URL+"/user/2", customerToken(t, tm), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Access denied", out.Error)

	resp, out = doJSON(t, http.MethodGet, ts.URL+"/user/1", adminToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, out.Count)
}

func TestCreateReview(t *testing.T) {
	ts, st, tm := newReviewServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/", customerToken(t, tm), map[string]any{
		"productId": 3,
		"rating":    4,
		"comment":   "Great sound for the price",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Review created successfully", out.Message)

	var rv store.Review
	require.NoError(t, json.Unmarshal(out.Data, &rv))
	require.Equal(t, 1, rv.UserID)
	require.Equal(t, "John Doe", rv.UserName)

	p, _ := st.Product(3)
	require.Equal(t, 4.0, p.Rating)
	require.Equal(t, 1, p.ReviewCount)
}

func TestCreateReviewValidation(t *testing.T) {
	ts, _, tm := newReviewServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/", customerToken(t, tm), map[string]any{
		"productId": 3,
		"rating":    6,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Validation failed", out.Error)
}

func TestCreateReviewMissingProduct(t *testing.T) {
	ts, _, tm := newReviewServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/", customerToken(t, tm), map[string]any{
		"productId": 999,
		"rating":    5,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Product not found", out.Error)
}

func TestDeleteReviewOwnerOrAdmin(t *testing.T) {
	ts, st, tm := newReviewServer(t)

	// Review 2 belongs to Jane; John may not remove it.
	resp, out := doJSON(t, http.MethodDelete, ts.URL+"/2", customerToken(t, tm), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Access denied", out.Error)

	resp, out = doJSON(t, http.MethodDelete, ts.URL+"/1", customerToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Review deleted successfully", out.Message)

	// Admin can remove anyone's review; product 1 ends up unreviewed.
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/2", adminToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p, _ := st.Product(1)
	require.Equal(t, 0.0, p.Rating)
	require.Equal(t, 0, p.ReviewCount)
}

func TestDeleteReviewMissing(t *testing.T) {
	ts, _, tm := newReviewServer(t)

	resp, out := doJSON(t, http.MethodDelete, ts.URL+"/999", customerToken(t, tm), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Review not found", out.Error)
}
