package auth

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

	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Details []string        `json:"details"`
}

func newUserServer(t *testing.T) (*httptest.Server, *store.Store, *TokenMaker) {
	t.Helper()

	st := store.New("INR", 83)
	require.NoError(t, st.Seed())
	tm := NewTokenMaker("test-secret", time.Hour)

	srv := &Server{Store: st, JWT: tm, Log: zap.NewNop()}
	login := kit.NewIPRateLimiter(1000, time.Minute)
	register := kit.NewIPRateLimiter(1000, time.Minute)

	ts := httptest.NewServer(srv.Routes(login, register))
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

func customerToken(t *testing.T, tm *TokenMaker) string {
	t.Helper()
	token, err := tm.New(1, "john@example.com", store.RoleCustomer, "John Doe")
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, tm *TokenMaker) string {
	t.Helper()
	token, err := tm.New(2, "jane@example.com", store.RoleAdmin, "Jane Smith")
	require.NoError(t, err)
	return token
}

func TestRegister(t *testing.T) {
	ts, _, tm := newUserServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
		"name":     "Grace Hopper",
		"email":    "grace@example.com",
		"password": "secret99",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, out.Success)
	require.Equal(t, "User registered successfully", out.Message)

	var data struct {
		User  store.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, "grace@example.com", data.User.Email)
	require.Equal(t, store.RoleCustomer, data.User.Role)
	require.NotEmpty(t, data.User.UUID)

	c, err := tm.Parse(data.Token)
	require.NoError(t, err)
	require.Equal(t, data.User.ID, c.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts, _, _ := newUserServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
		"name":     "Impostor",
		"email":    "john@example.com",
		"password": "secret99",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.False(t, out.Success)
	require.Equal(t, "Email already registered", out.Error)
}

func TestRegisterValidation(t *testing.T) {
	ts, _, _ := newUserServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
		"name":     "G",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Validation failed", out.Error)
	require.Len(t, out.Details, 3)
}

func TestLogin(t *testing.T) {
	ts, _, tm := newUserServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]any{
		"email":    "john@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Login successful", out.Message)

	var data struct {
		Token     string `json:"token"`
		TokenType string `json:"tokenType"`
		ExpiresIn string `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, "Bearer", data.TokenType)
	require.Equal(t, tm.TTL().String(), data.ExpiresIn)

	_, err := tm.Parse(data.Token)
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	ts, _, _ := newUserServer(t)

	resp, out := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]any{
		"email":    "john@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid email or password", out.Error)
}

func TestAuthFailureClasses(t *testing.T) {
	ts, _, tm := newUserServer(t)

	expired, err := tm.NewWithTTL(1, "john@example.com", store.RoleCustomer, "John Doe", -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name      string
		header    string
		wantError string
	}{
		{"no token", "", "No token provided"},
		{"bad format", "Token abc", "Invalid token format"},
		{"expired", "Bearer " + expired, "Token expired"},
		{"garbage", "Bearer not.a.jwt", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/profile", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var out apiResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			require.Equal(t, tc.wantError, out.Error)
		})
	}
}

func TestProfile(t *testing.T) {
	ts, _, tm := newUserServer(t)
	token := customerToken(t, tm)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var u store.User
	require.NoError(t, json.Unmarshal(out.Data, &u))
	require.Equal(t, "john@example.com", u.Email)
}

func TestUpdateProfile(t *testing.T) {
	ts, st, tm := newUserServer(t)
	token := customerToken(t, tm)

	resp, out := doJSON(t, http.MethodPut, ts.URL+"/profile", token, map[string]any{
		"name": "Johnny Doe",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Profile updated successfully", out.Message)

	u, ok := st.User(1)
	require.True(t, ok)
	require.Equal(t, "Johnny Doe", u.Name)
	require.Equal(t, "john@example.com", u.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	ts, _, tm := newUserServer(t)
	token := customerToken(t, tm)

	resp, out := doJSON(t, http.MethodPut, ts.URL+"/profile", token, map[string]any{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "Email already registered", out.Error)
}

func TestListUsersIsAdminOnly(t *testing.T) {
	ts, _, tm := newUserServer(t)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/", customerToken(t, tm), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Access denied", out.Error)

	resp, out = doJSON(t, http.MethodGet, ts.URL+"/", adminToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, out.Count)
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	ts, _, tm := newUserServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/1", customerToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, out := doJSON(t, http.MethodGet, ts.URL+"/2", customerToken(t, tm), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Access denied", out.Error)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/1", adminToken(t, tm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminUpdateUserRole(t *testing.T) {
	ts, st, tm := newUserServer(t)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/1", adminToken(t, tm), map[string]any{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	u, ok := st.User(1)
	require.True(t, ok)
	require.Equal(t, store.RoleAdmin, u.Role)

	resp, out := doJSON(t, http.MethodPut, ts.URL+"/1", adminToken(t, tm), map[string]any{
		"role": "superuser",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Validation failed", out.Error)
}

func TestLoginRateLimit(t *testing.T) {
	st := store.New("INR", 83)
	require.NoError(t, st.Seed())
	tm := NewTokenMaker("test-secret", time.Hour)
	srv := &Server{Store: st, JWT: tm, Log: zap.NewNop()}

	login := kit.NewIPRateLimiter(2, time.Minute)
	register := kit.NewIPRateLimiter(1000, time.Minute)
	ts := httptest.NewServer(srv.Routes(login, register))
	t.Cleanup(ts.Close)

	body := map[string]any{"email": "john@example.com", "password": "password123"}
	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/login", "", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, out := doJSON(t, http.MethodPost, ts.URL+"/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "Too many requests", out.Error)
}
