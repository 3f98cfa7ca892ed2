package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminAuthService struct {
	created []string
}

func (s *stubAdminAuthService) Login(email, password string) (string, error) {
	if password == "right" {
		return "token", nil
	}
	return "", errors.New("invalid credentials")
}

func (s *stubAdminAuthService) CreateAdmin(email, password string) error {
	s.created = append(s.created, email)
	return nil
}

func testRouter(authSvc *stubAdminAuthService) *mux.Router {
	return NewRouter(
		NewPublicHandler(nil, nil, nil),
		NewAdminHandler(nil, nil, nil, nil),
		NewInvoiceHandler(nil, nil, nil),
		NewAdminAuthHandler(authSvc),
	)
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"admin_id": 1,
		"email":    "admin@example.com",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRegisterRequiresAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	authSvc := &stubAdminAuthService{}
	router := testRouter(authSvc)

	body := `{"email":"intruder@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, authSvc.created)
}

func TestRegisterWithAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	authSvc := &stubAdminAuthService{}
	router := testRouter(authSvc)

	body := `{"email":"second@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/register", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "test-secret"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"second@example.com"}, authSvc.created)
}

func TestLoginStaysPublic(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := testRouter(&stubAdminAuthService{})

	body := `{"email":"admin@example.com","password":"right"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
}

func TestAdminEndpointsRejectMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := testRouter(&stubAdminAuthService{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/admin/bookings"},
		{http.MethodPut, "/admin/bookings/bk-1/status"},
		{http.MethodGet, "/admin/revenue"},
		{http.MethodDelete, "/admin/cars/car-1"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}
