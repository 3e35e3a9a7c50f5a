package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemax/internal/api"
	"cinemax/internal/auth"
	"cinemax/internal/cart"
	"cinemax/internal/catalog"
	"cinemax/internal/checkout"
	"cinemax/internal/coupon"
	"cinemax/internal/kafka"
	"cinemax/internal/models"
	"cinemax/internal/orders/db"
	"cinemax/internal/utils"
)

type fakeUserStore struct {
	users  map[string]models.User
	orders []models.Order
}

func (f *fakeUserStore) SaveUser(user models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserStore) SaveOrder(order models.Order) error {
	f.orders = append(f.orders, order)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	movieCatalog := catalog.NewStatic([]models.Movie{
		{ID: 1, Title: "Dune", Showtimes: []string{"18:30"}, Price: 25.00, InTheater: true},
	})
	registry := coupon.NewStatic([]models.Coupon{
		{Code: "ESTUDANTE", Type: models.CouponPercentage, Value: 20},
	})

	cartSvc := cart.NewService(movieCatalog, registry, nil, nil, cart.DefaultOptions())
	authStore := auth.NewStore(&fakeUserStore{users: make(map[string]models.User)}, nil, 0)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	checkoutSvc := checkout.NewService(cartSvc, authStore, kafka.NewMockProducer(nil), nil, 0)

	h := &api.Handler{
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Auth:     authStore,
		Tokens:   tokens,
		Catalog:  movieCatalog,
	}
	return h.Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestListMovies(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, "GET", "/api/v1/movies", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestGetMovieNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, "GET", "/api/v1/movies/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestAddItem(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, "POST", "/api/v1/cart/items", "", map[string]interface{}{
		"movie_id": 1,
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, resp.Success)

	view := resp.Data.(map[string]interface{})
	items := view["items"].([]interface{})
	require.Len(t, items, 1)
	totals := view["totals"].(map[string]interface{})
	assert.Equal(t, 50.0, totals["subtotal"])
}

func TestAddItemUnknownMovie(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, "POST", "/api/v1/cart/items", "", map[string]interface{}{
		"movie_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyCouponErrors(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, "POST", "/api/v1/cart/coupons", "", map[string]string{"code": "NOPE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, "POST", "/api/v1/cart/coupons", "", map[string]string{"code": "ESTUDANTE"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, "POST", "/api/v1/cart/coupons", "", map[string]string{"code": "estudante"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, "POST", "/api/v1/checkout", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, "POST", "/api/v1/checkout", "garbage-token", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFullPurchaseFlow(t *testing.T) {
	router := newTestRouter(t)

	// Register and grab the session token.
	rec, resp := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	session := resp.Data.(map[string]interface{})
	token := session["token"].(string)
	require.NotEmpty(t, token)

	// Fill the cart.
	rec, _ = doJSON(t, router, "POST", "/api/v1/cart/items", "", map[string]interface{}{
		"movie_id": 1,
		"quantity": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, router, "POST", "/api/v1/cart/coupons", "", map[string]string{"code": "ESTUDANTE"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Empty-cart rejection does not apply; checkout confirms.
	rec, resp = doJSON(t, router, "POST", "/api/v1/checkout", token, map[string]interface{}{
		"method": "pix",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	order := resp.Data.(map[string]interface{})
	assert.Equal(t, "confirmed", order["status"])
	assert.Equal(t, 100.0, order["subtotal"])
	assert.Equal(t, 20.0, order["discount"])
	assert.Equal(t, 85.0, order["total"])

	// Cart resets after checkout.
	rec, resp = doJSON(t, router, "GET", "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := resp.Data.(map[string]interface{})
	assert.Empty(t, view["items"])
	assert.Empty(t, view["coupons"])

	// History shows the purchase, and an immediate re-checkout is rejected.
	rec, resp = doJSON(t, router, "GET", "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := resp.Data.([]interface{})
	require.Len(t, history, 1)

	rec, _ = doJSON(t, router, "POST", "/api/v1/checkout", token, map[string]interface{}{
		"method": "pix",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart")
}
