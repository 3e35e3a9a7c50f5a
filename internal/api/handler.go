package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cinemax/internal/auth"
	"cinemax/internal/cart"
	"cinemax/internal/catalog"
	"cinemax/internal/checkout"
	"cinemax/internal/logger"
	"cinemax/internal/models"
	"cinemax/internal/utils"
)

type Handler struct {
	Cart     *cart.Service
	Checkout *checkout.Service
	Auth     *auth.Store
	Tokens   *auth.TokenManager
	Catalog  catalog.Provider
	Logger   *logger.Logger
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/movies", h.ListMovies)
		r.Get("/movies/{movieId}", h.GetMovie)

		r.Get("/cart", h.GetCart)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/items", h.AddItem)
		r.Patch("/cart/items/{itemId}", h.UpdateQuantity)
		r.Delete("/cart/items/{itemId}", h.RemoveItem)
		r.Post("/cart/coupons", h.ApplyCoupon)
		r.Delete("/cart/coupons/{code}", h.RemoveCoupon)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Get("/auth/me", h.Me)
			r.Get("/orders", h.ListOrders)
			r.Post("/checkout", h.CheckoutOrder)
		})
	})

	return r
}

// logRequests records method, path, status and latency for every request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Logger == nil {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(ww.Status()), time.Since(start).String())
	})
}

// requireSession rejects requests without a valid bearer session token.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractTokenFromRequest(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Unauthorized", err.Error()))
			return
		}
		if _, err := h.Tokens.Verify(token); err != nil {
			writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Unauthorized", err.Error()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------- CATALOG ----------------

func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Movies", h.Catalog.ListMovies()))
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid movie ID", err.Error()))
		return
	}

	movie, ok := h.Catalog.GetMovieByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Movie not found", ""))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Movie", movie))
}

// ---------------- CART ----------------

type cartView struct {
	Items   []models.CartItem `json:"items"`
	Coupons []models.Coupon   `json:"coupons"`
	Totals  cart.Totals       `json:"totals"`
}

func (h *Handler) cartView() cartView {
	return cartView{
		Items:   h.Cart.Items(),
		Coupons: h.Cart.AppliedCoupons(),
		Totals:  h.Cart.Totals(),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Cart", h.cartView()))
}

type addItemRequest struct {
	MovieID  int      `json:"movie_id"`
	Price    float64  `json:"price,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	Showtime string   `json:"showtime,omitempty"`
	Date     string   `json:"date,omitempty"`
	Theater  string   `json:"theater,omitempty"`
	Seats    []string `json:"seats,omitempty"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	ok := h.Cart.AddItem(req.MovieID, cart.ItemOptions{
		Price:    req.Price,
		Quantity: req.Quantity,
		Showtime: req.Showtime,
		Date:     req.Date,
		Theater:  req.Theater,
		Seats:    req.Seats,
	})
	if !ok {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Movie not found", ""))
		return
	}

	writeJSON(w, http.StatusCreated, utils.SuccessResponse("Item added", h.cartView()))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	h.Cart.UpdateQuantity(chi.URLParam(r, "itemId"), req.Quantity)
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Quantity updated", h.cartView()))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.Cart.RemoveItem(chi.URLParam(r, "itemId"))
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Item removed", h.cartView()))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear()
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Cart cleared", h.cartView()))
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Coupon code cannot be empty", ""))
		return
	}

	if err := h.Cart.ApplyCoupon(req.Code); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, cart.ErrCouponAlreadyApplied) {
			status = http.StatusConflict
		}
		writeJSON(w, status, utils.ErrorResponse("Could not apply coupon", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("Coupon applied", h.cartView()))
}

func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	h.Cart.RemoveCoupon(chi.URLParam(r, "code"))
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Coupon removed", h.cartView()))
}

// ---------------- AUTH ----------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Login failed", err.Error()))
		return
	}

	token, err := h.Tokens.Issue(*user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not issue session token", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("Logged in", sessionResponse{Token: token, User: user}))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Registration failed", err.Error()))
		return
	}

	token, err := h.Tokens.Issue(*user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not issue session token", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, utils.SuccessResponse("Registered", sessionResponse{Token: token, User: user}))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout()
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Logged out", nil))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.Auth.CurrentUser()
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Not signed in", ""))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Current user", user))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := h.Auth.CurrentUser()
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Not signed in", ""))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Purchase history", user.Purchases))
}

// ---------------- CHECKOUT ----------------

func (h *Handler) CheckoutOrder(w http.ResponseWriter, r *http.Request) {
	var payment models.PaymentData
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	order, err := h.Checkout.Checkout(r.Context(), payment)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Cart is empty", err.Error()))
		case errors.Is(err, checkout.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Not signed in", err.Error()))
		case errors.Is(err, checkout.ErrPaymentDeclined):
			writeJSON(w, http.StatusPaymentRequired, utils.ErrorResponse("Payment declined", err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Checkout failed", err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusCreated, utils.SuccessResponse("Order confirmed", order))
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
