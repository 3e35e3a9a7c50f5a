package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cinemax/internal/catalog"
	"cinemax/internal/coupon"
	"cinemax/internal/logger"
	"cinemax/internal/models"
	"cinemax/internal/utils"
)

var (
	// ErrInvalidCoupon is returned when a coupon code is not in the registry.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrCouponAlreadyApplied is returned when the code is already in the cart.
	ErrCouponAlreadyApplied = errors.New("coupon already applied")
)

// Storage is the durable side channel for cart state. The snapshot is saved
// on every mutation and loaded once when the service is constructed. A
// missing or corrupt snapshot must load as an empty cart, never an error
// that kills the session.
type Storage interface {
	Load(ctx context.Context) (models.CartSnapshot, error)
	Save(ctx context.Context, snap models.CartSnapshot) error
}

// Options carries the pricing configuration for a cart session.
type Options struct {
	ConvenienceFee float64
	TaxRate        float64
	FeeWaiverCode  string
}

func DefaultOptions() Options {
	return Options{
		ConvenienceFee: 5.00,
		TaxRate:        0.0,
		FeeWaiverCode:  "FRETE",
	}
}

// ItemOptions overrides the catalog defaults when adding an item. Zero
// values fall back: price to the catalog price, quantity to 1, showtime to
// the movie's first showtime, date to today, theater to "Sala 1".
type ItemOptions struct {
	Price    float64
	Quantity int
	Showtime string
	Date     string
	Theater  string
	Seats    []string
}

const (
	fallbackShowtime = "19:00"
	fallbackTheater  = "Sala 1"
)

// Totals is a consistent view of all derived monetary figures, computed
// under a single lock acquisition.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	ConvenienceFee float64 `json:"convenience_fee"`
	Taxes          float64 `json:"taxes"`
	Total          float64 `json:"total"`
	TotalQuantity  int     `json:"total_quantity"`
}

// Service owns the cart line items and applied coupons for one session. All
// mutations flow through its methods; no other component touches the lists.
type Service struct {
	mu      sync.Mutex
	items   []models.CartItem
	coupons []models.Coupon

	catalog  catalog.Provider
	registry coupon.Registry
	storage  Storage
	logger   *logger.Logger
	opts     Options
}

// NewService builds a cart session, restoring any previously persisted
// state. A nil storage keeps the cart memory-only.
func NewService(cat catalog.Provider, reg coupon.Registry, storage Storage, log *logger.Logger, opts Options) *Service {
	s := &Service{
		catalog:  cat,
		registry: reg,
		storage:  storage,
		logger:   log,
		opts:     opts,
	}

	if storage != nil {
		snap, err := storage.Load(context.Background())
		if err != nil {
			if log != nil {
				log.Warn("CART", fmt.Sprintf("Failed to restore cart, starting empty: %v", err))
			}
		} else {
			s.items = snap.Items
			s.coupons = snap.Coupons
		}
	}

	return s
}

// AddItem looks up the movie and appends a line item built from the catalog
// entry with opts layered on top. If the cart already holds a line for the
// same (movie, showtime, date, theater) showing, that line's quantity is
// incremented instead. Returns false when the movie does not exist; callers
// must check the result.
func (s *Service) AddItem(movieID int, opts ItemOptions) bool {
	movie, ok := s.catalog.GetMovieByID(movieID)
	if !ok {
		if s.logger != nil {
			s.logger.Warn("CART", fmt.Sprintf("Movie %d not found in catalog", movieID))
		}
		return false
	}

	item := models.CartItem{
		ID:       utils.GenerateItemID(),
		MovieID:  movieID,
		Title:    movie.Title,
		Poster:   movie.Poster,
		Genre:    movie.Genre,
		Duration: movie.Duration,
		Rating:   movie.Rating,
		Price:    opts.Price,
		Quantity: opts.Quantity,
		Showtime: opts.Showtime,
		Date:     opts.Date,
		Theater:  opts.Theater,
		Seats:    opts.Seats,
		AddedAt:  time.Now(),
	}
	if item.Price == 0 {
		item.Price = movie.Price
	}
	// Line quantities are always >= 1; a zero or negative request means one
	// ticket, never a stored non-positive line.
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Showtime == "" {
		if len(movie.Showtimes) > 0 {
			item.Showtime = movie.Showtimes[0]
		} else {
			item.Showtime = fallbackShowtime
		}
	}
	if item.Date == "" {
		item.Date = time.Now().Format("2006-01-02")
	}
	if item.Theater == "" {
		item.Theater = fallbackTheater
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameShowing(item) {
			s.items[i].Quantity += item.Quantity
			s.persistLocked()
			if s.logger != nil {
				s.logger.LogCart("MERGE", s.items[i].ID, fmt.Sprintf("%s x%d", item.Title, s.items[i].Quantity))
			}
			return true
		}
	}

	s.items = append(s.items, item)
	s.persistLocked()
	if s.logger != nil {
		s.logger.LogCart("ADD", item.ID, fmt.Sprintf("%s %s %s x%d", item.Title, item.Date, item.Showtime, item.Quantity))
	}
	return true
}

// RemoveItem deletes the line with the given ID. No-op if absent.
func (s *Service) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeItemLocked(itemID)
}

func (s *Service) removeItemLocked(itemID string) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			if s.logger != nil {
				s.logger.LogCart("REMOVE", itemID, "line removed")
			}
			return
		}
	}
}

// UpdateQuantity sets a line's quantity directly. A quantity of zero or
// less removes the line. This is a direct in-place set: two lines for the
// same showing are never re-merged here, only AddItem merges.
func (s *Service) UpdateQuantity(itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeItemLocked(itemID)
		return
	}

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			s.persistLocked()
			return
		}
	}
}

// Clear empties both the item list and the applied coupons.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.coupons = nil
	s.persistLocked()
}

// ApplyCoupon resolves the code (case-insensitive) against the registry and
// appends it to the applied list. A code may be applied at most once.
func (s *Service) ApplyCoupon(code string) error {
	c, ok := s.registry.FindByCode(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidCoupon, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, applied := range s.coupons {
		if applied.Code == c.Code {
			return fmt.Errorf("%w: %s", ErrCouponAlreadyApplied, c.Code)
		}
	}

	s.coupons = append(s.coupons, *c)
	s.persistLocked()
	if s.logger != nil {
		s.logger.LogCart("COUPON", c.Code, c.Description)
	}
	return nil
}

// RemoveCoupon drops an applied coupon by code. No-op if absent.
func (s *Service) RemoveCoupon(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.coupons {
		if s.coupons[i].Code == code {
			s.coupons = append(s.coupons[:i], s.coupons[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Items returns a copy of the cart lines.
func (s *Service) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// AppliedCoupons returns a copy of the applied coupon list.
func (s *Service) AppliedCoupons() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}

func (s *Service) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Service) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalDiscount sums percentage coupons (clamped at 100%) against the
// subtotal, adds fixed coupons without an individual cap, and clamps the
// combined result to the subtotal so the net can never go negative.
func (s *Service) TotalDiscount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountLocked()
}

// ConvenienceFee is the flat per-order fee, zeroed when the fee-waiver
// coupon is applied.
func (s *Service) ConvenienceFee() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feeLocked()
}

func (s *Service) Taxes() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxesLocked()
}

func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Totals computes all derived figures in one consistent view.
func (s *Service) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity := 0
	for _, item := range s.items {
		quantity += item.Quantity
	}

	return Totals{
		Subtotal:       s.subtotalLocked(),
		Discount:       s.discountLocked(),
		ConvenienceFee: s.feeLocked(),
		Taxes:          s.taxesLocked(),
		Total:          s.totalLocked(),
		TotalQuantity:  quantity,
	}
}

// Snapshot copies the full cart state for order assembly.
func (s *Service) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.CartSnapshot{
		Items:   make([]models.CartItem, len(s.items)),
		Coupons: make([]models.Coupon, len(s.coupons)),
	}
	copy(snap.Items, s.items)
	copy(snap.Coupons, s.coupons)
	return snap
}

func (s *Service) subtotalLocked() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s *Service) discountLocked() float64 {
	subtotal := s.subtotalLocked()

	totalFixed := 0.0
	totalPercentage := 0.0
	for _, c := range s.coupons {
		switch c.Type {
		case models.CouponFixed:
			totalFixed += c.Value
		case models.CouponPercentage:
			totalPercentage += c.Value
		}
	}

	discount := 0.0
	if totalPercentage > 0 {
		if totalPercentage > 100 {
			totalPercentage = 100
		}
		discount += subtotal * totalPercentage / 100
	}
	discount += totalFixed

	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

func (s *Service) feeLocked() float64 {
	for _, c := range s.coupons {
		if c.Code == s.opts.FeeWaiverCode {
			return 0
		}
	}
	return s.opts.ConvenienceFee
}

func (s *Service) taxesLocked() float64 {
	taxable := s.subtotalLocked() - s.discountLocked()
	taxes := taxable * s.opts.TaxRate
	if taxes < 0 {
		return 0
	}
	return taxes
}

func (s *Service) totalLocked() float64 {
	total := s.subtotalLocked() - s.discountLocked() + s.feeLocked() + s.taxesLocked()
	if total < 0 {
		return 0
	}
	return total
}

// persistLocked writes the current state through the storage side channel.
// Persistence failures are logged, never surfaced: the in-memory cart stays
// authoritative for the session.
func (s *Service) persistLocked() {
	if s.storage == nil {
		return
	}

	snap := models.CartSnapshot{
		Items:   make([]models.CartItem, len(s.items)),
		Coupons: make([]models.Coupon, len(s.coupons)),
	}
	copy(snap.Items, s.items)
	copy(snap.Coupons, s.coupons)

	if err := s.storage.Save(context.Background(), snap); err != nil && s.logger != nil {
		s.logger.Error("CART", fmt.Sprintf("Failed to persist cart: %v", err))
	}
}
