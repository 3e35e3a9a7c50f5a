package models

import "time"

// CartItem is one purchasable line in the cart: a quantity of tickets for a
// specific movie/showtime/date/theater combination. Title, poster and the
// other display fields are denormalized from the catalog at add-time.
type CartItem struct {
	ID       string    `json:"id"`
	MovieID  int       `json:"movie_id"`
	Title    string    `json:"title"`
	Poster   string    `json:"poster"`
	Genre    string    `json:"genre"`
	Duration string    `json:"duration"`
	Rating   float64   `json:"rating"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Showtime string    `json:"showtime"`
	Date     string    `json:"date"`
	Theater  string    `json:"theater"`
	Seats    []string  `json:"seats,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// SameShowing reports whether two items refer to the same showing and would
// be merged into a single line by the cart.
func (i CartItem) SameShowing(other CartItem) bool {
	return i.MovieID == other.MovieID &&
		i.Showtime == other.Showtime &&
		i.Date == other.Date &&
		i.Theater == other.Theater
}

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

// Coupon is a named discount rule from a read-only registry. Codes are
// stored uppercase.
type Coupon struct {
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       float64    `json:"value"`
	Description string     `json:"description"`
}

// CartSnapshot is the persisted cart layout: the full item and coupon lists,
// written on every mutation and loaded once at session start.
type CartSnapshot struct {
	Items   []CartItem `json:"items"`
	Coupons []Coupon   `json:"coupons"`
}
