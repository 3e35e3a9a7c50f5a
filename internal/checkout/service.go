package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinemax/internal/cart"
	"cinemax/internal/kafka"
	"cinemax/internal/logger"
	"cinemax/internal/models"
	"cinemax/internal/utils"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotAuthenticated is returned when no user is signed in.
	ErrNotAuthenticated = errors.New("user is not authenticated")
	// ErrPaymentDeclined is returned by a rejecting Authorizer. The cart is
	// left untouched.
	ErrPaymentDeclined = errors.New("payment declined")
)

// Cart is the slice of the cart service the orchestrator needs.
type Cart interface {
	Snapshot() models.CartSnapshot
	Totals() cart.Totals
	Clear()
}

// AuthStore supplies the current user and the history-append callback.
type AuthStore interface {
	CurrentUser() *models.User
	AddPurchaseToHistory(order models.Order) error
}

// Authorizer is the pluggable payment-authorization step between
// precondition validation and order finalization. The default approves
// everything; no gateway rejection is modeled out of the box.
type Authorizer interface {
	Authorize(ctx context.Context, payment models.PaymentData, amount float64) error
}

// ApproveAll is the default Authorizer.
type ApproveAll struct{}

func (ApproveAll) Authorize(ctx context.Context, payment models.PaymentData, amount float64) error {
	return nil
}

// TicketIssuer generates the QR payload attached to a confirmed order.
type TicketIssuer interface {
	GenerateOrderQR(order models.Order) ([]byte, error)
}

// Service validates preconditions, assembles the immutable Order snapshot,
// records it to the user's purchase history, and resets the cart.
type Service struct {
	Cart       Cart
	Auth       AuthStore
	Publisher  kafka.Publisher
	Authorizer Authorizer
	Tickets    TicketIssuer
	Logger     *logger.Logger

	// Delay simulates payment-gateway latency between snapshot and
	// finalization.
	Delay time.Duration
}

func NewService(c Cart, auth AuthStore, publisher kafka.Publisher, log *logger.Logger, delay time.Duration) *Service {
	return &Service{
		Cart:       c,
		Auth:       auth,
		Publisher:  publisher,
		Authorizer: ApproveAll{},
		Logger:     log,
		Delay:      delay,
	}
}

// Checkout runs one purchase. Preconditions are checked in order: items
// first, then user. The order snapshot, including all monetary figures, is
// captured before the simulated delay, so a concurrent cart mutation during
// the suspended window cannot change the returned order.
func (s *Service) Checkout(ctx context.Context, payment models.PaymentData) (*models.Order, error) {
	snap := s.Cart.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user := s.Auth.CurrentUser()
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	totals := s.Cart.Totals()
	order := models.Order{
		ID:             utils.GenerateOrderID(),
		Items:          snap.Items,
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		ConvenienceFee: totals.ConvenienceFee,
		Taxes:          totals.Taxes,
		Total:          totals.Total,
		AppliedCoupons: snap.Coupons,
		PaymentData:    payment,
		User:           *user,
		CreatedAt:      time.Now(),
		Status:         models.OrderConfirmed,
	}

	if s.Authorizer != nil {
		if err := s.Authorizer.Authorize(ctx, payment, order.Total); err != nil {
			if s.Logger != nil {
				s.Logger.LogCheckout(order.ID, fmt.Sprintf("Payment declined: %v", err))
			}
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
	}

	// Simulated gateway round trip. No cancellation: once preconditions
	// pass, the checkout runs to completion.
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	if s.Tickets != nil {
		code, err := s.Tickets.GenerateOrderQR(order)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Error("CHECKOUT", fmt.Sprintf("QR generation failed for order %s: %v", order.ID, err))
			}
		} else {
			order.TicketCode = code
		}
	}

	if err := s.Auth.AddPurchaseToHistory(order); err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	s.Cart.Clear()

	if s.Publisher != nil {
		if err := s.Publisher.PublishOrderConfirmed(order); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Publish failed for order %s: %v", order.ID, err))
		}
	}

	if s.Logger != nil {
		s.Logger.LogCheckout(order.ID, fmt.Sprintf("Confirmed, total %.2f", order.Total))
	}
	return &order, nil
}
