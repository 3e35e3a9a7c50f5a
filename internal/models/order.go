package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is an immutable snapshot produced at checkout. All monetary figures
// are captured before the simulated payment delay, so a concurrent cart
// mutation can never change an in-flight order.
type Order struct {
	ID             string      `json:"id"`
	Items          []CartItem  `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Discount       float64     `json:"discount"`
	ConvenienceFee float64     `json:"convenience_fee"`
	Taxes          float64     `json:"taxes"`
	Total          float64     `json:"total"`
	AppliedCoupons []Coupon    `json:"applied_coupons"`
	PaymentData    PaymentData `json:"payment_data"`
	User           User        `json:"user"`
	CreatedAt      time.Time   `json:"created_at"`
	Status         OrderStatus `json:"status"`

	// TicketCode carries the encrypted QR payload issued after confirmation.
	TicketCode []byte `json:"ticket_code,omitempty"`
}

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
)

type PaymentData struct {
	Method   PaymentMethod `json:"method"`
	Personal PersonalData  `json:"personal"`
	Card     CardInfo      `json:"payment"`
}

type PersonalData struct {
	FullName  string `json:"full_name"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date,omitempty"`
}

type CardInfo struct {
	Number       string `json:"card_number,omitempty"`
	Expiry       string `json:"card_expiry,omitempty"`
	CVV          string `json:"card_cvv,omitempty"`
	HolderName   string `json:"card_name,omitempty"`
	Installments string `json:"installments,omitempty"`
}
