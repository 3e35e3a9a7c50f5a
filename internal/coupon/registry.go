package coupon

import (
	"strings"

	"cinemax/internal/models"
)

// Registry resolves coupon codes to discount rules. Lookups are
// case-insensitive; the returned coupon always carries the uppercase code.
type Registry interface {
	FindByCode(code string) (*models.Coupon, bool)
}

// Static is a fixed in-memory registry keyed by uppercase code.
type Static struct {
	coupons map[string]models.Coupon
}

func NewStatic(coupons []models.Coupon) *Static {
	r := &Static{coupons: make(map[string]models.Coupon, len(coupons))}
	for _, c := range coupons {
		c.Code = strings.ToUpper(c.Code)
		r.coupons[c.Code] = c
	}
	return r
}

// NewDefault builds the registry with the storefront's promotional codes.
func NewDefault() *Static {
	return NewStatic([]models.Coupon{
		{Code: "DESCONTO10", Type: models.CouponPercentage, Value: 10, Description: "10% off"},
		{Code: "PRIMEIRA", Type: models.CouponPercentage, Value: 15, Description: "15% off first purchase"},
		{Code: "ESTUDANTE", Type: models.CouponPercentage, Value: 20, Description: "20% student discount"},
		{Code: "VIP30", Type: models.CouponFixed, Value: 30.00, Description: "R$ 30 off"},
		{Code: "FRETE", Type: models.CouponPercentage, Value: 0, Description: "Convenience fee waived"},
	})
}

func (r *Static) FindByCode(code string) (*models.Coupon, bool) {
	c, ok := r.coupons[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}
	return &c, true
}
