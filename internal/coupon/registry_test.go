package coupon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemax/internal/coupon"
	"cinemax/internal/models"
)

func TestFindByCodeNormalizesCase(t *testing.T) {
	reg := coupon.NewStatic([]models.Coupon{
		{Code: "vip30", Type: models.CouponFixed, Value: 30.00},
	})

	for _, code := range []string{"VIP30", "vip30", "Vip30"} {
		c, ok := reg.FindByCode(code)
		require.True(t, ok, "lookup with %q", code)
		assert.Equal(t, "VIP30", c.Code)
		assert.Equal(t, 30.00, c.Value)
	}
}

func TestFindByCodeUnknown(t *testing.T) {
	reg := coupon.NewDefault()

	_, ok := reg.FindByCode("NOPE")
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	reg := coupon.NewDefault()

	estudante, ok := reg.FindByCode("ESTUDANTE")
	require.True(t, ok)
	assert.Equal(t, models.CouponPercentage, estudante.Type)
	assert.Equal(t, 20.0, estudante.Value)

	vip, ok := reg.FindByCode("VIP30")
	require.True(t, ok)
	assert.Equal(t, models.CouponFixed, vip.Type)
	assert.Equal(t, 30.00, vip.Value)

	frete, ok := reg.FindByCode("FRETE")
	require.True(t, ok)
	assert.Equal(t, 0.0, frete.Value)
}
