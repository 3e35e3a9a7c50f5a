package qr_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemax/internal/models"
	"cinemax/internal/tickets/qr"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateOrderQR(t *testing.T) {
	gen := qr.NewGenerator("test-secret")

	order := models.Order{
		ID:        "order-1",
		Total:     55.00,
		User:      models.User{ID: "user-1"},
		CreatedAt: time.Now(),
		Status:    models.OrderConfirmed,
	}

	code, err := gen.GenerateOrderQR(order)
	require.NoError(t, err)
	require.NotEmpty(t, code)
	assert.True(t, bytes.HasPrefix(code, pngHeader), "QR output is a PNG image")
}

func TestGenerateOrderQRIsNonDeterministic(t *testing.T) {
	// The payload is encrypted with a random IV, so two codes for the same
	// order differ.
	gen := qr.NewGenerator("test-secret")
	order := models.Order{ID: "order-1", CreatedAt: time.Now()}

	first, err := gen.GenerateOrderQR(order)
	require.NoError(t, err)
	second, err := gen.GenerateOrderQR(order)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
