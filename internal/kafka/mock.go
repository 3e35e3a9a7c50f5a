package kafka

import (
	"fmt"

	"cinemax/internal/logger"
	"cinemax/internal/models"
)

// MockProducer logs instead of publishing. Used when KAFKA_MOCK_MODE is set
// or no broker is configured.
type MockProducer struct {
	Logger *logger.Logger
}

func NewMockProducer(log *logger.Logger) *MockProducer {
	return &MockProducer{Logger: log}
}

func (m *MockProducer) PublishOrderConfirmed(order models.Order) error {
	if m.Logger != nil {
		m.Logger.LogKafka("MOCK", "order-confirmed", fmt.Sprintf("order %s total %.2f", order.ID, order.Total))
	}
	return nil
}

func (m *MockProducer) Close() error {
	return nil
}
