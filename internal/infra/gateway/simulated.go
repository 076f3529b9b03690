package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SimulatedClient stands in for the real provider when no gateway is
// configured. Every send succeeds with a locally generated id, which keeps
// the scheduling pipeline functioning in degraded/offline mode.
type SimulatedClient struct {
	logger *logrus.Entry
}

func NewSimulatedClient(logger *logrus.Entry) *SimulatedClient {
	return &SimulatedClient{logger: logger}
}

func (c *SimulatedClient) Send(_ context.Context, phoneNumber, body string) (string, error) {
	providerID := "sim-" + uuid.NewString()
	c.logger.WithFields(logrus.Fields{
		"phone_number": phoneNumber,
		"provider_id":  providerID,
		"body_length":  len(body),
	}).Info("Simulated send (no gateway configured)")
	return providerID, nil
}
