package gateway

import "context"

// Client defines an interface for the outbound delivery provider. This
// decouples the dispatch logic from the concrete provider transport.
type Client interface {
	// Send delivers body to phoneNumber and returns the provider-assigned
	// message identifier, or an error with the provider's message verbatim.
	Send(ctx context.Context, phoneNumber, body string) (providerID string, err error)
}
