package digitalize

import (
	"context"

	"github.com/goliatone/go-digitalize/core"
	"github.com/goliatone/go-digitalize/models"
)

// Providers is the provider-activity endpoint namespace. The provider
// identity is configured once and reused for every emitted event. Like
// Orders, failures are logged and swallowed to nil.
type Providers struct {
	client       *Client
	providerType string
	identifier   string
	user         *core.ProviderUserRef
}

// Configure sets the provider identity and, optionally, the acting user for
// subsequent events. A nil user clears the previous one.
func (p *Providers) Configure(providerType string, identifier string, user *core.ProviderUserRef) {
	p.providerType = providerType
	p.identifier = identifier
	p.user = user
}

// EmitEvent records one activity for the configured provider. An empty or
// "now" date stamps the current time.
func (p *Providers) EmitEvent(ctx context.Context, eventType string, payload map[string]any, date string) *models.ProviderActivity {
	out, err := p.client.service.EmitProviderActivity(ctx, core.EmitActivityRequest{
		Provider: core.ProviderRef{
			Type:       p.providerType,
			Identifier: p.identifier,
		},
		User:      p.user,
		EventType: eventType,
		Payload:   payload,
		Date:      date,
	})
	if err != nil {
		p.client.logger.Error("providers: emit event failed", "type", eventType, "error", err)
		return nil
	}
	return out
}
