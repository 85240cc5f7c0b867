package llm

import (
	"context"
	"fmt"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/registry"
)

// Dispatcher routes a vendor-neutral request to the right vendor client
// based on the model registry. Both clients are constructed once at process
// start and injected here.
type Dispatcher struct {
	openai    Client
	anthropic Client
}

func NewDispatcher(openai, anthropic Client) *Dispatcher {
	return &Dispatcher{openai: openai, anthropic: anthropic}
}

// Complete resolves the provider for req.Model and forwards the call.
// An unrecognized vendor fails fast, before any network call is attempted.
// Vendor-side failures come back wrapped in ErrVendor with the vendor's own
// message attached, never swallowed.
func (d *Dispatcher) Complete(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var client Client
	switch registry.GetProvider(req.Model) {
	case registry.ProviderOpenAI:
		client = d.openai
	case registry.ProviderAnthropic:
		client = d.anthropic
	default:
		return nil, fmt.Errorf("%w: %q", app_errors.ErrUnsupportedModel, req.Model)
	}

	resp, err := client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrVendor, err)
	}
	return resp, nil
}
