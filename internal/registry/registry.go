// Package registry is the static table of generation models the platform
// knows how to bill and route. Pure lookup, no state.
package registry

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Provider identifies the vendor API a model is served by.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderUnknown   Provider = "unknown"
)

// ModelDefinition describes one generation model: how to route it, what a
// single request costs in credits, and its capability metadata.
type ModelDefinition struct {
	ID             string          `json:"id"`
	DisplayName    string          `json:"display_name"`
	Provider       Provider        `json:"provider"`
	CostPerRequest decimal.Decimal `json:"cost_per_request"`
	MaxTokens      int             `json:"max_tokens"`
	Capabilities   []string        `json:"capabilities"`
}

// Cost tiers. Costs are flat per request, not per token.
var (
	defaultCost = decimal.RequireFromString("0.04")
	budgetCost  = decimal.RequireFromString("0.01")
)

// definitions is the closed set of canonical models. Every model id used
// anywhere resolves here exactly once; unknown ids fall back through
// pattern matching in Get/GetCost.
var definitions = []ModelDefinition{
	{
		ID:             "claude-3-7-sonnet",
		DisplayName:    "Claude 3.7 Sonnet",
		Provider:       ProviderAnthropic,
		CostPerRequest: defaultCost,
		MaxTokens:      8192,
		Capabilities:   []string{"templates", "stylesheets", "chat"},
	},
	{
		ID:             "claude-3-5-sonnet",
		DisplayName:    "Claude 3.5 Sonnet",
		Provider:       ProviderAnthropic,
		CostPerRequest: defaultCost,
		MaxTokens:      8192,
		Capabilities:   []string{"templates", "stylesheets", "chat"},
	},
	{
		ID:             "gpt-4.1",
		DisplayName:    "GPT-4.1",
		Provider:       ProviderOpenAI,
		CostPerRequest: defaultCost,
		MaxTokens:      4096,
		Capabilities:   []string{"templates", "stylesheets", "chat"},
	},
	{
		ID:             "gpt-4.1-nano",
		DisplayName:    "GPT-4.1 Nano",
		Provider:       ProviderOpenAI,
		CostPerRequest: budgetCost,
		MaxTokens:      4096,
		Capabilities:   []string{"chat"},
	},
	{
		ID:             "gpt-4o",
		DisplayName:    "GPT-4o",
		Provider:       ProviderOpenAI,
		CostPerRequest: defaultCost,
		MaxTokens:      4096,
		Capabilities:   []string{"templates", "stylesheets", "chat"},
	},
	{
		ID:             "gpt-4o-mini",
		DisplayName:    "GPT-4o Mini",
		Provider:       ProviderOpenAI,
		CostPerRequest: budgetCost,
		MaxTokens:      4096,
		Capabilities:   []string{"chat"},
	},
}

// byID is built once at init for exact lookups.
var byID = func() map[string]ModelDefinition {
	m := make(map[string]ModelDefinition, len(definitions))
	for _, d := range definitions {
		m[d.ID] = d
	}
	return m
}()

// List returns all canonical model definitions, in registry order.
func List() []ModelDefinition {
	out := make([]ModelDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// Get returns the definition for an exact model id, or the canonical
// definition whose id is a substring of the given id (vendors ship dated and
// preview variants of the same family). The longest canonical match wins so
// that "gpt-4.1-nano-preview" resolves to gpt-4.1-nano, not gpt-4.1.
// Returns false when nothing matches.
func Get(id string) (ModelDefinition, bool) {
	if d, ok := byID[id]; ok {
		return d, true
	}
	var best ModelDefinition
	found := false
	for _, d := range definitions {
		if strings.Contains(id, d.ID) && (!found || len(d.ID) > len(best.ID)) {
			best = d
			found = true
		}
	}
	return best, found
}

// GetCost resolves the per-request cost for any model id string. Exact match
// first, then family substring match, then a budget/default split on the
// "nano"/"mini" marker. Total over all inputs: never errors, never panics.
func GetCost(id string) decimal.Decimal {
	if d, ok := Get(id); ok {
		return d.CostPerRequest
	}
	lower := strings.ToLower(id)
	if strings.Contains(lower, "nano") || strings.Contains(lower, "mini") {
		return budgetCost
	}
	return defaultCost
}

// GetProvider resolves vendor routing for a model id. Unlike cost lookup this
// can return ProviderUnknown: routing to a vendor we have no client for must
// fail fast rather than guess.
func GetProvider(id string) Provider {
	if d, ok := Get(id); ok {
		return d.Provider
	}
	lower := strings.ToLower(id)
	switch {
	case strings.HasPrefix(lower, "claude"):
		return ProviderAnthropic
	case strings.HasPrefix(lower, "gpt"), strings.HasPrefix(lower, "o1"), strings.HasPrefix(lower, "o3"):
		return ProviderOpenAI
	default:
		return ProviderUnknown
	}
}
