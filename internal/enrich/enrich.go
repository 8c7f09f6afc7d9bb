// Package enrich generates creative text (summaries, trivia) for resolved
// records by calling AI text-generation providers in a fallback chain.
// Enrichment is best-effort: a caller always gets CreativeFields back,
// possibly empty, and never an error.
package enrich

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ProviderID identifies a creative-text provider.
type ProviderID string

const (
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderGroq       ProviderID = "groq"
	ProviderMistral    ProviderID = "mistral"
)

// CreativeFields is AI-generated narrative text. Every factual field of a
// record comes from a data provider; these fields are the only ones a
// text-generation provider is allowed to fill.
type CreativeFields struct {
	ShortSummary    string   `json:"shortSummary,omitempty"`
	MediumSummary   string   `json:"mediumSummary,omitempty"`
	LongSummary     string   `json:"longSummary,omitempty"`
	Trivia          []string `json:"trivia,omitempty"`
	SuspenseBreaker string   `json:"suspenseBreaker,omitempty"`
}

// IsEmpty reports whether no creative field was filled.
func (f CreativeFields) IsEmpty() bool {
	return f.ShortSummary == "" &&
		f.MediumSummary == "" &&
		f.LongSummary == "" &&
		len(f.Trivia) == 0 &&
		f.SuspenseBreaker == ""
}

// Provider is a single text-generation backend. Generate sends a system
// instruction plus evidence text and returns the raw model output, which
// is expected (but not guaranteed) to parse as JSON.
type Provider interface {
	ID() ProviderID
	Generate(ctx context.Context, system, user string) (string, error)
}

const systemInstruction = `You write copy for a movie metadata service. ` +
	`Using only the evidence provided, respond with a single JSON object ` +
	`with the keys "shortSummary", "mediumSummary", "longSummary", ` +
	`"trivia" (array of strings) and "suspenseBreaker" (a spoiler-light ` +
	`teaser of the ending). Fill creative fields only; do not alter, ` +
	`repeat, or invent factual fields such as titles, dates, or names.`

const defaultTimeout = 9 * time.Second

// Chain tries providers strictly in order, one at a time, and returns the
// first usable result. Providers are never called concurrently: the first
// usable response short-circuits the chain.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewChain creates a chain over the given providers in canonical order.
// A timeout of zero means the default per-call timeout.
func NewChain(providers []Provider, timeout time.Duration, logger zerolog.Logger) *Chain {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Chain{
		providers: providers,
		timeout:   timeout,
		logger:    logger.With().Str("component", "enrich").Logger(),
	}
}

// Enrich sends the evidence text through the provider chain and returns
// the first provider's usable creative fields. The preferred provider is
// tried first, then the remaining providers in canonical order. A provider
// that errors, times out, or yields no usable field is skipped silently.
// If every provider is exhausted, the zero value is returned.
func (c *Chain) Enrich(ctx context.Context, evidence string, preferred ProviderID) CreativeFields {
	for _, p := range c.order(preferred) {
		fields, ok := c.tryProvider(ctx, p, evidence)
		if ok {
			c.logger.Debug().
				Str("provider", string(p.ID())).
				Msg("Enrichment succeeded")
			return fields
		}
	}

	c.logger.Debug().Msg("All enrichment providers exhausted")
	return CreativeFields{}
}

// order returns the providers with the preferred one moved to the front,
// deduplicated.
func (c *Chain) order(preferred ProviderID) []Provider {
	if preferred == "" {
		return c.providers
	}

	ordered := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if p.ID() == preferred {
			ordered = append(ordered, p)
			break
		}
	}
	for _, p := range c.providers {
		if p.ID() != preferred {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// tryProvider runs one bounded provider call.
func (c *Chain) tryProvider(ctx context.Context, p Provider, evidence string) (CreativeFields, bool) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := p.Generate(callCtx, systemInstruction, evidence)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("provider", string(p.ID())).
			Msg("Enrichment provider failed, trying next")
		return CreativeFields{}, false
	}

	fields, err := parseCreative(raw)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("provider", string(p.ID())).
			Msg("Enrichment response unparseable, trying next")
		return CreativeFields{}, false
	}

	if fields.IsEmpty() {
		return CreativeFields{}, false
	}
	return fields, true
}
