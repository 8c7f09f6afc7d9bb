package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeProvider returns a canned response or error and counts calls.
type fakeProvider struct {
	id       ProviderID
	response string
	err      error
	delay    time.Duration
	calls    int
}

func (f *fakeProvider) ID() ProviderID {
	return f.id
}

func (f *fakeProvider) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

const goodResponse = `{"shortSummary":"A heist inside dreams.","trivia":["Shot on 65mm."]}`

func TestChainFirstUsableWins(t *testing.T) {
	first := &fakeProvider{id: ProviderOpenRouter, response: goodResponse}
	second := &fakeProvider{id: ProviderGroq, response: goodResponse}

	chain := NewChain([]Provider{first, second}, time.Second, zerolog.Nop())
	fields := chain.Enrich(context.Background(), "evidence", "")

	if fields.ShortSummary != "A heist inside dreams." {
		t.Errorf("unexpected fields: %+v", fields)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times, want 0", second.calls)
	}
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &fakeProvider{id: ProviderOpenRouter, err: errors.New("boom")}
	second := &fakeProvider{id: ProviderGroq, response: goodResponse}

	chain := NewChain([]Provider{first, second}, time.Second, zerolog.Nop())
	fields := chain.Enrich(context.Background(), "evidence", "")

	if fields.IsEmpty() {
		t.Fatal("expected fields from second provider")
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
}

func TestChainFallsThroughOnTimeout(t *testing.T) {
	slow := &fakeProvider{id: ProviderOpenRouter, response: goodResponse, delay: 200 * time.Millisecond}
	fast := &fakeProvider{id: ProviderGroq, response: goodResponse}

	chain := NewChain([]Provider{slow, fast}, 20*time.Millisecond, zerolog.Nop())
	fields := chain.Enrich(context.Background(), "evidence", "")

	if fields.IsEmpty() {
		t.Fatal("expected fields from fast provider")
	}
	if fast.calls != 1 {
		t.Errorf("fast provider calls = %d, want 1", fast.calls)
	}
}

func TestChainPreferredFirst(t *testing.T) {
	a := &fakeProvider{id: ProviderOpenRouter, response: goodResponse}
	b := &fakeProvider{id: ProviderMistral, response: goodResponse}

	chain := NewChain([]Provider{a, b}, time.Second, zerolog.Nop())
	chain.Enrich(context.Background(), "evidence", ProviderMistral)

	if b.calls != 1 {
		t.Errorf("preferred provider calls = %d, want 1", b.calls)
	}
	if a.calls != 0 {
		t.Errorf("non-preferred provider calls = %d, want 0", a.calls)
	}
}

func TestChainAllExhausted(t *testing.T) {
	a := &fakeProvider{id: ProviderOpenRouter, err: errors.New("down")}
	b := &fakeProvider{id: ProviderGroq, response: "not json at all"}
	c := &fakeProvider{id: ProviderMistral, response: `{}`}

	chain := NewChain([]Provider{a, b, c}, time.Second, zerolog.Nop())
	fields := chain.Enrich(context.Background(), "evidence", "")

	if !fields.IsEmpty() {
		t.Errorf("expected empty fields, got %+v", fields)
	}
}

func TestParseCreative(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain JSON",
			raw:  goodResponse,
			want: "A heist inside dreams.",
		},
		{
			name: "markdown fenced",
			raw:  "```json\n" + goodResponse + "\n```",
			want: "A heist inside dreams.",
		},
		{
			name: "fenced without language tag",
			raw:  "```\n" + goodResponse + "\n```",
			want: "A heist inside dreams.",
		},
		{
			name: "JSON embedded in chatter",
			raw:  "Sure! Here you go:\n" + goodResponse + "\nHope that helps.",
			want: "A heist inside dreams.",
		},
		{
			name:    "no JSON at all",
			raw:     "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parseCreative(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fields.ShortSummary != tt.want {
				t.Errorf("ShortSummary = %q, want %q", fields.ShortSummary, tt.want)
			}
		})
	}
}
