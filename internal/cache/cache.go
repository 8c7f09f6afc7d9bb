package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store is the external cache consumed by the search and metadata layers.
// Implementations must treat failures as misses: a broken cache never
// surfaces an error to callers, because everything stored in it is derived
// and reproducible.
type Store interface {
	// Get retrieves a value by key. The second return is false on a miss.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value under key with the given TTL. Writes are
	// idempotent; last writer wins.
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// Key builds a stable cache key from a prefix and a set of named parts.
// The parts are sorted by name so the key is independent of insertion
// order.
func Key(prefix string, parts map[string]any) string {
	if len(parts) == 0 {
		return prefix + ":"
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s:%v", name, parts[name]))
	}

	return prefix + ":" + strings.Join(pairs, "|")
}
