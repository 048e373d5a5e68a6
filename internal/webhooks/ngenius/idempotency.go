package ngeniuswebhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/redis"
)

const replayScope = "ngenius-webhook"

// ReplayGuard deduplicates byte-identical notification deliveries. The
// reconciliation writer is overwrite-idempotent on its own; the guard only
// saves the redundant store round-trip on gateway redelivery.
type ReplayGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
}

func NewReplayGuard(store redis.IdempotencyStore, ttl time.Duration) (*ReplayGuard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	return &ReplayGuard{store: store, ttl: ttl}, nil
}

// CheckAndMark reports whether this payload was already seen, marking it seen
// otherwise.
func (g *ReplayGuard) CheckAndMark(ctx context.Context, payload []byte) (bool, error) {
	key := g.store.IdempotencyKey(replayScope, PayloadDigest(payload))
	set, err := g.store.SetNX(ctx, key, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("set replay key: %w", err)
	}
	return !set, nil
}

// Forget clears the seen mark, letting the gateway's retry of a failed
// delivery through.
func (g *ReplayGuard) Forget(ctx context.Context, payload []byte) error {
	key := g.store.IdempotencyKey(replayScope, PayloadDigest(payload))
	return g.store.Del(ctx, key)
}

// PayloadDigest identifies a delivery by the hash of its exact raw bytes.
func PayloadDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
