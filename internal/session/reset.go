package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// resetPrefix namespaces password reset tokens in Valkey.
	resetPrefix = "pwreset:"

	// ResetTokenTTL is how long a password reset token stays valid.
	ResetTokenTTL = 30 * time.Minute
)

// ResetTokens issues and consumes single-use password reset tokens,
// stored in Valkey with automatic expiry.
type ResetTokens struct {
	client *redis.Client
}

// NewResetTokens creates a reset token store backed by the given Valkey client.
func NewResetTokens(client *redis.Client) *ResetTokens {
	return &ResetTokens{client: client}
}

// Issue creates a token bound to the given user and stores it with a TTL.
func (t *ResetTokens) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reset token generate: %w", err)
	}
	token := hex.EncodeToString(b)

	if err := t.client.Set(ctx, resetPrefix+token, userID.String(), ResetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("reset token store: %w", err)
	}
	return token, nil
}

// Consume looks up a token, deletes it, and returns the bound user ID.
// Returns uuid.Nil and no error for an unknown or expired token — the
// single-use guarantee holds even under concurrent confirm attempts
// because GETDEL is atomic.
func (t *ResetTokens) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := t.client.GetDel(ctx, resetPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("reset token get: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("reset token parse: %w", err)
	}
	return id, nil
}
