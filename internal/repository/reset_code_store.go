package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetCodeInvalid is returned when a password reset code does not
// match, has expired or was never issued.
var ErrResetCodeInvalid = errors.New("invalid or expired reset code")

// ResetCodeStore keeps password reset codes in Redis keyed by user
// email with an explicit TTL.  The key expires on its own, so codes
// never outlive their window regardless of process restarts.
type ResetCodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResetCodeStore returns a store issuing codes valid for ttl.  A
// nil Redis client is allowed; Issue and Redeem then fail with
// redis.ErrClosed-like behavior handled by callers.
func NewResetCodeStore(rdb *redis.Client, ttl time.Duration) *ResetCodeStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ResetCodeStore{rdb: rdb, ttl: ttl}
}

// Available reports whether the backing Redis client is configured.
func (s *ResetCodeStore) Available() bool { return s != nil && s.rdb != nil }

func resetKey(email string) string { return "pwreset:" + email }

// Issue generates a six-digit code for the email, replacing any
// previous code, and stores it with the configured TTL.
func (s *ResetCodeStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.rdb.Set(ctx, resetKey(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Redeem checks the code for the email and deletes it on match so a
// code can be used at most once.
func (s *ResetCodeStore) Redeem(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, resetKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetCodeInvalid
		}
		return err
	}
	if stored != code {
		return ErrResetCodeInvalid
	}
	return s.rdb.Del(ctx, resetKey(email)).Err()
}
