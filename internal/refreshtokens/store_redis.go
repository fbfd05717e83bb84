package refreshtokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisTokenPrefix = "refresh:token:"
	redisUserPrefix  = "refresh:user:"
)

func tokenKey(token string) string { return redisTokenPrefix + token }

func userKey(userID int64) string { return redisUserPrefix + strconv.FormatInt(userID, 10) }

// saveScript replaces a user's binding if it still equals the one read by the
// caller. Every key it touches is declared: KEYS[3] is present only when there
// was a previous token.
var saveScript = redis.NewScript(`
-- KEYS[1] = user key
-- KEYS[2] = new token key
-- KEYS[3] = previous token key (optional)
-- ARGV[1] = user id
-- ARGV[2] = refresh token
-- ARGV[3] = previous token or ""
-- ARGV[4] = ttl_ms (int)
local cur = redis.call('GET', KEYS[1]) or ''
if cur ~= ARGV[3] then
  return 0
end
if #KEYS == 3 and cur ~= ARGV[2] then
  redis.call('DEL', KEYS[3])
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[4])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[4])
return 1
`)

// deleteScript removes a user's binding and its reverse index if the binding
// still equals the one read by the caller.
var deleteScript = redis.NewScript(`
-- KEYS[1] = user key
-- KEYS[2] = token key
-- ARGV[1] = token
local cur = redis.call('GET', KEYS[1]) or ''
if cur ~= ARGV[1] then
  return 0
end
redis.call('DEL', KEYS[1], KEYS[2])
return 1
`)

// casAttempts bounds retries when another writer changes the binding between
// the read and the script.
const casAttempts = 5

var errBindingContention = errors.New("refreshtokens: binding changed concurrently, giving up")

// RedisStore keeps bindings in Redis under two keys per user
// (user -> token, token -> user). Keys expire with the refresh token TTL so
// stale bindings are reclaimed without a sweeper.
//
// Writes read the current binding, then run a script that applies only if it
// is unchanged. The user and token keys hash to different slots, so the store
// targets a single Redis node (or a Sentinel primary), not Redis Cluster.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) FindByToken(ctx context.Context, token string) (Binding, error) {
	if token == "" {
		return Binding{}, ErrUnknownRefreshToken
	}
	v, err := s.rdb.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Binding{}, ErrUnknownRefreshToken
		}
		return Binding{}, fmt.Errorf("redis error: %w", err)
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return Binding{}, fmt.Errorf("redis: corrupt binding for token: %w", err)
	}
	return Binding{UserID: userID, RefreshToken: token}, nil
}

func (s *RedisStore) Save(ctx context.Context, b Binding) error {
	if err := validate(b); err != nil {
		return err
	}
	if s.ttl <= 0 {
		return errors.New("refreshtokens: redis ttl must be > 0")
	}
	uk := userKey(b.UserID)
	for i := 0; i < casAttempts; i++ {
		prev, err := s.currentToken(ctx, uk)
		if err != nil {
			return err
		}
		keys := []string{uk, tokenKey(b.RefreshToken)}
		if prev != "" {
			keys = append(keys, tokenKey(prev))
		}
		n, err := saveScript.Run(ctx, s.rdb, keys, b.UserID, b.RefreshToken, prev, s.ttl.Milliseconds()).Int()
		if err != nil {
			return fmt.Errorf("redis error: %w", err)
		}
		if n == 1 {
			return nil
		}
	}
	return errBindingContention
}

func (s *RedisStore) DeleteByUserID(ctx context.Context, userID int64) error {
	uk := userKey(userID)
	for i := 0; i < casAttempts; i++ {
		prev, err := s.currentToken(ctx, uk)
		if err != nil {
			return err
		}
		if prev == "" {
			return nil
		}
		n, err := deleteScript.Run(ctx, s.rdb, []string{uk, tokenKey(prev)}, prev).Int()
		if err != nil {
			return fmt.Errorf("redis error: %w", err)
		}
		if n == 1 {
			return nil
		}
	}
	return errBindingContention
}

func (s *RedisStore) currentToken(ctx context.Context, uk string) (string, error) {
	v, err := s.rdb.Get(ctx, uk).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return v, nil
}
