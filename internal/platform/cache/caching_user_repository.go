// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"calorie_backend/internal/feature/users/domain/entity"
	"calorie_backend/internal/feature/users/usecase"
)

// UserRepository is the full surface of the underlying store that this
// decorator wraps: the account CRUD plus the lookups used by the auth gate.
type UserRepository interface {
	usecase.UserRepository
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// CachingUserRepository decorates a UserRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads by username or ID go through
// the cache; every write invalidates the affected user's entries, so a
// cached record never outlives a mutation by more than the write itself.
type CachingUserRepository struct {
	inner     UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists a new user and drops any stale cache entries for the name.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := c.inner.Create(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u)
	return nil
}

// FindByUsername retrieves a user, checking cache first then falling back to the database.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return c.cachedFind(ctx, c.usernameKey(username), func() (*entity.User, error) {
		return c.inner.FindByUsername(ctx, username)
	})
}

// FindByID retrieves a user by ID, checking cache first then falling back to the database.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.cachedFind(ctx, c.idKey(id), func() (*entity.User, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// FindAll bypasses the cache; user listings are not cached.
func (c *CachingUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	return c.inner.FindAll(ctx)
}

// Save overwrites the whole user record and invalidates its cache entries.
func (c *CachingUserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := c.inner.Save(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u)
	return nil
}

// Delete removes the user and invalidates its cache entries.
func (c *CachingUserRepository) Delete(ctx context.Context, username string) (*entity.User, error) {
	u, err := c.inner.Delete(ctx, username)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, u)
	return u, nil
}

// cachedFind implements the read-through: cache hit, fallback, best-effort fill.
func (c *CachingUserRepository) cachedFind(ctx context.Context, key string, load func() (*entity.User, error)) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// invalidate drops both lookup keys for a user. Best effort: a failed delete
// only shortens the cache's usefulness, it never fails the write.
func (c *CachingUserRepository) invalidate(ctx context.Context, u *entity.User) {
	if c.rdb == nil || u == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.usernameKey(u.Username), c.idKey(u.ID)).Err()
}

// usernameKey generates the cache key for a username lookup.
func (c *CachingUserRepository) usernameKey(username string) string {
	return fmt.Sprintf("%s:name:%s", c.namespace, safe(username))
}

// idKey generates the cache key for an ID lookup.
func (c *CachingUserRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// safe normalizes a key segment so usernames cannot smuggle separators or
// glob characters into Redis key space.
func safe(s string) string {
	replacer := strings.NewReplacer(":", "_", "*", "_", "?", "_", "[", "_", "]", "_", " ", "_")
	return replacer.Replace(s)
}
