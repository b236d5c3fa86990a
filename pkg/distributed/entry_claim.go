package distributed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyClaimed = errors.New("entry already claimed")
	ErrClaimNotHeld   = errors.New("claim not held")
)

// releaseScript deletes a claim key only when it still carries our
// token, so an expired claim re-acquired by someone else survives.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// ClaimManager hands out short-lived exclusive claims on queue entries
// via SETNX. A matcher claims both candidate entries before calling the
// battle service, which keeps concurrent matchers (and other instances)
// from racing the same pair into duplicate battles. The claim is
// advisory: the database commit re-checks entry status either way.
type ClaimManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClaimManager(client *redis.Client, ttl time.Duration) *ClaimManager {
	return &ClaimManager{client: client, ttl: ttl}
}

// EntryClaim holds claims on a set of entry ids under one token.
type EntryClaim struct {
	client *redis.Client
	keys   []string
	token  string
}

// ClaimEntries acquires a claim on every id or none. Ids are claimed in
// sorted order so two matchers contending for an overlapping pair
// cannot deadlock each other; the first contended key loses cleanly
// with ErrAlreadyClaimed and everything acquired so far is released.
func (m *ClaimManager) ClaimEntries(ctx context.Context, entryIDs ...string) (*EntryClaim, error) {
	ids := append([]string(nil), entryIDs...)
	sort.Strings(ids)

	claim := &EntryClaim{
		client: m.client,
		token:  uuid.New().String(),
	}

	for _, id := range ids {
		key := claimKey(id)
		ok, err := m.client.SetNX(ctx, key, claim.token, m.ttl).Result()
		if err != nil {
			claim.Release(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("failed to claim entry %s: %w", id, err)
		}
		if !ok {
			claim.Release(context.WithoutCancel(ctx))
			return nil, ErrAlreadyClaimed
		}
		claim.keys = append(claim.keys, key)
	}

	return claim, nil
}

// Release drops every key the claim still holds. Returns ErrClaimNotHeld
// when any key had already expired or was taken over.
func (c *EntryClaim) Release(ctx context.Context) error {
	var lost bool
	for _, key := range c.keys {
		held, err := releaseScript.Run(ctx, c.client, []string{key}, c.token).Int()
		if err != nil {
			return err
		}
		if held == 0 {
			lost = true
		}
	}
	c.keys = nil

	if lost {
		return ErrClaimNotHeld
	}
	return nil
}

// IsHeld reports whether the claim still owns the given entry.
func (c *EntryClaim) IsHeld(ctx context.Context, entryID string) (bool, error) {
	value, err := c.client.Get(ctx, claimKey(entryID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == c.token, nil
}

func claimKey(entryID string) string {
	return "matchmaking:claim:" + entryID
}
