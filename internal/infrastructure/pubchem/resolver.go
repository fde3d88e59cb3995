package pubchem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wikimol/wikimolgen/internal/infrastructure/database/redis"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// Resolver is the application-facing resolution port.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*Compound, error)
	FetchSDF(ctx context.Context, cid int64, record RecordType) (string, error)
}

// CachedResolver wraps a Client with a cache so repeated renders of the same
// compound hit PubChem once.  Negative results are cached too, through the
// cache's null sentinel, so a flood of bad identifiers cannot hammer the API.
type CachedResolver struct {
	client *Client
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedResolver builds the caching layer.  A zero ttl falls back to the
// cache's own default.
func NewCachedResolver(client *Client, cache redis.Cache, ttl time.Duration, log logging.Logger) *CachedResolver {
	return &CachedResolver{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: log.Named("resolver"),
	}
}

// Resolve resolves an identifier, serving from cache when possible.  Keys are
// lowercased so "Aspirin" and "aspirin" share an entry; SMILES stays
// case-sensitive because case is chemically significant there.
func (r *CachedResolver) Resolve(ctx context.Context, identifier string) (*Compound, error) {
	identifier = strings.TrimSpace(identifier)
	key := compoundKey(identifier)

	var com Compound
	err := r.cache.GetOrSet(ctx, key, &com, r.ttl, func(ctx context.Context) (any, error) {
		c, err := r.client.Resolve(ctx, identifier)
		if err != nil && errors.IsCode(err, errors.ErrCodeCompoundNotFound) {
			// Definitive miss: null-cache it. Transient failures stay
			// uncached so the next attempt retries upstream.
			return nil, nil
		}
		return c, err
	})
	if err == redis.ErrCacheMiss {
		return nil, errors.New(errors.ErrCodeCompoundNotFound,
			fmt.Sprintf("compound %q not found", identifier))
	}
	if err != nil {
		return nil, err
	}
	return &com, nil
}

// FetchSDF fetches an SDF record, serving from cache when possible.
func (r *CachedResolver) FetchSDF(ctx context.Context, cid int64, record RecordType) (string, error) {
	key := fmt.Sprintf("sdf:%s:%d", record, cid)

	var sdf string
	err := r.cache.GetOrSet(ctx, key, &sdf, r.ttl, func(ctx context.Context) (any, error) {
		s, err := r.client.FetchSDF(ctx, cid, record)
		if err != nil && errors.IsCode(err, errors.ErrCodeRecordUnavailable) {
			return nil, nil
		}
		return s, err
	})
	if err == redis.ErrCacheMiss {
		return "", errors.New(errors.ErrCodeRecordUnavailable,
			fmt.Sprintf("no %s record for CID %d", record, cid))
	}
	if err != nil {
		return "", err
	}
	return sdf, nil
}

func compoundKey(identifier string) string {
	if hasUpperSMILESHint(identifier) {
		return "compound:" + identifier
	}
	return "compound:" + strings.ToLower(identifier)
}

// hasUpperSMILESHint reports whether the identifier looks like SMILES, in
// which case the cache key must preserve case.
func hasUpperSMILESHint(identifier string) bool {
	return strings.ContainsAny(identifier, "[]()=#@\\/")
}
