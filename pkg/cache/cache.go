package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/deckops/deck/pkg/structs"
)

const DefaultTTL = 5 * time.Minute

type item struct {
	value   interface{}
	expires time.Time
}

// Cache holds values by collection and key until they expire.
type Cache struct {
	items map[string]map[string]*item
	lock  sync.Mutex
	now   func() time.Time
}

func New() *Cache {
	return &Cache{
		items: map[string]map[string]*item{},
		now:   time.Now,
	}
}

func (c *Cache) Get(collection string, key interface{}) interface{} {
	c.lock.Lock()
	defer c.lock.Unlock()

	hash, err := hashKey(key)
	if err != nil {
		return nil
	}

	if c.items[collection] == nil {
		return nil
	}

	i := c.items[collection][hash]
	if i == nil {
		return nil
	}

	if i.expires.Before(c.now()) {
		delete(c.items[collection], hash)
		return nil
	}

	return i.value
}

func (c *Cache) Set(collection string, key, value interface{}, ttl time.Duration) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	hash, err := hashKey(key)
	if err != nil {
		return err
	}

	if c.items[collection] == nil {
		c.items[collection] = map[string]*item{}
	}

	c.items[collection][hash] = &item{
		value:   value,
		expires: c.now().Add(ttl),
	}

	return nil
}

func (c *Cache) Clear(collection string, key interface{}) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	hash, err := hashKey(key)
	if err != nil {
		return err
	}

	if c.items[collection] != nil {
		delete(c.items[collection], hash)
	}

	return nil
}

// Flush drops every value in collection.
func (c *Cache) Flush(collection string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.items, collection)
}

func hashKey(key interface{}) (string, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", sha256.Sum256(data))[0:32], nil
}

// Provider serves the reader lookups of a wrapped provider from a cache.
// Writes and snapshot reads pass through.
type Provider struct {
	structs.Provider

	cache *Cache
	ttl   time.Duration
}

func NewProvider(p structs.Provider, c *Cache, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Provider{Provider: p, cache: c, ttl: ttl}
}

func (p *Provider) WithContext(ctx context.Context) structs.Provider {
	return &Provider{Provider: p.Provider.WithContext(ctx), cache: p.cache, ttl: p.ttl}
}

func (p *Provider) AccountList(provider string) (structs.Accounts, error) {
	return cached(p, "accounts", provider, func() (structs.Accounts, error) {
		return p.Provider.AccountList(provider)
	})
}

func (p *Provider) BaseOsList(provider string) (*structs.BaseOsOptions, error) {
	return cached(p, "baseos", provider, func() (*structs.BaseOsOptions, error) {
		return p.Provider.BaseOsList(provider)
	})
}

func (p *Provider) ImageFind(opts structs.ImageFindOptions) (structs.Images, error) {
	return cached(p, "images", opts, func() (structs.Images, error) {
		return p.Provider.ImageFind(opts)
	})
}

func (p *Provider) ServiceAccountList(account string) (structs.ServiceAccounts, error) {
	return cached(p, "serviceaccounts", account, func() (structs.ServiceAccounts, error) {
		return p.Provider.ServiceAccountList(account)
	})
}

func (p *Provider) SubnetList(provider string) (structs.Subnets, error) {
	return cached(p, "subnets", provider, func() (structs.Subnets, error) {
		return p.Provider.SubnetList(provider)
	})
}

func cached[T any](p *Provider, collection string, key interface{}, fetch func() (T, error)) (T, error) {
	if v, ok := p.cache.Get(collection, key).(T); ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if err := p.cache.Set(collection, key, v, p.ttl); err != nil {
		return v, err
	}

	return v, nil
}
