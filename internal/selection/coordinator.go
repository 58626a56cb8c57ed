package selection

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"marquee/internal/catalog"
)

// Coordinator maps a conversation to its last search result set. Each
// recorded search replaces the previous set wholesale.
type Coordinator struct {
	cache *gocache.Cache
}

// New creates a coordinator. A positive ttl expires idle result sets; zero
// keeps them for the process lifetime.
func New(ttl time.Duration) *Coordinator {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl
	}
	return &Coordinator{cache: gocache.New(expiration, cleanup)}
}

// RecordSearch replaces the conversation's cached result set.
func (c *Coordinator) RecordSearch(chatID int64, items []catalog.Item) {
	stored := make([]catalog.Item, len(items))
	copy(stored, items)
	c.cache.Set(key(chatID), stored, gocache.DefaultExpiration)
}

// Resolve looks the id up within the conversation's cached set.
func (c *Coordinator) Resolve(chatID int64, id int64) (catalog.Item, bool) {
	value, found := c.cache.Get(key(chatID))
	if !found {
		return catalog.Item{}, false
	}
	items, ok := value.([]catalog.Item)
	if !ok {
		return catalog.Item{}, false
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return catalog.Item{}, false
}

// Clear drops the conversation's cached result set.
func (c *Coordinator) Clear(chatID int64) {
	c.cache.Delete(key(chatID))
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
