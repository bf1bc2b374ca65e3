package memory

import (
	"time"

	"chatfolders-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// MirrorEntry is the cached billing view for a user. It is the fast path
// consulted on usage checks so the database is not hit per mutation.
type MirrorEntry struct {
	Plan         *entity.SubscriptionPlan
	Subscription *entity.UserSubscription
	FetchedAt    time.Time
}

type SubscriptionMirror struct {
	cache *cache.Cache
}

func NewSubscriptionMirror() *SubscriptionMirror {
	// Entries outlive the refresher interval so a stalled refresher degrades
	// to database reads instead of serving stale plans forever
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &SubscriptionMirror{
		cache: c,
	}
}

func (m *SubscriptionMirror) Set(userId string, entry *MirrorEntry) {
	m.cache.Set(userId, entry, cache.DefaultExpiration)
}

func (m *SubscriptionMirror) Get(userId string) (*MirrorEntry, bool) {
	if x, found := m.cache.Get(userId); found {
		return x.(*MirrorEntry), true
	}
	return nil, false
}

func (m *SubscriptionMirror) Invalidate(userId string) {
	m.cache.Delete(userId)
}
