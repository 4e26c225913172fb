// Package cache keeps per-zone venue listings in memory so map reads do not
// hit the store on every request. A shared singleflight.Group ensures that
// only one rebuild runs per zone while concurrent callers wait for its
// result. The placement coordinator invalidates affected zones after every
// successful move or swap.
package cache

import (
	"sync"

	"github.com/selimhehe1/pattamap/internal/grid"

	"golang.org/x/sync/singleflight"
)

// ZoneReader is the read surface the cache rebuilds from.
type ZoneReader interface {
	GetVenuesByZone(zone string) ([]grid.Venue, error)
}

type Listings struct {
	repo ZoneReader

	mu     sync.RWMutex
	byZone map[string][]grid.Venue
	group  singleflight.Group
}

func NewListings(repo ZoneReader) *Listings {
	return &Listings{repo: repo, byZone: map[string][]grid.Venue{}}
}

// Venues returns the cached listing for the zone, rebuilding it from the
// store on a miss. Concurrent misses for the same zone share one rebuild.
func (l *Listings) Venues(zone string) ([]grid.Venue, error) {
	l.mu.RLock()
	venues, ok := l.byZone[zone]
	l.mu.RUnlock()
	if ok {
		return venues, nil
	}

	v, err, _ := l.group.Do(zone, func() (interface{}, error) {
		fresh, err := l.repo.GetVenuesByZone(zone)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.byZone[zone] = fresh
		l.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]grid.Venue), nil
}

// Invalidate drops the cached listings for the given zones. Unknown zones
// are ignored.
func (l *Listings) Invalidate(zones ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, z := range zones {
		delete(l.byZone, z)
	}
}
