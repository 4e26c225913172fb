package service

import (
	"errors"

	"github.com/selimhehe1/pattamap/internal/grid"
	"github.com/selimhehe1/pattamap/internal/logging"
	"github.com/selimhehe1/pattamap/internal/storage"
)

var (
	ErrInvalidInput  = errors.New("invalid placement input")
	ErrOutOfBounds   = errors.New("target cell is outside the zone layout")
	ErrVenueNotFound = errors.New("venue not found")
	// ErrConflict means the store state no longer matches what the caller
	// saw; safe to retry after refreshing.
	ErrConflict = errors.New("placement conflicts with a concurrent change")
	// ErrSwapFailed means the sequential swap could not complete but all
	// positions were restored; safe to retry.
	ErrSwapFailed = errors.New("swap could not be completed; positions were restored")
	// ErrFatalState means a rollback write failed and a venue may be left
	// without a position. Requires operator intervention; never retry blindly.
	ErrFatalState = errors.New("swap rollback failed; venue may be left detached")
)

// PositionRepo is the slice of the storage layer the placement coordinator
// depends on: point reads, single-row conditional writes and the optional
// atomic exchange procedure.
type PositionRepo interface {
	GetVenueByUUID(uuid string) (*grid.Venue, error)
	FindOccupant(zone string, row, col int, excludingUUID string) (*grid.Venue, error)
	UpdatePosition(uuid string, zone string, row, col *int) (*grid.Venue, error)
	ExchangePositions(aUUID, bUUID string, aPos, bPos grid.Position) ([2]grid.Venue, error)
}

// Invalidator is notified with every zone whose cached views went stale
// after a successful placement change.
type Invalidator interface {
	Invalidate(zones ...string)
}

type PlaceRequest struct {
	VenueUUID string
	Zone      string
	Row       int
	Col       int
	// SwapWithUUID requests an explicit exchange with another venue. When
	// empty and the target cell is occupied, the occupant becomes the swap
	// partner automatically.
	SwapWithUUID string
}

// PlacementResult carries the updated records: one venue for a simple move,
// two (source then target) for a swap.
type PlacementResult struct {
	Venues  []grid.Venue
	Swapped bool
}

// PlaceVenue relocates a venue on the map grid. The target cell is shape
// validated before any store access; an empty cell is a simple single-row
// move, an occupied cell or an explicit SwapWithUUID becomes a two-venue
// swap. Cached zone views are invalidated after any successful change.
func PlaceVenue(repo PositionRepo, cache Invalidator, zones grid.ZoneTable, req PlaceRequest) (*PlacementResult, error) {
	if req.VenueUUID == "" || req.Zone == "" || req.Row < 1 || req.Col < 1 {
		return nil, ErrInvalidInput
	}
	if req.SwapWithUUID == req.VenueUUID {
		return nil, ErrInvalidInput
	}
	if !zones.Contains(req.Zone, req.Row, req.Col) {
		return nil, ErrOutOfBounds
	}

	source, err := fetchVenue(repo, req.VenueUUID)
	if err != nil {
		return nil, err
	}

	if req.SwapWithUUID != "" {
		target, err := fetchVenue(repo, req.SwapWithUUID)
		if err != nil {
			return nil, err
		}
		return swapVenues(repo, cache, source, target)
	}

	occupant, err := repo.FindOccupant(req.Zone, req.Row, req.Col, source.UUID)
	if err != nil {
		return nil, err
	}
	if occupant != nil {
		// Occupied destination escalates the move into a swap with the
		// occupant, matching the drag-and-drop affordance where dropping
		// onto a taken cell exchanges the two venues.
		return swapVenues(repo, cache, source, occupant)
	}

	prevZone := source.Zone
	row, col := req.Row, req.Col
	updated, err := repo.UpdatePosition(source.UUID, req.Zone, &row, &col)
	if err != nil {
		if errors.Is(err, storage.ErrPositionTaken) {
			// The occupancy check raced a concurrent write and lost; the
			// store-level uniqueness constraint is the final arbiter.
			return nil, ErrConflict
		}
		if errors.Is(err, storage.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	invalidateZones(cache, prevZone, req.Zone)
	return &PlacementResult{Venues: []grid.Venue{*updated}}, nil
}

// fetchVenue resolves a venue by UUID. Only a genuine missing row becomes
// ErrVenueNotFound; transient store failures are surfaced directly so
// callers never mistake a timeout for a deleted venue.
func fetchVenue(repo PositionRepo, uuid string) (*grid.Venue, error) {
	v, err := repo.GetVenueByUUID(uuid)
	if err != nil {
		if errors.Is(err, storage.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if v == nil {
		return nil, ErrVenueNotFound
	}
	return v, nil
}

// swapVenues exchanges the two venues' cells: the atomic store procedure
// when available, the sequential fallback protocol otherwise.
func swapVenues(repo PositionRepo, cache Invalidator, source, target *grid.Venue) (*PlacementResult, error) {
	srcPos, srcPlaced := source.CurrentPosition()
	tgtPos, tgtPlaced := target.CurrentPosition()
	if !srcPlaced || !tgtPlaced {
		// A swap needs two occupied cells to exchange. A detached party
		// means the caller's view of the map is stale.
		return nil, ErrConflict
	}

	// After the swap the source holds the target's cell and vice versa,
	// zones included when the venues sit in different zones.
	srcNew, tgtNew := tgtPos, srcPos

	swapped, err := repo.ExchangePositions(source.UUID, target.UUID, srcNew, tgtNew)
	if err == nil {
		invalidateZones(cache, srcPos.Zone, tgtPos.Zone)
		return &PlacementResult{Venues: []grid.Venue{swapped[0], swapped[1]}, Swapped: true}, nil
	}
	if errors.Is(err, storage.ErrPositionTaken) {
		return nil, ErrConflict
	}
	if errors.Is(err, storage.ErrVenueNotFound) {
		return nil, ErrVenueNotFound
	}
	if !errors.Is(err, storage.ErrExchangeUnavailable) {
		logging.Error("atomic exchange failed; using sequential fallback", err, logging.Fields{
			"source_uuid": source.UUID,
			"target_uuid": target.UUID,
		})
	}

	res, err := sequentialSwap(repo, source, target, srcNew, tgtNew)
	if err != nil {
		return nil, err
	}
	invalidateZones(cache, srcPos.Zone, tgtPos.Zone)
	return res, nil
}

// invalidateZones fires cache invalidation for the affected zones. The
// placement outcome is already decided; invalidation never changes it.
func invalidateZones(cache Invalidator, zones ...string) {
	if cache == nil {
		return
	}
	seen := make(map[string]struct{}, len(zones))
	distinct := zones[:0]
	for _, z := range zones {
		if _, dup := seen[z]; dup || z == "" {
			continue
		}
		seen[z] = struct{}{}
		distinct = append(distinct, z)
	}
	cache.Invalidate(distinct...)
}
