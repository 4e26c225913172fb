package storage

import (
	"errors"

	"github.com/selimhehe1/pattamap/internal/grid"
)

var (
	// ErrVenueNotFound is returned when a point read or conditional write
	// matched no venue row.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrPositionTaken is returned when the store's uniqueness constraint on
	// (zone, row, col) rejected a write.
	ErrPositionTaken = errors.New("position already taken")
	// ErrExchangeUnavailable is returned when the store cannot run the
	// multi-row exchange procedure atomically. Callers fall back to the
	// sequential swap protocol.
	ErrExchangeUnavailable = errors.New("atomic exchange unavailable")
)

type Repository interface {
	CreateVenue(v *grid.Venue) error
	GetVenueByUUID(uuid string) (*grid.Venue, error)
	// GetVenuesByZone returns all venues assigned to the zone, including
	// ones that are currently detached (no row/col).
	GetVenuesByZone(zone string) ([]grid.Venue, error)
	// FindOccupant returns the venue occupying (zone,row,col), excluding the
	// venue identified by excludingUUID so a venue never collides with
	// itself. Returns (nil, nil) when the cell is empty.
	FindOccupant(zone string, row, col int, excludingUUID string) (*grid.Venue, error)
	// UpdatePosition conditionally rewrites one venue's position in a single
	// row write. Nil row/col detach the venue while keeping its zone.
	// Returns ErrVenueNotFound when no row matched and ErrPositionTaken when
	// the cell uniqueness constraint rejected the write.
	UpdatePosition(uuid string, zone string, row, col *int) (*grid.Venue, error)
	// ExchangePositions swaps two venues' positions in one atomic multi-row
	// procedure with no observable intermediate state. Returns
	// ErrExchangeUnavailable when the store cannot guarantee atomicity.
	// Any error means the procedure left no state change behind.
	ExchangePositions(aUUID, bUUID string, aPos, bPos grid.Position) ([2]grid.Venue, error)
}
