package service

import (
	"errors"
	"testing"

	"github.com/selimhehe1/pattamap/internal/grid"
	"github.com/selimhehe1/pattamap/internal/storage"
)

var errTransient = errors.New("transient store error")

// fallbackFixture returns two venues in soi6 with the exchange procedure
// disabled so every swap runs the sequential protocol.
func fallbackFixture() *mockRepo {
	m := newMockRepo(
		placedVenue("a", grid.ZoneSoi6, 1, 5),
		placedVenue("b", grid.ZoneSoi6, 1, 6),
	)
	m.exchangeErr = storage.ErrExchangeUnavailable
	return m
}

func swapAB(m *mockRepo) (*PlacementResult, error) {
	return PlaceVenue(m, nil, grid.DefaultZones(), PlaceRequest{VenueUUID: "a", Zone: grid.ZoneSoi6, Row: 1, Col: 6, SwapWithUUID: "b"})
}

func TestFallbackSwapSucceeds(t *testing.T) {
	m := fallbackFixture()

	res, err := swapAB(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Swapped || len(res.Venues) != 2 {
		t.Fatalf("expected two-venue swap result, got %+v", res)
	}
	// Detach source, relocate target, finalize source.
	if m.updateCalls != 3 {
		t.Fatalf("expected 3 single-row writes, got %d", m.updateCalls)
	}
	assertAt(t, m, "a", grid.ZoneSoi6, 1, 6)
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 5)
	assertCellsUnique(t, m)

	if res.Venues[0].UUID != "a" || res.Venues[1].UUID != "b" {
		t.Fatalf("result must list source then target, got %s,%s", res.Venues[0].UUID, res.Venues[1].UUID)
	}
}

func TestFallbackDetachFailureHasZeroEffect(t *testing.T) {
	m := fallbackFixture()
	m.failUpdates[1] = errTransient

	_, err := swapAB(m)
	if !errors.Is(err, ErrSwapFailed) {
		t.Fatalf("expected ErrSwapFailed, got %v", err)
	}
	if m.updateCalls != 1 {
		t.Fatalf("a failed detach needs no rollback writes, got %d calls", m.updateCalls)
	}
	assertAt(t, m, "a", grid.ZoneSoi6, 1, 5)
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 6)
}

func TestFallbackPhaseTwoFailureRollsBackExactly(t *testing.T) {
	m := fallbackFixture()
	// Phase 2 (relocating the target into the source's cell) fails.
	m.failUpdates[2] = errTransient

	_, err := swapAB(m)
	if !errors.Is(err, ErrSwapFailed) {
		t.Fatalf("expected ErrSwapFailed, got %v", err)
	}
	// The source must be restored to its exact original cell and the
	// target untouched.
	assertAt(t, m, "a", grid.ZoneSoi6, 1, 5)
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 6)
	assertCellsUnique(t, m)
	// Writes: detach, failed relocate, rollback.
	if m.updateCalls != 3 {
		t.Fatalf("expected 3 update calls, got %d", m.updateCalls)
	}
}

func TestFallbackPhaseThreeFailureRollsBackBoth(t *testing.T) {
	m := fallbackFixture()
	// Phase 3 (finalizing the source into its new cell) fails.
	m.failUpdates[3] = errTransient

	_, err := swapAB(m)
	if !errors.Is(err, ErrSwapFailed) {
		t.Fatalf("expected ErrSwapFailed, got %v", err)
	}
	assertAt(t, m, "a", grid.ZoneSoi6, 1, 5)
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 6)
	assertCellsUnique(t, m)
	// Writes: detach, relocate target, failed finalize, rollback target,
	// rollback source.
	if m.updateCalls != 5 {
		t.Fatalf("expected 5 update calls, got %d", m.updateCalls)
	}
}

func TestFallbackFatalWhenPhaseTwoRollbackFails(t *testing.T) {
	m := fallbackFixture()
	m.failUpdates[2] = errTransient
	m.failUpdates[3] = errTransient // the rollback write itself

	_, err := swapAB(m)
	if !errors.Is(err, ErrFatalState) {
		t.Fatalf("expected ErrFatalState, got %v", err)
	}
	// The one unrecoverable outcome: the source is left detached but keeps
	// its zone, the target is untouched.
	a := m.venues["a"]
	if a.Placed() {
		t.Fatalf("source should be detached in the fatal state, is at (%d,%d)", *a.Row, *a.Col)
	}
	if a.Zone != grid.ZoneSoi6 {
		t.Fatalf("detached source must keep its zone, got %q", a.Zone)
	}
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 6)
}

func TestFallbackFatalWhenPhaseThreeRollbackFails(t *testing.T) {
	m := fallbackFixture()
	m.failUpdates[3] = errTransient // finalize source
	m.failUpdates[4] = errTransient // rollback of the target

	_, err := swapAB(m)
	if !errors.Is(err, ErrFatalState) {
		t.Fatalf("expected ErrFatalState, got %v", err)
	}
}

func TestFallbackCrossZoneSwap(t *testing.T) {
	m := newMockRepo(
		placedVenue("a", grid.ZoneLKMetro, 4, 10),
		placedVenue("b", grid.ZoneWalkingStreet, 7, 3),
	)
	m.exchangeErr = storage.ErrExchangeUnavailable

	res, err := PlaceVenue(m, nil, grid.DefaultZones(), PlaceRequest{VenueUUID: "a", Zone: grid.ZoneWalkingStreet, Row: 7, Col: 3, SwapWithUUID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Swapped {
		t.Fatalf("expected swap result")
	}
	assertAt(t, m, "a", grid.ZoneWalkingStreet, 7, 3)
	assertAt(t, m, "b", grid.ZoneLKMetro, 4, 10)
	assertCellsUnique(t, m)
}

func TestEscalatedSwapFallsBackToo(t *testing.T) {
	m := fallbackFixture()

	// No SwapWithUUID: the occupant of (1,6) becomes the implicit partner.
	res, err := PlaceVenue(m, nil, grid.DefaultZones(), PlaceRequest{VenueUUID: "a", Zone: grid.ZoneSoi6, Row: 1, Col: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Swapped {
		t.Fatalf("expected escalation to swap")
	}
	assertAt(t, m, "a", grid.ZoneSoi6, 1, 6)
	assertAt(t, m, "b", grid.ZoneSoi6, 1, 5)
	assertCellsUnique(t, m)
}
