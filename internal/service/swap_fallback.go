package service

import (
	"github.com/selimhehe1/pattamap/internal/grid"
	"github.com/selimhehe1/pattamap/internal/logging"
)

// The sequential swap models the exchange as three single-row writes. Two
// rows cannot both claim each other's cell in one statement without
// momentarily violating cell uniqueness on the store side, so the source is
// parked in a detached state (NULL position, zone kept) while the target
// relocates, then finalized into its new cell. Every non-terminal phase has
// a defined rollback; the protocol must leave the map in Done or restored
// Idle before returning, with Fatal as the single unrecoverable outcome.
type swapPhase int

const (
	phaseIdle swapPhase = iota
	phaseSourceDetached
	phaseTargetRelocated
	phaseDone
)

func (p swapPhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseSourceDetached:
		return "source_detached"
	case phaseTargetRelocated:
		return "target_relocated"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// sequentialSwap exchanges source and target cell by cell. srcNew is the
// source's destination (the target's original cell) and tgtNew the target's
// (the source's original cell). Both venues must be placed.
func sequentialSwap(repo PositionRepo, source, target *grid.Venue, srcNew, tgtNew grid.Position) (*PlacementResult, error) {
	origSrc := tgtNew
	origTgt := srcNew
	phase := phaseIdle
	fields := logging.Fields{
		"source_uuid": source.UUID,
		"target_uuid": target.UUID,
	}

	// Phase 1: detach the source. Its original cell is freed without yet
	// claiming the destination. The zone is kept so the venue does not
	// vanish from zone listings mid-operation. A failure here aborts with
	// zero effect; nothing to roll back.
	if _, err := repo.UpdatePosition(source.UUID, origSrc.Zone, nil, nil); err != nil {
		logging.Error("swap aborted: failed to detach source", err, fields)
		return nil, ErrSwapFailed
	}
	phase = phaseSourceDetached

	// Phase 2: move the target into the source's original cell.
	updatedTgt, err := repo.UpdatePosition(target.UUID, tgtNew.Zone, &tgtNew.Row, &tgtNew.Col)
	if err != nil {
		logging.Error("swap failed relocating target; rolling back", err, fields)
		if _, rbErr := repo.UpdatePosition(source.UUID, origSrc.Zone, &origSrc.Row, &origSrc.Col); rbErr != nil {
			fields["phase"] = phase.String()
			logging.Critical("swap rollback failed; source venue left detached", rbErr, fields)
			return nil, ErrFatalState
		}
		return nil, ErrSwapFailed
	}
	phase = phaseTargetRelocated

	// Phase 3: finalize the source into its new cell. On failure the target
	// is still parked at a valid cell, so rollback undoes phases 2 then 1 in
	// reverse order.
	updatedSrc, err := repo.UpdatePosition(source.UUID, srcNew.Zone, &srcNew.Row, &srcNew.Col)
	if err != nil {
		logging.Error("swap failed finalizing source; rolling back", err, fields)
		if _, rbErr := repo.UpdatePosition(target.UUID, origTgt.Zone, &origTgt.Row, &origTgt.Col); rbErr != nil {
			fields["phase"] = phase.String()
			logging.Critical("swap rollback failed; source venue left detached", rbErr, fields)
			return nil, ErrFatalState
		}
		if _, rbErr := repo.UpdatePosition(source.UUID, origSrc.Zone, &origSrc.Row, &origSrc.Col); rbErr != nil {
			fields["phase"] = phase.String()
			logging.Critical("swap rollback failed; source venue left detached", rbErr, fields)
			return nil, ErrFatalState
		}
		return nil, ErrSwapFailed
	}
	phase = phaseDone
	fields["phase"] = phase.String()
	logging.Info("sequential swap completed", fields)

	return &PlacementResult{Venues: []grid.Venue{*updatedSrc, *updatedTgt}, Swapped: true}, nil
}
