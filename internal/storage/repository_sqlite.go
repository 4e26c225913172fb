package storage

import (
	"errors"

	"github.com/selimhehe1/pattamap/internal/grid"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// atomicExchange mirrors the config toggle: when false the store
	// declines the multi-row procedure and swaps run sequentially.
	atomicExchange bool
}

func NewSQLiteRepository(db *gorm.DB, atomicExchange bool) Repository {
	return &sqliteRepository{db: db, atomicExchange: atomicExchange}
}

func (r *sqliteRepository) CreateVenue(v *grid.Venue) error {
	err := r.db.Create(v).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPositionTaken
	}
	return err
}

func (r *sqliteRepository) GetVenueByUUID(uuid string) (*grid.Venue, error) {
	var v grid.Venue
	err := r.db.Where("uuid = ?", uuid).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *sqliteRepository) GetVenuesByZone(zone string) ([]grid.Venue, error) {
	var venues []grid.Venue
	if err := r.db.Where("zone = ?", zone).Order("row, col").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *sqliteRepository) FindOccupant(zone string, row, col int, excludingUUID string) (*grid.Venue, error) {
	var v grid.Venue
	err := r.db.Where("zone = ? AND row = ? AND col = ? AND uuid <> ?", zone, row, col, excludingUUID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *sqliteRepository) UpdatePosition(uuid string, zone string, row, col *int) (*grid.Venue, error) {
	res := r.db.Model(&grid.Venue{}).Where("uuid = ?", uuid).Updates(map[string]interface{}{
		"zone": zone,
		"row":  row,
		"col":  col,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrPositionTaken
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVenueNotFound
	}
	return r.GetVenueByUUID(uuid)
}

// ExchangePositions runs the swap inside a single transaction. The source is
// detached first so the target can claim its cell without tripping the
// uniqueness index; SQLite rolls the whole transaction back on any error, so
// no intermediate state is ever visible to other readers.
func (r *sqliteRepository) ExchangePositions(aUUID, bUUID string, aPos, bPos grid.Position) ([2]grid.Venue, error) {
	var out [2]grid.Venue
	if !r.atomicExchange {
		return out, ErrExchangeUnavailable
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		set := func(uuid string, zone string, row, col interface{}) error {
			res := tx.Model(&grid.Venue{}).Where("uuid = ?", uuid).Updates(map[string]interface{}{
				"zone": zone,
				"row":  row,
				"col":  col,
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrVenueNotFound
			}
			return nil
		}
		if err := set(aUUID, aPos.Zone, nil, nil); err != nil {
			return err
		}
		if err := set(bUUID, bPos.Zone, bPos.Row, bPos.Col); err != nil {
			return err
		}
		if err := set(aUUID, aPos.Zone, aPos.Row, aPos.Col); err != nil {
			return err
		}
		// Read the results inside the transaction: a failed read aborts the
		// whole exchange, so the procedure either commits with both records
		// in hand or leaves no trace. Callers may then treat any error as
		// "nothing happened" and retry or fall back safely.
		for i, uuid := range []string{aUUID, bUUID} {
			var v grid.Venue
			if err := tx.Where("uuid = ?", uuid).First(&v).Error; err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return out, ErrPositionTaken
		}
		if errors.Is(err, ErrVenueNotFound) {
			return out, ErrVenueNotFound
		}
		return out, err
	}
	return out, nil
}
