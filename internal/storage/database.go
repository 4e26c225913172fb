package storage

import (
	"github.com/selimhehe1/pattamap/internal/grid"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&grid.Venue{}); err != nil {
		return nil, err
	}

	// Cell uniqueness is enforced at the store: no two venues may share a
	// (zone,row,col). The index is partial so detached venues (NULL row/col)
	// never collide with each other.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_venues_cell ON venues(zone, row, col) WHERE row IS NOT NULL AND col IS NOT NULL;").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
