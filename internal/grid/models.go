package grid

import (
	"gorm.io/gorm"
)

// Venue is a directory entry placed on the city map grid. Row and Col are
// pointers because a venue may legitimately have no position: either it was
// never placed, or it is momentarily detached while a swap is in flight.
// Zone is kept even while detached so zone-scoped listings still include
// the venue mid-operation.
type Venue struct {
	gorm.Model
	UUID       string `json:"uuid" gorm:"size:36;uniqueIndex"`
	Name       string `json:"name"`
	OwnerEmail string `json:"owner_email,omitempty"`
	Zone       string `json:"zone"`
	Row        *int   `json:"row,omitempty"`
	Col        *int   `json:"col,omitempty"`
}

// Placed reports whether the venue currently occupies a cell.
func (v *Venue) Placed() bool { return v.Row != nil && v.Col != nil }

// CurrentPosition returns the venue's cell. ok is false for detached venues.
func (v *Venue) CurrentPosition() (pos Position, ok bool) {
	if !v.Placed() {
		return Position{}, false
	}
	return Position{Zone: v.Zone, Row: *v.Row, Col: *v.Col}, true
}

// Position is a fully-qualified grid cell.
type Position struct {
	Zone string `json:"zone"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}
