package grid

import "sort"

// Zone layout dimensions for the known map areas. Soi 6 is two facing rows
// of bars; Walking Street is the large main grid; LK Metro is an L-shaped
// street, so two of its cells ranges are masked out where the arms meet.
const (
	ZoneSoi6          = "soi6"
	ZoneWalkingStreet = "walkingstreet"
	ZoneLKMetro       = "lkmetro"

	DefaultZoneRows = 1
	DefaultZoneCols = 24
)

// ZoneShape describes one zone's layout: a rectangle of Rows x Cols cells,
// minus any cells the mask excludes.
type ZoneShape struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	// masked reports cells excluded from the rectangle. Nil means none.
	masked func(row, col int) bool
}

// Contains reports whether (row, col) is a real cell of this zone.
// Coordinates are 1-based.
func (s ZoneShape) Contains(row, col int) bool {
	if row < 1 || row > s.Rows || col < 1 || col > s.Cols {
		return false
	}
	if s.masked != nil && s.masked(row, col) {
		return false
	}
	return true
}

// MaskedCells enumerates the excluded cells so clients can render the
// true outline. Empty for rectangular zones.
func (s ZoneShape) MaskedCells() []Position {
	if s.masked == nil {
		return nil
	}
	var out []Position
	for r := 1; r <= s.Rows; r++ {
		for c := 1; c <= s.Cols; c++ {
			if s.masked(r, c) {
				out = append(out, Position{Zone: s.Name, Row: r, Col: c})
			}
		}
	}
	return out
}

// ZoneTable is the fixed set of zones the validator answers for. Unknown
// zones are invalid, never "anything goes".
type ZoneTable map[string]ZoneShape

// Contains reports whether (row, col) is a valid cell of the named zone.
// Pure and total: unknown zones simply return false.
func (t ZoneTable) Contains(zone string, row, col int) bool {
	shape, ok := t[zone]
	if !ok {
		return false
	}
	return shape.Contains(row, col)
}

// Known reports whether the zone name exists in the table.
func (t ZoneTable) Known(zone string) bool {
	_, ok := t[zone]
	return ok
}

// Names returns the zone names in sorted order.
func (t ZoneTable) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// lkMetroMask models the junction where the two arms of the L meet: the
// upper arm's last cell on row 2 and the lower arm's first two cells on
// row 3 would visually overlap, so they are not placeable.
func lkMetroMask(row, col int) bool {
	switch row {
	case 2:
		return col == 24
	case 3:
		return col <= 2
	}
	return false
}

// DefaultZones returns the hand-specified layouts for the known map areas.
func DefaultZones() ZoneTable {
	return ZoneTable{
		ZoneSoi6:          {Name: ZoneSoi6, Rows: 2, Cols: 20},
		ZoneWalkingStreet: {Name: ZoneWalkingStreet, Rows: 42, Cols: 24},
		ZoneLKMetro:       {Name: ZoneLKMetro, Rows: 4, Cols: 24, masked: lkMetroMask},
	}
}
