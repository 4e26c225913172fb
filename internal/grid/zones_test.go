package grid

import "testing"

func TestRectangularZoneBounds(t *testing.T) {
	zones := DefaultZones()

	cases := []struct {
		zone     string
		row, col int
		want     bool
	}{
		{ZoneSoi6, 1, 1, true},
		{ZoneSoi6, 2, 20, true},
		{ZoneSoi6, 3, 1, false},
		{ZoneSoi6, 1, 21, false},
		{ZoneSoi6, 0, 1, false},
		{ZoneSoi6, 1, 0, false},
		{ZoneWalkingStreet, 42, 24, true},
		{ZoneWalkingStreet, 43, 1, false},
		{ZoneWalkingStreet, 1, 25, false},
	}
	for _, tc := range cases {
		if got := zones.Contains(tc.zone, tc.row, tc.col); got != tc.want {
			t.Errorf("Contains(%s,%d,%d) = %v, want %v", tc.zone, tc.row, tc.col, got, tc.want)
		}
	}
}

func TestLKMetroLShape(t *testing.T) {
	zones := DefaultZones()

	// Row 2 excludes only its last column.
	if zones.Contains(ZoneLKMetro, 2, 24) {
		t.Errorf("row 2 col 24 should be masked")
	}
	if !zones.Contains(ZoneLKMetro, 2, 23) {
		t.Errorf("row 2 col 23 should be valid")
	}

	// Row 3 excludes its first two columns.
	for _, col := range []int{1, 2} {
		if zones.Contains(ZoneLKMetro, 3, col) {
			t.Errorf("row 3 col %d should be masked", col)
		}
	}
	if !zones.Contains(ZoneLKMetro, 3, 3) {
		t.Errorf("row 3 col 3 should be valid")
	}

	// Rows 1 and 4 accept the full column range.
	for _, row := range []int{1, 4} {
		for col := 1; col <= 24; col++ {
			if !zones.Contains(ZoneLKMetro, row, col) {
				t.Errorf("row %d col %d should be valid", row, col)
			}
		}
	}
}

func TestUnknownZoneIsInvalid(t *testing.T) {
	zones := DefaultZones()
	if zones.Contains("atlantis", 1, 1) {
		t.Fatalf("unknown zone must never validate")
	}
	if zones.Known("atlantis") {
		t.Fatalf("unknown zone must not be known")
	}
}

func TestMaskedCellsEnumeration(t *testing.T) {
	zones := DefaultZones()
	masked := zones[ZoneLKMetro].MaskedCells()
	if len(masked) != 3 {
		t.Fatalf("expected 3 masked cells, got %d", len(masked))
	}
	if soi6 := zones[ZoneSoi6].MaskedCells(); soi6 != nil {
		t.Fatalf("rectangular zone should have no masked cells")
	}
}
