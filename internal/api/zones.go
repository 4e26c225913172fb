package api

import (
	"net/http"

	"github.com/selimhehe1/pattamap/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListZones returns every zone's layout, including the cells masked out of
// irregular zones, so clients can render the true map outline.
func (h *VenueHandler) ListZones(c *gin.Context) {
	out := make([]gin.H, 0, len(h.zones))
	for _, name := range h.zones.Names() {
		shape := h.zones[name]
		entry := gin.H{
			"name": name,
			"rows": shape.Rows,
			"cols": shape.Cols,
		}
		if masked := shape.MaskedCells(); len(masked) > 0 {
			entry["masked_cells"] = masked
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"zones": out})
}

// ListZoneVenues returns the cached listing for one zone.
func (h *VenueHandler) ListZoneVenues(c *gin.Context) {
	zone := c.Param("zone")
	if !h.zones.Known(zone) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUnknownZone})
		return
	}
	venues, err := h.listings.Venues(zone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchVenues})
		return
	}
	c.JSON(http.StatusOK, gin.H{"zone": zone, "venues": venues})
}
