package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/selimhehe1/pattamap/internal/constants"
	"github.com/selimhehe1/pattamap/internal/service"
	"github.com/selimhehe1/pattamap/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PositionRequest struct {
	Zone     string `json:"zone"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	SwapWith string `json:"swap_with"`
}

// UpdateVenuePosition relocates a venue on the map grid, swapping with an
// occupant or a declared partner when needed. The session user must own the
// venue being moved; the swap partner needs no consent, matching the map
// editor's drag-and-drop behavior for venue managers with zone rights.
func (h *VenueHandler) UpdateVenuePosition(c *gin.Context) {
	venueUUID := strings.TrimSpace(c.Param("venueUUID"))
	if _, err := uuid.Parse(venueUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidVenueID})
		return
	}

	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	req.SwapWith = strings.TrimSpace(req.SwapWith)
	if req.SwapWith != "" {
		if _, err := uuid.Parse(req.SwapWith); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidVenueID})
			return
		}
	}

	// Ownership check happens before the placement logic runs; the
	// coordinator itself never makes authorization decisions.
	v, err := h.repo.GetVenueByUUID(venueUUID)
	if errors.Is(err, storage.ErrVenueNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrVenueNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchVenues})
		return
	}
	if v.OwnerEmail != sessionEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotVenueOwner})
		return
	}

	// At most one in-flight placement per venue. The gate covers every
	// declared participant; an occupant discovered by escalation is only
	// protected by the store's uniqueness constraint, the same accepted
	// window as the occupancy check itself.
	release := h.gate.Acquire(venueUUID, req.SwapWith)
	defer release()

	res, err := service.PlaceVenue(h.repo, h.listings, h.zones, service.PlaceRequest{
		VenueUUID:    venueUUID,
		Zone:         req.Zone,
		Row:          req.Row,
		Col:          req.Col,
		SwapWithUUID: req.SwapWith,
	})
	if err != nil {
		switch err {
		case service.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlacement})
			return
		case service.ErrOutOfBounds:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCellOutOfBounds})
			return
		case service.ErrVenueNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrVenueNotFound})
			return
		case service.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCellTaken})
			return
		case service.ErrSwapFailed:
			c.JSON(http.StatusInternalServerError, gin.H{
				constants.JSONKeyError:     constants.ErrSwapFailedRolledOut,
				constants.JSONKeyRetryable: true,
			})
			return
		case service.ErrFatalState:
			c.JSON(http.StatusInternalServerError, gin.H{
				constants.JSONKeyError:     constants.ErrSwapFatal,
				constants.JSONKeyRetryable: false,
			})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdatePos})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"venues":  res.Venues,
		"swapped": res.Swapped,
	})
}
