package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/selimhehe1/pattamap/internal/cache"
	"github.com/selimhehe1/pattamap/internal/constants"
	"github.com/selimhehe1/pattamap/internal/gate"
	"github.com/selimhehe1/pattamap/internal/grid"
	"github.com/selimhehe1/pattamap/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VenueHandler groups the venue and map HTTP handlers.
type VenueHandler struct {
	repo     storage.Repository
	zones    grid.ZoneTable
	listings *cache.Listings
	gate     *gate.Gate
}

func NewVenueHandler(repo storage.Repository, zones grid.ZoneTable, listings *cache.Listings) *VenueHandler {
	return &VenueHandler{repo: repo, zones: zones, listings: listings, gate: gate.New()}
}

type CreateVenuePayload struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// CreateVenue registers a new, unplaced venue owned by the session user.
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req CreateVenuePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrVenueNameRequired})
		return
	}
	if utf8.RuneCountInString(req.Name) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrVenueNameExceeds})
		return
	}
	if !h.zones.Known(req.Zone) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownZone})
		return
	}

	v := grid.Venue{
		UUID:       uuid.NewString(),
		Name:       req.Name,
		OwnerEmail: sessionEmail(c),
		Zone:       req.Zone,
	}
	if err := h.repo.CreateVenue(&v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateVenue})
		return
	}
	h.listings.Invalidate(req.Zone)
	c.JSON(http.StatusCreated, v)
}

// GetVenue returns a single venue record by its public UUID.
func (h *VenueHandler) GetVenue(c *gin.Context) {
	venueUUID := strings.TrimSpace(c.Param("venueUUID"))
	if _, err := uuid.Parse(venueUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidVenueID})
		return
	}
	v, err := h.repo.GetVenueByUUID(venueUUID)
	if errors.Is(err, storage.ErrVenueNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrVenueNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchVenues})
		return
	}
	c.JSON(http.StatusOK, v)
}
