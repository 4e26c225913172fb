package constants

// Centralized constants for env keys, routes and external endpoints.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "PATTAMAP_CONFIG"
	EnvDBPath              = "PATTAMAP_DB"

	// Session / Cookie names
	CookieSessionName = "pm_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteZones              = "/zones"
	RouteZoneVenues         = "/zones/:zone/venues"
	RouteVenues             = "/venues"
	RouteVenueByUUID        = "/venues/:venueUUID"
	RouteVenuePosition      = "/venues/:venueUUID/position"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
)

// Common JSON response keys
const (
	JSONKeyError     = "error"
	JSONKeyMessage   = "message"
	JSONKeyDetails   = "details"
	JSONKeyRetryable = "retryable"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrInvalidVenueID      = "Invalid venue ID"
	ErrVenueNotFound       = "Venue not found"
	ErrUnknownZone         = "Unknown zone"
	ErrNotVenueOwner       = "Not the owner of this venue"
	ErrFailedFetchVenues   = "Failed to fetch venues"
	ErrFailedCreateVenue   = "Failed to create venue"
	ErrVenueNameRequired   = "Venue name is required"
	ErrVenueNameExceeds    = "Venue name exceeds 64 characters"
	ErrInvalidPlacement    = "Invalid placement request"
	ErrCellOutOfBounds     = "Target cell is outside the zone layout"
	ErrCellTaken           = "Target cell was taken by a concurrent change; refresh and retry"
	ErrSwapFailedRolledOut = "Swap could not be completed; positions were restored"
	ErrSwapFatal           = "Swap failed and could not be rolled back; contact an operator"
	ErrFailedUpdatePos     = "Failed to update position"
)

// Log field names
const (
	LogFieldAddr = "addr"
)
