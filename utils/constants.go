package utils

import (
	"time"
)

// contextKey is a private type for request-scoped context values.
type contextKey string

// Context keys carried from the HTTP layer into business flows.
const (
	RequestIDKey  contextKey = "request_id"
	UserAgentKey  contextKey = "user_agent"
	IPAddressKey  contextKey = "ip_address"
	EndpointKey   contextKey = "endpoint"
	TimeoutKey    contextKey = "timeout"
	CancelFuncKey contextKey = "cancel_func"
	AdminIDKey    contextKey = "admin_id"
)

// Token and session time constants
const (
	// AccessTokenTTL is the default time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the default time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Booking constants
const (
	// DepositAmountUSD is the fixed booking deposit charged at checkout.
	DepositAmountUSD = 30

	// BookingWindowDays is the rolling future window offered for appointments.
	BookingWindowDays = 21
)
