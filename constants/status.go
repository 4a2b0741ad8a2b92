package constants

import "time"

// User roles
const (
	RoleGuest = 0
	RoleAdmin = 1
)

// Locales
const (
	LocaleCookie  = "NEXT_LOCALE"
	DefaultLocale = "es"
	LocaleEN      = "en"
	LocaleES      = "es"
)

// Session
const (
	SessionCookie   = "access_token"
	SessionTTL      = 3 * 24 * time.Hour
	RequestIDHeader = "X-Request-ID"
	SessionIDHeader = "X-Session-ID"
	LoginPath       = "/login"
)

// Cache keys
const (
	CacheSearchPrefix    = "search:"
	CacheApartmentPrefix = "apartment:"
	CacheLastFilters     = "last_filters:"
	CacheDashboard       = "dashboard:summary"
)

// Cache TTLs
const (
	SearchCacheTTL    = 2 * time.Minute
	ApartmentCacheTTL = 10 * time.Minute
	LastFiltersTTL    = 30 * time.Minute
	DashboardCacheTTL = time.Minute
)

// Mail delivery modes
const (
	MailDeliverySMTP  = "smtp"
	MailDeliveryQueue = "queue"
	MailDeliveryNone  = "none"
)

// Queue names
const (
	QueueBookingEmails = "booking_emails"
)

// Pagination
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// DateLayout is the ISO calendar date used on the wire and in date columns.
const DateLayout = "2006-01-02"
