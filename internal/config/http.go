package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"
	HConnection   = "Connection"

	CTypeHTML        = "text/html; charset=utf-8"
	CTypeEventStream = "text/event-stream"
)

const (
	FormQuote     = "quote"
	FormConfirmed = "confirmed"
)
