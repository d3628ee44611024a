package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyLocale    contextKey = "locale"
)

const (
	RequestParamID    = "id"
	RequestParamDate  = "date"
	RequestParamTime  = "time"
	RequestParamCourt = "courts"
)

const (
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderAcceptLanguage     = "Accept-Language"
	RequestHeaderRequestID          = "X-Request-Id"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-Ip"
	RequestHeaderRateLimit          = "X-Ratelimit-Limit"
	RequestHeaderRateLimitRemaining = "X-Ratelimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-Ratelimit-Window"
	ContentTypeJSON                 = "application/json"
)

const (
	ResponseErrorRequestLimitExceeded = "request limit exceeded"
	ResponseErrorPrepareShutdown      = "server is preparing to shut down"
	ResponseErrorUnhealthy            = "server is unhealthy"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
)

const (
	Empty = ""
)
