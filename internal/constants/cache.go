package constants

import "time"

const (
	UserCachePrefix      = "user"
	UserCacheExpiry      = 24 * time.Hour
	SessionCachePrefix   = "session"
	LoginFailurePrefix   = "login_failures"
	RecommendationPrefix = "recs" // per-emotion memoized recommendations
	RecommendationExpiry = 30 * time.Minute
	QuoteCachePrefix     = "quote"
	QuoteCacheExpiry     = time.Hour
)
