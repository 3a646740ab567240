package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixUserStats   CachePrefix = "STATS_"
	CachePrefixUserFlights CachePrefix = "FLIGHTS_"
	CachePrefixLookup      CachePrefix = "LOOKUP_"
)

// DefaultTopRoutesLimit caps the route breakdown when no limit is requested.
const DefaultTopRoutesLimit = 10

// UnknownAircraftLabel groups flights without an aircraft type in breakdowns.
const UnknownAircraftLabel = "Unknown"

// LocalIDPrefix marks flight ids assigned client-side when the store was
// unreachable at write time. Records carrying it are not durably saved.
const LocalIDPrefix = "local-"
