package constants

const (
	// Session
	SessionCookieName   = "colony_session"
	ContextKeyUserID    = "user_id"
	ContextKeyActor     = "actor"
	ContextKeyJob       = "job"
	ContextKeyRequestID = "request_id"

	// Credentials
	MinPasswordLength = 1

	// Colonist
	MaxColonistAge = 120

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultCaptainID is the colonist treated as privileged when
	// PRIVILEGED_IDS is not configured.
	DefaultCaptainID = 1
)

// Report defaults
const (
	DefaultModule          = "module_1"
	DefaultExcludedKeyword = "engineer"
	MinorAgeThreshold      = 18
	ShortJobHours          = 20
	RelocationSourceModule = "module_1"
	RelocationTargetModule = "module_3"
	RelocationMaxAge       = 21
	DepartmentMinHours     = 25
)

var (
	// PositionKeywords are matched with OR semantics.
	PositionKeywords = []string{"chief", "middle"}
	// GeologicalDepartmentKeywords locates the geological department by title.
	GeologicalDepartmentKeywords = []string{"geological", "геолог"}
)
