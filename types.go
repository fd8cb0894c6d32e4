package cookiekeeper

import "time"

// CookieSet is an immutable snapshot of a parsed cookie string. Operations
// that change it (Merge, WithObservedAt) return a new value; a caller may
// safely hold an older snapshot while computing a new one.
type CookieSet struct {
	// Fields maps cookie name to value. Names are unique; duplicate
	// occurrences in the source string collapse to the last one seen.
	Fields map[string]string

	// ObservedAt is when this set was captured. The zero time means unknown.
	ObservedAt time.Time

	// SourceRaw is the original unparsed input, kept for diagnostics only.
	SourceRaw string
}

// WithObservedAt returns a copy of the set stamped with the given capture time.
func (s CookieSet) WithObservedAt(t time.Time) CookieSet {
	return CookieSet{
		Fields:     cloneFields(s.Fields),
		ObservedAt: t,
		SourceRaw:  s.SourceRaw,
	}
}

func cloneFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// StatusReport is a read-only view derived from a CookieSet by Evaluate.
type StatusReport struct {
	FieldCount int

	// IsComplete is true when every required field is present.
	IsComplete         bool
	MissingRequired    []string
	MissingRecommended []string

	// AgeKnown reports whether a capture time could be determined, either
	// from CookieSet.ObservedAt or from the timestamp embedded in the
	// _m_h5_tk token. When false, AgeHours is zero and IsFresh is false.
	AgeKnown bool
	AgeHours float64
	IsFresh  bool

	// UserID is the first identity-like field found, empty when none.
	UserID     string
	HasToken   bool
	HasSession bool

	// HealthScore is a 0-100 summary of completeness, freshness, and the
	// token/session components.
	HealthScore int
}

const (
	// tokenField carries the H5 API token; its value embeds the issue
	// timestamp as "<hash>_<millis>".
	tokenField = "_m_h5_tk"

	// sessionField carries the session identifier.
	sessionField = "cookie2"
)

// RequiredFields returns the field names a cookie set must carry to be
// complete. A field counts as present only when its key exists with a
// non-empty value; an empty value is treated the same as a missing key.
func RequiredFields() []string {
	return []string{
		"unb",      // user id
		tokenField, // H5 token
		sessionField,
		"cna", // client id
		"sgcookie",
	}
}

// RecommendedFields returns secondary field names whose absence is reported
// but does not make the set incomplete.
func RecommendedFields() []string {
	return []string{
		"x",
		"t",
		"tracknick",
		"XSRF-TOKEN",
	}
}

// identityFields are checked in order for a displayable user identity.
func identityFields() []string {
	return []string{"unb", "tracknick"}
}
