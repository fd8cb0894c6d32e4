package cookiekeeper

import "time"

// DefaultFreshnessThreshold is how old a cookie set may be before it is
// reported as stale.
const DefaultFreshnessThreshold = 24 * time.Hour

// Evaluate derives a StatusReport from a cookie set. It is a pure function
// of its inputs and never fails: unknowns come back as explicit report
// fields (AgeKnown=false, empty UserID), not as errors.
//
// A threshold <= 0 selects DefaultFreshnessThreshold. Freshness is
// strictly-less-than the threshold: a set exactly at the threshold age is
// stale. When the set carries no capture time at all, its age is unknown
// and it is treated as stale.
func Evaluate(set CookieSet, now time.Time, threshold time.Duration) StatusReport {
	if threshold <= 0 {
		threshold = DefaultFreshnessThreshold
	}

	report := StatusReport{
		FieldCount:         len(set.Fields),
		MissingRequired:    missingFields(set, RequiredFields()),
		MissingRecommended: missingFields(set, RecommendedFields()),
	}
	report.IsComplete = len(report.MissingRequired) == 0
	report.HasToken = fieldPresent(set, tokenField)
	report.HasSession = fieldPresent(set, sessionField)

	for _, name := range identityFields() {
		if fieldPresent(set, name) {
			report.UserID = set.Fields[name]
			break
		}
	}

	observed := set.ObservedAt
	if observed.IsZero() {
		observed, _ = TokenTime(set)
	}
	if !observed.IsZero() {
		age := now.Sub(observed)
		report.AgeKnown = true
		report.AgeHours = age.Hours()
		report.IsFresh = age < threshold
	}

	report.HealthScore = healthScore(report)
	return report
}

// fieldPresent applies the presence policy documented at RequiredFields:
// the key must exist and its value must be non-empty.
func fieldPresent(set CookieSet, name string) bool {
	return set.Fields[name] != ""
}

func missingFields(set CookieSet, names []string) []string {
	var missing []string
	for _, name := range names {
		if !fieldPresent(set, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// healthScore weighs completeness (40), freshness (30), and the
// token/session components (15 each), capped at 100.
func healthScore(r StatusReport) int {
	score := 0

	if r.IsComplete {
		score += 40
	} else if penalty := len(r.MissingRequired) * 10; penalty < 40 {
		score += 40 - penalty
	}

	switch {
	case r.IsFresh:
		score += 30
	case r.AgeKnown && r.AgeHours < 48:
		score += 20
	case r.AgeKnown && r.AgeHours < 72:
		score += 10
	}

	if r.HasToken {
		score += 15
	}
	if r.HasSession {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}
