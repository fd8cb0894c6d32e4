package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunafish/cookiekeeper"
)

func printReport(w io.Writer, r cookiekeeper.StatusReport) {
	fmt.Fprintf(w, "fields:       %d\n", r.FieldCount)
	fmt.Fprintf(w, "complete:     %s\n", yesNo(r.IsComplete))
	if len(r.MissingRequired) > 0 {
		fmt.Fprintf(w, "missing:      %s\n", strings.Join(r.MissingRequired, ", "))
	}
	if len(r.MissingRecommended) > 0 {
		fmt.Fprintf(w, "recommended:  missing %s\n", strings.Join(r.MissingRecommended, ", "))
	}
	if r.AgeKnown {
		fmt.Fprintf(w, "age:          %.2fh (%s)\n", r.AgeHours, freshness(r.IsFresh))
	} else {
		fmt.Fprintf(w, "age:          unknown (treated as stale)\n")
	}
	user := r.UserID
	if user == "" {
		user = "unknown"
	}
	fmt.Fprintf(w, "user:         %s\n", user)
	fmt.Fprintf(w, "token:        %s\n", yesNo(r.HasToken))
	fmt.Fprintf(w, "session:      %s\n", yesNo(r.HasSession))
	fmt.Fprintf(w, "health:       %d/100 (%s)\n", r.HealthScore, healthWord(r.HealthScore))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func freshness(fresh bool) string {
	if fresh {
		return "fresh"
	}
	return "may be expired"
}

func healthWord(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}
