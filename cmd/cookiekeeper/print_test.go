package main

import (
	"strings"
	"testing"
	"time"

	"github.com/lunafish/cookiekeeper"
)

func TestPrintReport_Complete(t *testing.T) {
	now := time.Now()
	set := cookiekeeper.Parse("unb=123; _m_h5_tk=tok; cookie2=abc; cna=x; sgcookie=y").WithObservedAt(now)
	report := cookiekeeper.Evaluate(set, now, 0)

	var b strings.Builder
	printReport(&b, report)
	out := b.String()

	for _, want := range []string{
		"fields:       5",
		"complete:     yes",
		"user:         123",
		"token:        yes",
		"session:      yes",
		"(fresh)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "missing:") {
		t.Fatalf("complete report should not list missing fields:\n%s", out)
	}
}

func TestPrintReport_IncompleteUnknownAge(t *testing.T) {
	report := cookiekeeper.Evaluate(cookiekeeper.Parse("unb=123"), time.Now(), 0)

	var b strings.Builder
	printReport(&b, report)
	out := b.String()

	for _, want := range []string{
		"complete:     no",
		"missing:      _m_h5_tk, cookie2, cna, sgcookie",
		"age:          unknown (treated as stale)",
		"health:       ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthWord(t *testing.T) {
	cases := map[int]string{100: "good", 80: "good", 79: "fair", 60: "fair", 59: "poor", 0: "poor"}
	for score, want := range cases {
		if got := healthWord(score); got != want {
			t.Fatalf("healthWord(%d): want %q got %q", score, want, got)
		}
	}
}
