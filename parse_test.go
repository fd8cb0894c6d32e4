package cookiekeeper

import (
	"reflect"
	"testing"
	"time"
)

func TestParse_DedupLastWins(t *testing.T) {
	set := Parse("a=1; a=2; b=3")
	want := map[string]string{"a": "2", "b": "3"}
	if !reflect.DeepEqual(set.Fields, want) {
		t.Fatalf("want %v got %v", want, set.Fields)
	}
}

func TestParse_TrimAndMalformedSegments(t *testing.T) {
	set := Parse("  a = 1 ;; novalue; =x; b=c=d ")
	want := map[string]string{"a": "1", "b": "c=d"}
	if !reflect.DeepEqual(set.Fields, want) {
		t.Fatalf("want %v got %v", want, set.Fields)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", ";;;"} {
		set := Parse(raw)
		if set.Fields == nil {
			t.Fatalf("Parse(%q): nil Fields", raw)
		}
		if len(set.Fields) != 0 {
			t.Fatalf("Parse(%q): want empty got %v", raw, set.Fields)
		}
		if set.SourceRaw != raw {
			t.Fatalf("Parse(%q): SourceRaw %q", raw, set.SourceRaw)
		}
	}
}

func TestParse_LeavesObservedAtUnset(t *testing.T) {
	if !Parse("a=1").ObservedAt.IsZero() {
		t.Fatalf("expected zero ObservedAt")
	}
}

func TestSerialize_SortedAndDeterministic(t *testing.T) {
	set := CookieSet{Fields: map[string]string{"b": "2", "a": "1", "c": ""}}
	want := "a=1; b=2; c="
	if got := Serialize(set); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
	if Serialize(set) != Serialize(set) {
		t.Fatalf("serialization not stable")
	}
	if Serialize(CookieSet{}) != "" {
		t.Fatalf("empty set should serialize to empty string")
	}
}

func TestParseSerialize_RoundTrip(t *testing.T) {
	raw := "unb=123; _m_h5_tk=tok_1700000000000; cookie2=a=b=c; cna=x; sgcookie=y"
	set := Parse(raw)
	again := Parse(Serialize(set))
	if !reflect.DeepEqual(again.Fields, set.Fields) {
		t.Fatalf("round trip changed fields: %v vs %v", set.Fields, again.Fields)
	}
}

func TestMerge_IncomingWins(t *testing.T) {
	base := Parse("a=1; b=2")
	incoming := Parse("b=9; c=3")
	merged := Merge(base, incoming)

	want := map[string]string{"a": "1", "b": "9", "c": "3"}
	if !reflect.DeepEqual(merged.Fields, want) {
		t.Fatalf("want %v got %v", want, merged.Fields)
	}
	// Inputs stay untouched.
	if base.Fields["b"] != "2" || len(base.Fields) != 2 {
		t.Fatalf("base mutated: %v", base.Fields)
	}
	if len(incoming.Fields) != 2 {
		t.Fatalf("incoming mutated: %v", incoming.Fields)
	}
}

func TestMerge_ObservedAtTakesLater(t *testing.T) {
	early := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)

	base := Parse("a=1").WithObservedAt(late)
	incoming := Parse("b=2").WithObservedAt(early)
	if got := Merge(base, incoming).ObservedAt; !got.Equal(late) {
		t.Fatalf("want %v got %v", late, got)
	}
	if got := Merge(incoming, base).ObservedAt; !got.Equal(late) {
		t.Fatalf("want %v got %v", late, got)
	}

	// Base without a capture time adopts incoming's.
	if got := Merge(Parse("a=1"), incoming).ObservedAt; !got.Equal(early) {
		t.Fatalf("want %v got %v", early, got)
	}
}

func TestWithObservedAt_CopiesFields(t *testing.T) {
	orig := Parse("a=1")
	stamped := orig.WithObservedAt(time.Now())
	stamped.Fields["a"] = "mutated"
	if orig.Fields["a"] != "1" {
		t.Fatalf("WithObservedAt shares the field map")
	}
}

func TestTokenTime(t *testing.T) {
	set := Parse("_m_h5_tk=ab12cd_1700000000000")
	got, ok := TokenTime(set)
	if !ok {
		t.Fatalf("expected token time")
	}
	if want := time.UnixMilli(1700000000000); !got.Equal(want) {
		t.Fatalf("want %v got %v", want, got)
	}

	for _, raw := range []string{"", "_m_h5_tk=notimestamp", "_m_h5_tk=tok_12a3", "_m_h5_tk=tok_-5"} {
		if _, ok := TokenTime(Parse(raw)); ok {
			t.Fatalf("TokenTime(%q): expected no timestamp", raw)
		}
	}
}
