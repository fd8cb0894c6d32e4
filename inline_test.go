package cookiekeeper

import (
	"reflect"
	"testing"
)

func TestParsePayload_JSONArray(t *testing.T) {
	raw := `[{"name":"unb","value":"1","domain":"example.com"},{"name":"cna","value":"x"},{"name":"unb","value":"2"}]`
	set := ParsePayload(raw)
	want := map[string]string{"unb": "2", "cna": "x"}
	if !reflect.DeepEqual(set.Fields, want) {
		t.Fatalf("want %v got %v", want, set.Fields)
	}
	if set.SourceRaw != raw {
		t.Fatalf("SourceRaw not retained")
	}
}

func TestParsePayload_Envelope(t *testing.T) {
	set := ParsePayload(`{"cookies":[{"name":"cookie2","value":"abc"},{"name":"","value":"dropped"}]}`)
	want := map[string]string{"cookie2": "abc"}
	if !reflect.DeepEqual(set.Fields, want) {
		t.Fatalf("want %v got %v", want, set.Fields)
	}
}

func TestParsePayload_CookieString(t *testing.T) {
	set := ParsePayload("a=1; b=2")
	want := map[string]string{"a": "1", "b": "2"}
	if !reflect.DeepEqual(set.Fields, want) {
		t.Fatalf("want %v got %v", want, set.Fields)
	}
}

func TestParsePayload_BrokenJSONFallsBack(t *testing.T) {
	// Looks like JSON but is not: treated as a cookie string, which here
	// parses to nothing rather than failing.
	set := ParsePayload(`[{"name": broken`)
	if len(set.Fields) != 0 {
		t.Fatalf("want no fields got %v", set.Fields)
	}

	// A JSON-ish payload that happens to contain a valid segment still
	// goes through cookie-string parsing.
	set = ParsePayload(`{oops; a=1}`)
	if set.Fields["a"] != "1}" {
		t.Fatalf("unexpected fields %v", set.Fields)
	}
}
