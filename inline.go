package cookiekeeper

import (
	"encoding/json"
	"strings"
)

// Operators usually refresh the cookie by copying either the Cookie request
// header or a devtools/extension JSON export out of the browser. Both are
// accepted here.

type payloadEnvelope struct {
	Cookies []payloadCookie `json:"cookies"`
}

type payloadCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParsePayload parses a cookie payload in either supported shape: a raw
// "name=value; ..." string, or a JSON cookie export (`Cookie[]`, or the
// same list under a "cookies" key; extra per-cookie attributes like domain
// and path are ignored). JSON entries collapse to name/value with the same
// last-wins dedup as Parse. Input that looks like JSON but does not decode
// falls back to cookie-string parsing.
func ParsePayload(raw string) CookieSet {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		if set, ok := parseJSONExport(trimmed); ok {
			set.SourceRaw = raw
			return set
		}
	}
	return Parse(raw)
}

func parseJSONExport(raw string) (CookieSet, bool) {
	// Support both `Cookie[]` and `{ cookies: Cookie[] }`.
	var envelope payloadEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && len(envelope.Cookies) > 0 {
		return exportToSet(envelope.Cookies), true
	}

	var list []payloadCookie
	if err := json.Unmarshal([]byte(raw), &list); err == nil && len(list) > 0 {
		return exportToSet(list), true
	}
	return CookieSet{}, false
}

func exportToSet(cookies []payloadCookie) CookieSet {
	fields := make(map[string]string, len(cookies))
	for _, c := range cookies {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		fields[name] = c.Value
	}
	return CookieSet{Fields: fields}
}
