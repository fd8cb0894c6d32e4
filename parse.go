package cookiekeeper

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Parse splits a raw cookie string ("k1=v1; k2=v2") into a CookieSet.
// Segments are trimmed and split on the first '=' only, so values may
// themselves contain '='. Segments without '=' or with an empty name are
// dropped. When a name repeats, the last occurrence wins. Empty or
// whitespace-only input yields an empty set, not an error.
//
// ObservedAt is left unset; the caller stamps it when the capture time is
// known (see CookieSet.WithObservedAt).
func Parse(raw string) CookieSet {
	fields := make(map[string]string)
	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}
	return CookieSet{Fields: fields, SourceRaw: raw}
}

// Serialize joins the fields back into "name=value" segments separated by
// "; ". Fields are sorted by name so identical content always produces the
// same string, which is what makes write-if-changed persistence work.
func Serialize(set CookieSet) string {
	if len(set.Fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(set.Fields))
	for name := range set.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(set.Fields[name])
	}
	return b.String()
}

// Merge overlays incoming onto base and returns the combined set. Incoming
// wins on conflicting names; fields the incoming set does not mention are
// kept from base. ObservedAt becomes the later of the two capture times.
// Neither input is modified.
func Merge(base, incoming CookieSet) CookieSet {
	fields := make(map[string]string, len(base.Fields)+len(incoming.Fields))
	for k, v := range base.Fields {
		fields[k] = v
	}
	for k, v := range incoming.Fields {
		fields[k] = v
	}

	observed := base.ObservedAt
	if incoming.ObservedAt.After(observed) {
		observed = incoming.ObservedAt
	}

	return CookieSet{
		Fields:     fields,
		ObservedAt: observed,
		SourceRaw:  incoming.SourceRaw,
	}
}

// TokenTime extracts the issue timestamp embedded in the _m_h5_tk token
// ("<hash>_<millis>"). ok is false when the token is absent or carries no
// parseable timestamp.
func TokenTime(set CookieSet) (t time.Time, ok bool) {
	token := set.Fields[tokenField]
	_, millisPart, found := strings.Cut(token, "_")
	if !found {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(millisPart), 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}
