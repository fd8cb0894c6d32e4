package cookiekeeper

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func fieldMapGen() gopter.Gen {
	return gen.MapOf(gen.Identifier(), gen.AlphaString())
}

func TestProperty_SerializeParseRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Serialize(set)) preserves fields", prop.ForAll(
		func(fields map[string]string) bool {
			set := CookieSet{Fields: fields}
			parsed := Parse(Serialize(set)).Fields
			if len(fields) == 0 {
				return len(parsed) == 0
			}
			return reflect.DeepEqual(parsed, fields)
		},
		fieldMapGen(),
	))

	// Any input, however malformed, parses to a set whose serialization
	// re-parses to the same fields.
	properties.Property("parse then serialize is idempotent on arbitrary input", prop.ForAll(
		func(raw string) bool {
			once := Parse(raw)
			twice := Parse(Serialize(once))
			return reflect.DeepEqual(twice.Fields, once.Fields)
		},
		gen.AnyString(),
	))

	properties.Property("Serialize is deterministic", prop.ForAll(
		func(fields map[string]string) bool {
			set := CookieSet{Fields: fields}
			return Serialize(set) == Serialize(set)
		},
		fieldMapGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_MergePrecedence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("incoming wins on every shared key", prop.ForAll(
		func(baseFields, incomingFields map[string]string) bool {
			merged := Merge(CookieSet{Fields: baseFields}, CookieSet{Fields: incomingFields})
			for k, v := range incomingFields {
				if merged.Fields[k] != v {
					return false
				}
			}
			for k, v := range baseFields {
				if _, shared := incomingFields[k]; !shared && merged.Fields[k] != v {
					return false
				}
			}
			return len(merged.Fields) <= len(baseFields)+len(incomingFields)
		},
		fieldMapGen(),
		fieldMapGen(),
	))

	properties.TestingRun(t)
}
