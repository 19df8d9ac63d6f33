package openaigen

import (
	"testing"

	"github.com/uschan/reflecting-light/internal/gen"
)

func TestAnalysisSchemaIsStrict(t *testing.T) {
	t.Parallel()

	schema := generateSchema[gen.AnalysisPayload]()

	if schema[typeKey] != "object" {
		t.Fatalf("root type %v", schema[typeKey])
	}
	if ap, ok := schema[additionalPropertiesKey].(bool); !ok || ap {
		t.Fatalf("additionalProperties=%v", schema[additionalPropertiesKey])
	}

	props, ok := schema[propertiesKey].(map[string]interface{})
	if !ok {
		t.Fatal("no properties")
	}
	for _, want := range []string{
		"verse", "threeMirrors", "stickingPointQuestion", "philosopherNote",
		"futureScenarios", "godsSigh", "awakeningStone",
	} {
		if _, ok := props[want]; !ok {
			t.Fatalf("schema missing %q", want)
		}
	}

	required, ok := schema[requiredKey].([]string)
	if !ok || len(required) != len(props) {
		t.Fatalf("required=%v, want every property", schema[requiredKey])
	}

	// Nested objects close additionalProperties too.
	mirrors, ok := props["threeMirrors"].(map[string]interface{})
	if !ok {
		t.Fatal("threeMirrors not an object schema")
	}
	if ap, ok := mirrors[additionalPropertiesKey].(bool); !ok || ap {
		t.Fatalf("threeMirrors additionalProperties=%v", mirrors[additionalPropertiesKey])
	}

	scenarios, ok := props["futureScenarios"].(map[string]interface{})
	if !ok {
		t.Fatal("futureScenarios missing")
	}
	items, ok := scenarios[itemsKey].(map[string]interface{})
	if !ok {
		t.Fatal("futureScenarios has no items schema")
	}
	if ap, ok := items[additionalPropertiesKey].(bool); !ok || ap {
		t.Fatalf("scenario items additionalProperties=%v", items[additionalPropertiesKey])
	}
}
