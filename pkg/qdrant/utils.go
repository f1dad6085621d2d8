package qdrant

import (
	"fmt"
	"strconv"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// validateSearchInput validates common search parameters
func validateSearchInput(collectionName string, vector []float32, topK int) error {
	if collectionName == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}
	if topK <= 0 {
		return fmt.Errorf("topK must be greater than 0")
	}
	return nil
}

// payloadToStrings flattens a Qdrant payload into a string-keyed string map.
// Reference collections store flat scalar payloads; nested values are
// stringified rather than dropped so nothing silently disappears.
func payloadToStrings(payload map[string]*qdrant.Value) map[string]string {
	if len(payload) == 0 {
		return nil
	}
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		switch kind := v.Kind.(type) {
		case *qdrant.Value_StringValue:
			out[k] = kind.StringValue
		case *qdrant.Value_IntegerValue:
			out[k] = strconv.FormatInt(kind.IntegerValue, 10)
		case *qdrant.Value_DoubleValue:
			out[k] = strconv.FormatFloat(kind.DoubleValue, 'f', -1, 64)
		case *qdrant.Value_BoolValue:
			out[k] = strconv.FormatBool(kind.BoolValue)
		default:
			out[k] = v.String()
		}
	}
	return out
}
