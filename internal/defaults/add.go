package defaults

import (
	"fmt"
	"reflect"
)

// Add merges answers into the record for id. Values equal to the schema's
// own defaults are dropped, since saving them changes nothing. Returns the
// record as stored (nil when nothing remains).
func Add(store Store, id string, answers, schemaDefaults map[string]any) (map[string]any, error) {
	var stored map[string]any
	err := store.Update(id, func(current map[string]any) map[string]any {
		merged := make(map[string]any, len(current)+len(answers))
		for k, v := range current {
			merged[k] = v
		}
		for k, v := range answers {
			merged[k] = v
		}
		for k, v := range merged {
			if d, ok := schemaDefaults[k]; ok && sameValue(d, v) {
				delete(merged, k)
			}
		}
		if len(merged) > 0 {
			stored = merged
		}
		return merged
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// sameValue compares values that may have gone through different decoders
// (an int from YAML against a float64 from JSON).
func sameValue(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
