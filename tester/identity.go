package tester

import (
	"fmt"
	"log"
	"strconv"

	json "github.com/goccy/go-json"
)

// Resource identity extraction. A successful creation response should expose
// the new resource's identifier under one of a few conventional keys; the
// strategies below are tried in priority order and the first present non-null
// value wins. Absence is explicit: callers must skip identity-dependent steps
// rather than substitute a default.

type idStrategy struct {
	name string
	pick func(map[string]any) (any, bool)
}

func topLevelKey(key string) func(map[string]any) (any, bool) {
	return func(body map[string]any) (any, bool) {
		v, ok := body[key]
		return v, ok && v != nil
	}
}

var idStrategies = []idStrategy{
	{name: "id", pick: topLevelKey("id")},
	{name: "_id", pick: topLevelKey("_id")},
	{name: "uuid", pick: topLevelKey("uuid")},
	{name: "data.id", pick: func(body map[string]any) (any, bool) {
		inner, ok := body["data"].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := inner["id"]
		return v, ok && v != nil
	}},
}

// ExtractID pulls the resource identifier out of a creation response body.
// The second return is false when no strategy matched or the body is not a
// JSON object.
func ExtractID(body []byte) (string, bool) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		log.Printf("tester.identity: creation body is not a JSON object error=%v", err)
		return "", false
	}
	for _, s := range idStrategies {
		if v, ok := s.pick(data); ok {
			id := formatID(v)
			log.Printf("tester.identity: extracted strategy=%s id=%s", s.name, id)
			return id, true
		}
	}
	log.Printf("tester.identity: no identifier key present")
	return "", false
}

// formatID renders an extracted identifier for use in an endpoint path.
// JSON numbers decode as float64; whole values must print as "7", not "7e+00".
func formatID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}
