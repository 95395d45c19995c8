package tap

import (
	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/stream"
)

// StreamName is the Singer stream all messages belong to.
const StreamName = "exchange_rate_cbr"

// makeSchema derives the output schema from one record's key set: date is a
// formatted date string, every other key a nullable number.
func makeSchema(record model.Record) stream.Schema {
	props := make(map[string]stream.Property, len(record))
	props["date"] = stream.Property{Type: "string", Format: "date"}
	for key := range record {
		if key == "date" {
			continue
		}
		props[key] = stream.Property{Type: []string{"null", "number"}}
	}
	return stream.Schema{Type: "object", Properties: props}
}
