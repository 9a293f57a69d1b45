package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/event.schema.json
var eventSchemaSrc string

var eventSchema = jsonschema.MustCompileString("event.schema.json", eventSchemaSrc)

// validateSchema checks raw event JSON against the embedded schema before
// it is decoded into the catalog structs.
func validateSchema(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return eventSchema.Validate(v)
}
