// Package stream implements the Singer-style outbound protocol: one JSON
// message per line, of type SCHEMA, RECORD or STATE.
package stream

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
)

// Property is one schema property definition. Type is either a single JSON
// type name or a list of alternatives such as ["null","number"].
type Property struct {
	Type   any    `json:"type"`
	Format string `json:"format,omitempty"`
}

// Schema describes the shape of emitted records.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
}

// Emitter is the outbound stream interface the sync driver writes to.
// High-level code injects the implementation; the driver depends only on the
// interface.
type Emitter interface {
	WriteSchema(stream string, schema Schema, keyProperties []string) error
	WriteRecord(stream string, record model.Record) error
	WriteState(state model.State) error
}

type schemaMessage struct {
	Type          string   `json:"type"`
	Stream        string   `json:"stream"`
	Schema        Schema   `json:"schema"`
	KeyProperties []string `json:"key_properties"`
}

type recordMessage struct {
	Type   string       `json:"type"`
	Stream string       `json:"stream"`
	Record model.Record `json:"record"`
}

type stateMessage struct {
	Type  string      `json:"type"`
	Value model.State `json:"value"`
}

// LineEmitter writes one JSON message per line to an io.Writer, stdout in
// production.
type LineEmitter struct {
	enc *json.Encoder
}

// NewLineEmitter creates a LineEmitter on w.
func NewLineEmitter(w io.Writer) *LineEmitter {
	return &LineEmitter{enc: json.NewEncoder(w)}
}

// WriteSchema emits a SCHEMA message.
func (e *LineEmitter) WriteSchema(stream string, schema Schema, keyProperties []string) error {
	return e.enc.Encode(schemaMessage{
		Type:          "SCHEMA",
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

// WriteRecord emits a RECORD message.
func (e *LineEmitter) WriteRecord(stream string, record model.Record) error {
	return e.enc.Encode(recordMessage{Type: "RECORD", Stream: stream, Record: record})
}

// WriteState emits a STATE message.
func (e *LineEmitter) WriteState(state model.State) error {
	return e.enc.Encode(stateMessage{Type: "STATE", Value: state})
}
