// Package exheader implements the extra-header facet (§4.E): JSON-Pointer
// get/set over a record's parsed extra-header JSON object, plus typed
// setters for the structured event sub-objects FDSN extra headers define.
package exheader

import (
	gojson "github.com/goccy/go-json"

	"github.com/mseedgo/miniseed/errs"
)

// Doc is the parsed form of a record's extra_headers JSON text (§4.E's
// ParsedJson). The root is always a JSON object, per the record invariant
// that extra-header JSON parses as a single anonymous object.
type Doc struct {
	root map[string]any
}

// Parse parses text into a Doc. An empty string yields an empty object, not
// an error, since an empty extra-header section is a valid record.
func Parse(text string) (*Doc, error) {
	if text == "" {
		return &Doc{root: map[string]any{}}, nil
	}

	var root map[string]any
	if err := gojson.Unmarshal([]byte(text), &root); err != nil {
		return nil, errs.Wrap(errs.GenError, err)
	}

	return &Doc{root: root}, nil
}

// Serialize re-encodes d back into JSON text, implementing §4.E's
// serialize(record) operation. Callers are responsible for writing the
// result into Record.ExtraHeaders and updating its recorded length.
func (d *Doc) Serialize() (string, error) {
	if len(d.root) == 0 {
		return "", nil
	}

	b, err := gojson.Marshal(d.root)
	if err != nil {
		return "", errs.Wrap(errs.GenError, err)
	}

	return string(b), nil
}

// IsEmpty reports whether d holds no top-level keys.
func (d *Doc) IsEmpty() bool { return len(d.root) == 0 }
