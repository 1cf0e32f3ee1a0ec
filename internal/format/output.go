// Package format renders CLI output. Commands emit strict JSON so the
// binary composes with jq and scripts; human-oriented rendering lives in
// the TUI, not here.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v as a single JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteError writes a failure as JSON on the same contract as WriteJSON,
// so callers piping stdout never have to parse free-form text.
func WriteError(w io.Writer, e error, pretty bool) error {
	return WriteJSON(w, map[string]string{"error": e.Error()}, pretty)
}
