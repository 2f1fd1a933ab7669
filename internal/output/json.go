package output

import (
	"encoding/json"
	"fmt"
	"io"
)

func encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc
}

// JSON writes v as indented JSON. Task titles and descriptions keep their
// <, > and & unescaped.
func JSON(w io.Writer, v any) error {
	if err := encoder(w).Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the envelope printed for failed commands in JSON mode.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes the error envelope. Write failures are ignored: the
// process is about to exit with the error's code anyway.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	_ = encoder(w).Encode(ErrorResponse{Error: msg, Code: code, Details: details})
}

// BatchResult is the outcome for one ID of a comma-separated batch.
type BatchResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}
