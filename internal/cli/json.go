package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJSON writes v to w as indented JSON, matching the rendering every
// --output json code path in this package uses.
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output as JSON: %w", err)
	}
	return nil
}
