package helpers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spektr-org/projtrend/engine"
)

// WriteSummary writes the summary to path as indented JSON.
func WriteSummary(path string, summary engine.ResultSummary) error {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: writing summary %s: %v", engine.ErrIO, path, err)
	}
	return nil
}
