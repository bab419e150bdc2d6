package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadResults reads the analyzer's results file: a JSON array of
// AnalysisResult. Unknown fields are rejected so schema drift between
// analyzer and reporter is caught at load time rather than silently
// dropped from the rendered report.
func LoadResults(path string) ([]AnalysisResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var results []AnalysisResult
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("decode results file %s: %w", path, err)
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("results file %s: trailing data", path)
		}
		return nil, err
	}
	return results, nil
}
