package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveReport writes report as indented JSON into dir and returns the file
// path. The directory is created when missing.
func SaveReport(dir string, report RunReport) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Timestamp plus run ID prefix keeps names sortable and unique
	timestamp := report.StartTime.Format("20060102-150405")
	id := report.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("fixrun-report-%s-%s.json", timestamp, id)
	fullPath := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return fullPath, nil
}
