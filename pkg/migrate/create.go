package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var nameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up

-- +goose Down
`

// CreateSQLMigration writes an empty timestamped goose migration and returns
// its path.
func CreateSQLMigration(dir, name string) (string, error) {
	cleaned := nameSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "", fmt.Errorf("migration name is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), cleaned)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(migrationTemplate), 0o644); err != nil {
		return "", fmt.Errorf("write migration file: %w", err)
	}
	return path, nil
}
