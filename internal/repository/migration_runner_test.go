package repository

import (
	"os"
	"strings"
	"testing"

	"shopmesh/internal/database"

	"go.uber.org/zap"
)

// Runs the real migration set against the shared postgres container
// from TestMain.
func TestMigrationsApplyAndReportVersion(t *testing.T) {
	const migrationsDir = "../../migrations"

	if err := database.RunMigrations(testDB, migrationsDir, zap.NewNop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations dir: %v", err)
	}
	expected := int64(0)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			expected++
		}
	}

	version, err := database.SchemaVersion(testDB)
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != expected {
		t.Fatalf("expected schema version %d after applying all migrations, got %d", expected, version)
	}

	// A second run must be a no-op.
	if err := database.RunMigrations(testDB, migrationsDir, zap.NewNop()); err != nil {
		t.Fatalf("re-running migrations must not fail: %v", err)
	}
}
