package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", name))
	require.NoError(t, err)
	return string(ddl)
}

// ddlColumnNames pulls the column names out of a CREATE TABLE statement,
// skipping the key and constraint lines.
func ddlColumnNames(ddl string) map[string]bool {
	columns := map[string]bool{}
	for _, line := range strings.Split(ddl, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "CREATE", "PRIMARY", "UNIQUE", "KEY", "CONSTRAINT", ")":
			continue
		}
		columns[strings.Trim(fields[0], "`")] = true
	}
	return columns
}

func selectedColumnNames(t *testing.T, columnList string) []string {
	t.Helper()
	names := []string{}
	for _, column := range strings.Split(columnList, ",") {
		name := strings.TrimSpace(column)
		require.NotEmpty(t, name)
		names = append(names, name)
	}
	return names
}

// Every column the profile queries select must exist in the migrated schema,
// otherwise the first read fails with an unknown-column error.
func TestProfileColumnsExistInMigratedSchema(t *testing.T) {
	columns := ddlColumnNames(readMigration(t, "000001_create_profiles.up.sql"))
	for _, name := range selectedColumnNames(t, profileColumns) {
		assert.True(t, columns[name], "profiles schema is missing column %q", name)
	}
}

func TestRequestColumnsExistInMigratedSchema(t *testing.T) {
	columns := ddlColumnNames(readMigration(t, "000002_create_coin_requests.up.sql"))
	for _, name := range selectedColumnNames(t, requestColumns) {
		assert.True(t, columns[name], "coin_requests schema is missing column %q", name)
	}
}
