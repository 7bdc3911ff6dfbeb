package user

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// usersTableColumns pulls the column names of the users table out of the
// initial migration.
func usersTableColumns(t *testing.T) map[string]bool {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*_init.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "initial migration not found")

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	body := regexp.MustCompile(`(?s)CREATE TABLE users \((.*?)\n\);`).
		FindStringSubmatch(string(content))
	require.Len(t, body, 2, "users table definition not found in migration")

	cols := make(map[string]bool)
	for _, line := range strings.Split(body[1], "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "--") {
			continue
		}
		cols[fields[0]] = true
	}
	return cols
}

// The repository's SQL and the migrated schema have to agree on column
// names; a drift here fails at runtime only, never at compile time.
func TestRepositoryColumnsExistInSchema(t *testing.T) {
	cols := usersTableColumns(t)

	for _, col := range []string{
		"id", "name", "email", "password", "phone", "address", "avatar_url", "created_at",
	} {
		assert.True(t, cols[col], "users table is missing column %q referenced by the repository", col)
	}
}
