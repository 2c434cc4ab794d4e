package repositories

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentTableLines(t *testing.T) []string {
	t.Helper()
	schema, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(t, err)

	_, rest, found := strings.Cut(string(schema), "CREATE TABLE students (")
	require.True(t, found, "students table missing from schema")
	body, _, found := strings.Cut(rest, ");")
	require.True(t, found)

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ",")); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Every NOT NULL column of students must either be listed in the insert or
// carry a schema default, otherwise student provisioning fails outright.
func TestStudentInsertCoversRequiredColumns(t *testing.T) {
	for _, line := range studentTableLines(t) {
		column := strings.Fields(line)[0]
		if !strings.Contains(line, "NOT NULL") || strings.Contains(line, "DEFAULT") {
			continue
		}
		assert.Contains(t, studentInsertQuery, column,
			"column %q is NOT NULL without a default and must be part of the insert", column)
	}
}

func TestStudentEnrollmentDateDefaultsToToday(t *testing.T) {
	for _, line := range studentTableLines(t) {
		if strings.Fields(line)[0] != "date_enrolled" {
			continue
		}
		assert.Contains(t, line, "DEFAULT CURRENT_DATE")
		return
	}
	t.Fatal("date_enrolled column missing from students table")
}
