package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"PollSensei-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogueYAML = `
Parametric Test:
  - T-Tests
  - Paired T-Test
Regression Analysis:
  - Simple Linear Regression
  - "  "
`

func TestParseCataloguePreservesOrder(t *testing.T) {
	cat, err := ParseCatalogue([]byte(catalogueYAML))
	require.NoError(t, err)

	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "Parametric Test", cat.Categories[0].Name)
	assert.Equal(t, []string{"Simple Linear Regression"}, cat.Categories[1].Tests)

	tests := cat.Tests()
	require.Len(t, tests, 3)
	assert.Equal(t, models.Test{ID: "tTests", Name: "T-Tests", Category: "Parametric Test", Variables: []models.Variable{}}, tests[0])
	assert.Equal(t, "simpleLinearRegression", tests[2].ID)

	assert.Equal(t, map[string][]string{
		"Parametric Test":     {"T-Tests", "Paired T-Test"},
		"Regression Analysis": {"Simple Linear Regression"},
	}, cat.Grouped())
}

func TestParseCatalogueRejectsBadShape(t *testing.T) {
	_, err := ParseCatalogue([]byte("- just\n- a list\n"))
	assert.ErrorContains(t, err, "mapping")

	_, err = ParseCatalogue([]byte("Parametric Test:\n  nested: value\n"))
	assert.ErrorContains(t, err, "Parametric Test")

	cat, err := ParseCatalogue(nil)
	require.NoError(t, err)
	assert.Empty(t, cat.Tests())
}

func TestLoadCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogueYAML), 0o600))

	cat, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Len(t, cat.Tests(), 3)

	_, err = LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedCatalogueParses(t *testing.T) {
	cat, err := LoadCatalogue("../../../config/tests_library.yaml")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, test := range cat.Tests() {
		assert.False(t, ids[test.ID], "duplicate id %s", test.ID)
		ids[test.ID] = true
	}
	assert.True(t, ids["oneWayANOVA"])
}
