package analysis

import (
	"testing"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *AssignmentBoard {
	pool := []models.Variable{{ID: "age", Name: "Age"}, {ID: "gender", Name: "Gender"}, {ID: "income", Name: "Income"}}
	library := []models.Test{
		{ID: "oneWayANOVA", Name: "One-way ANOVA", Category: "ANOVA", Variables: []models.Variable{}},
		{ID: "pairedTTest", Name: "Paired T-Test", Category: "Parametric Test", Variables: []models.Variable{}},
	}
	return NewAssignmentBoard(pool, library)
}

func selectedIDs(b *AssignmentBoard) []string {
	ids := []string{}
	for _, t := range b.Selected {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestAssignmentBoard(t *testing.T) {
	suite := testutil.NewSuite("Assignment Board Tests")
	defer suite.Report(t)

	suite.Run(t, "DropIsIdempotentByID", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.ToggleTest("oneWayANOVA")

		assert.True(t, b.Drop(models.Variable{ID: "age", Name: "Age"}, "oneWayANOVA"))
		assert.False(t, b.Drop(models.Variable{ID: "age", Name: "Age (again)"}, "oneWayANOVA"))
		assert.Equal(t, []models.Variable{{ID: "age", Name: "Age"}}, b.Selected[0].Variables)
		assert.Len(t, b.Variables, 3)
	})

	suite.Run(t, "DropOnUnselectedTestIsNoop", time.Second, func(t *testing.T) {
		b := sampleBoard()
		assert.False(t, b.Drop(models.Variable{ID: "age"}, "oneWayANOVA"))
		assert.Empty(t, b.Selected)
	})

	suite.Run(t, "RemoveVariableOnlyTouchesThatTest", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.ToggleTest("oneWayANOVA")
		b.ToggleTest("pairedTTest")
		b.Drop(models.Variable{ID: "age"}, "oneWayANOVA")
		b.Drop(models.Variable{ID: "age"}, "pairedTTest")

		assert.True(t, b.RemoveVariable("oneWayANOVA", "age"))
		assert.Empty(t, b.Selected[0].Variables)
		assert.Len(t, b.Selected[1].Variables, 1)
		assert.False(t, b.RemoveVariable("oneWayANOVA", "age"))
	})

	suite.Run(t, "ToggleTwiceRestoresSelection", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.ToggleTest("pairedTTest")
		before := selectedIDs(b)

		assert.True(t, b.ToggleTest("oneWayANOVA"))
		assert.False(t, b.ToggleTest("oneWayANOVA"))
		assert.Equal(t, before, selectedIDs(b))
	})

	suite.Run(t, "ToggleUnknownTestIsNoop", time.Second, func(t *testing.T) {
		b := sampleBoard()
		assert.False(t, b.ToggleTest("doesNotExist"))
		assert.Empty(t, b.Selected)
	})

	suite.Run(t, "DeselectReturnsMissingVariablesToPool", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.Variables = b.Variables[:1] // เหลือแค่ age
		b.ToggleTest("oneWayANOVA")
		b.Drop(models.Variable{ID: "age", Name: "Age"}, "oneWayANOVA")
		b.Drop(models.Variable{ID: "income", Name: "Income"}, "oneWayANOVA")

		b.ToggleTest("oneWayANOVA")

		assert.Equal(t, []models.Variable{{ID: "age", Name: "Age"}, {ID: "income", Name: "Income"}}, b.Variables)
		assert.Empty(t, b.Selected)
	})

	suite.Run(t, "ReselectStartsEmpty", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.ToggleTest("oneWayANOVA")
		b.Drop(models.Variable{ID: "age"}, "oneWayANOVA")
		b.ToggleTest("oneWayANOVA")
		b.ToggleTest("oneWayANOVA")
		assert.Empty(t, b.Selected[0].Variables)
	})

	suite.Run(t, "FormatAndHasVariables", time.Second, func(t *testing.T) {
		b := sampleBoard()
		b.ToggleTest("oneWayANOVA")
		b.ToggleTest("pairedTTest")
		assert.False(t, b.HasVariables())

		b.Drop(models.Variable{ID: "age"}, "oneWayANOVA")
		b.Drop(models.Variable{ID: "gender"}, "oneWayANOVA")
		require.True(t, b.HasVariables())

		out := b.Format("66c5fe26ee8565ca5ffc732a")
		assert.Equal(t, models.TestLibraryFormatted{
			SurveyID: "66c5fe26ee8565ca5ffc732a",
			Data: []models.TestAssignment{
				{TestName: "One-way ANOVA", TestVariables: []string{"age", "gender"}},
				{TestName: "Paired T-Test", TestVariables: []string{}},
			},
		}, out)
		assert.True(t, RequestHasVariables(out))
		assert.Equal(t, []string{"One-way ANOVA"}, b.TestsUsing("gender"))
	})
}

func TestToCamelCase(t *testing.T) {
	cases := map[string]string{
		"T-Tests":                                 "tTests",
		"One-sample t-test":                       "oneSampleTTest",
		"Paired T-Test":                           "pairedTTest",
		"One-way ANOVA":                           "oneWayANOVA",
		"Chi-Square Tests*":                       "chiSquareTests*",
		"Independent t-test (two-sample t-test)":  "independentTTestTwoSampleTTest)",
		"Goodness of Fit Test":                    "goodnessOfFitTest",
		"":                                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToCamelCase(in), in)
	}
}
