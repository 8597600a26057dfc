package analysis

import (
	"testing"

	"PollSensei-Backend/src/models"

	"github.com/stretchr/testify/assert"
)

func TestVariableSlug(t *testing.T) {
	assert.Equal(t, "how_old_are_you", VariableSlug("How old are you?"))
	assert.Equal(t, "rate_our_support_1_5", VariableSlug("  Rate our support (1-5) "))
	assert.Equal(t, "", VariableSlug("???"))
}

func TestExtractVariables(t *testing.T) {
	s := &models.Survey{Sections: []models.Section{
		{Questions: []models.Question{
			{Question: "Age?", QuestionType: models.Number},
			{Question: "Gender", QuestionType: models.SingleChoice},
		}},
		{Questions: []models.Question{
			{Question: "Age", QuestionType: models.ShortText},
			{Question: "!!", QuestionType: models.LongText},
		}},
	}}

	vars := ExtractVariables(s)

	assert.Equal(t, []models.SurveyVariable{
		{Question: "Age?", Slug: "age", DisplayName: "Age?", Type: models.Number},
		{Question: "Gender", Slug: "gender", DisplayName: "Gender", Type: models.SingleChoice},
		{Question: "Age", Slug: "age_2", DisplayName: "Age", Type: models.ShortText},
		{Question: "!!", Slug: "question", DisplayName: "!!", Type: models.LongText},
	}, vars)
	assert.Equal(t, models.Variable{ID: "age_2", Name: "Age"}, PoolFromVariables(vars)[2])
}
