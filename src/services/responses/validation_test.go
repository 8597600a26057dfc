package responses

import (
	"math"
	"testing"

	"PollSensei-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func feedbackSurvey() *models.Survey {
	return &models.Survey{
		Topic:  "Feedback",
		Status: models.SurveyStatusPublished,
		Sections: []models.Section{{Questions: []models.Question{
			{Question: "Favourite colour", QuestionType: models.MultipleChoice, Options: []string{"Red", "Blue"}, IsRequired: true},
			{Question: "Toppings", QuestionType: models.Checkbox, Options: []string{"Cheese", "Ham", "Olives"}},
			{Question: "Rate us", QuestionType: models.StarRating, Min: f(1), Max: f(5)},
			{Question: "Grid", QuestionType: models.MatrixMultipleChoice, Rows: []string{"Speed", "Price"}, Columns: []string{"Good", "Bad"}},
			{Question: "Comments", QuestionType: models.LongText},
			{Question: "Voice note", QuestionType: models.Media},
		}}},
	}
}

func TestValidateAnswer(t *testing.T) {
	idx := NewQuestionIndex(feedbackSurvey())

	tests := []struct {
		name   string
		answer models.Answer
		status string
	}{
		{"choice in options", models.Answer{Question: "Favourite colour", Content: "Red"}, models.ValidationPassed},
		{"choice via selected options", models.Answer{Question: "favourite colour ", SelectedOptions: []string{"Blue"}}, models.ValidationPassed},
		{"choice not in options", models.Answer{Question: "Favourite colour", Content: "Green"}, models.ValidationFailed},
		{"single choice with two options", models.Answer{Question: "Favourite colour", SelectedOptions: []string{"Red", "Blue"}}, models.ValidationFailed},
		{"required but empty", models.Answer{Question: "Favourite colour"}, models.ValidationFailed},
		{"optional and empty", models.Answer{Question: "Comments"}, models.ValidationPassed},
		{"checkbox many", models.Answer{Question: "Toppings", SelectedOptions: []string{"Cheese", "Olives"}}, models.ValidationPassed},
		{"checkbox unknown", models.Answer{Question: "Toppings", SelectedOptions: []string{"Pineapple"}}, models.ValidationFailed},
		{"scale in range", models.Answer{Question: "Rate us", ScaleValue: f(4)}, models.ValidationPassed},
		{"scale from content", models.Answer{Question: "Rate us", Content: "5"}, models.ValidationPassed},
		{"scale above max", models.Answer{Question: "Rate us", ScaleValue: f(6)}, models.ValidationFailed},
		{"scale not numeric", models.Answer{Question: "Rate us", Content: "great"}, models.ValidationFailed},
		{"scale NaN text", models.Answer{Question: "Rate us", Content: "NaN"}, models.ValidationFailed},
		{"scale infinite text", models.Answer{Question: "Rate us", Content: "+Inf"}, models.ValidationFailed},
		{"scale NaN value", models.Answer{Question: "Rate us", ScaleValue: f(math.NaN())}, models.ValidationFailed},
		{"matrix ok", models.Answer{Question: "Grid", Matrix: map[string][]string{"Speed": {"Good"}}}, models.ValidationPassed},
		{"matrix unknown row", models.Answer{Question: "Grid", Matrix: map[string][]string{"Taste": {"Good"}}}, models.ValidationFailed},
		{"matrix two columns on single choice grid", models.Answer{Question: "Grid", Matrix: map[string][]string{"Price": {"Good", "Bad"}}}, models.ValidationFailed},
		{"media with url", models.Answer{Question: "Voice note", MediaURL: "https://cdn/a.mp3"}, models.ValidationPassed},
		{"type mismatch", models.Answer{Question: "Comments", QuestionType: models.Number, Content: "3"}, models.ValidationFailed},
		{"unknown question", models.Answer{Question: "Who?", Content: "x"}, models.ValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateAnswer(tt.answer, idx.Lookup(tt.answer.Question))
			assert.Equal(t, tt.status, res.Status)
			if tt.status == models.ValidationFailed {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestValidateResponseAnnotatesEveryAnswer(t *testing.T) {
	idx := NewQuestionIndex(feedbackSurvey())
	r := models.Response{Answers: []models.Answer{
		{Question: "Favourite colour", Content: "Red"},
		{Question: "Rate us", ScaleValue: f(0)},
		{Question: "Comments", Content: "Nice"},
	}}

	ValidateResponse(idx, &r)

	for _, a := range r.Answers {
		require.NotNil(t, a.ValidationResult)
	}
	assert.Equal(t, models.ValidationCounts{ValidCount: 2, InvalidCount: 1}, CalculateValidationCounts(r))
}

func TestMissingRequired(t *testing.T) {
	s := feedbackSurvey()

	assert.Equal(t, []string{"Favourite colour"}, MissingRequired(s, []models.Answer{{Question: "Comments", Content: "hi"}}))
	assert.Empty(t, MissingRequired(s, []models.Answer{{Question: "Favourite colour", Content: "Red"}}))
	assert.Equal(t, []string{"Favourite colour"}, MissingRequired(s, []models.Answer{{Question: "Favourite colour", Content: "  "}}))
}

func TestSummarize(t *testing.T) {
	s := feedbackSurvey()
	items := []models.Response{
		{Answers: []models.Answer{
			{Question: "Favourite colour", Content: "Red"},
			{Question: "Rate us", ScaleValue: f(4)},
			{Question: "Grid", Matrix: map[string][]string{"Speed": {"Good"}}},
		}},
		{Answers: []models.Answer{
			{Question: "Favourite colour", SelectedOptions: []string{"Red"}},
			{Question: "Rate us", Content: "2"},
		}},
	}

	out := Summarize(s, items)

	require.Len(t, out, 6)
	assert.Equal(t, 2, out[0].Answered)
	assert.Equal(t, map[string]int{"Red": 2}, out[0].OptionCounts)
	require.NotNil(t, out[2].Average)
	assert.InDelta(t, 3.0, *out[2].Average, 1e-9)
	assert.Equal(t, map[string]int{"Speed / Good": 1}, out[3].OptionCounts)
	assert.Zero(t, out[4].Answered)
	assert.Nil(t, out[4].Average)
}

func TestAnswerText(t *testing.T) {
	assert.Equal(t, "Cheese; Ham", AnswerText(models.Answer{SelectedOptions: []string{"Cheese", "Ham"}}))
	assert.Equal(t, "4.5", AnswerText(models.Answer{ScaleValue: f(4.5)}))
	assert.Equal(t, "Price: Bad; Speed: Good|Bad", AnswerText(models.Answer{Matrix: map[string][]string{"Speed": {"Good", "Bad"}, "Price": {"Bad"}}}))
	assert.Equal(t, "hello", AnswerText(models.Answer{MediaURL: "u", Transcription: &models.Transcription{Text: "hello"}}))
	assert.Equal(t, "plain", AnswerText(models.Answer{Content: "plain"}))
}
