package responses

import (
	"testing"

	"PollSensei-Backend/src/models"

	"github.com/stretchr/testify/assert"
)

func withStatus(status string) models.Answer {
	return models.Answer{Question: "q", ValidationResult: &models.ValidationResult{Status: status}}
}

func TestCalculateValidationCounts(t *testing.T) {
	tests := []struct {
		name     string
		answers  []models.Answer
		expected models.ValidationCounts
	}{
		{
			name:     "passed failed and unvalidated",
			answers:  []models.Answer{withStatus(models.ValidationPassed), withStatus(models.ValidationFailed), {}},
			expected: models.ValidationCounts{ValidCount: 1, InvalidCount: 1},
		},
		{
			name:     "no answers",
			answers:  nil,
			expected: models.ValidationCounts{},
		},
		{
			name:     "unknown status is ignored",
			answers:  []models.Answer{withStatus("pending"), withStatus(models.ValidationPassed)},
			expected: models.ValidationCounts{ValidCount: 1},
		},
		{
			name:     "all failed",
			answers:  []models.Answer{withStatus(models.ValidationFailed), withStatus(models.ValidationFailed)},
			expected: models.ValidationCounts{InvalidCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateValidationCounts(models.Response{Answers: tt.answers})
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, got.ValidCount+got.InvalidCount, len(tt.answers))
		})
	}
}

func TestCalculateValidationCountsEqualsLengthWhenAllValidated(t *testing.T) {
	r := models.Response{Answers: []models.Answer{
		withStatus(models.ValidationPassed),
		withStatus(models.ValidationFailed),
		withStatus(models.ValidationPassed),
	}}
	got := CalculateValidationCounts(r)
	assert.Equal(t, len(r.Answers), got.ValidCount+got.InvalidCount)
}

func TestCalculateValidationCountsAll(t *testing.T) {
	rs := []models.Response{
		{Answers: []models.Answer{withStatus(models.ValidationPassed), withStatus(models.ValidationFailed)}},
		{Answers: []models.Answer{withStatus(models.ValidationPassed), {}}},
		{},
	}
	assert.Equal(t, models.ValidationCounts{ValidCount: 2, InvalidCount: 1}, CalculateValidationCountsAll(rs))
}
