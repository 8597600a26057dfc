package analysis

import (
	"strconv"
	"strings"
	"unicode"

	"PollSensei-Backend/src/models"
)

// VariableSlug "How old are you?" -> "how_old_are_you"
func VariableSlug(text string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if b.Len() > 0 && !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// ExtractVariables หนึ่งตัวแปรต่อคำถาม slug ซ้ำจะต่อท้ายด้วย _2, _3, ...
func ExtractVariables(s *models.Survey) []models.SurveyVariable {
	seen := map[string]int{}
	out := []models.SurveyVariable{}
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			slug := VariableSlug(q.Question)
			if slug == "" {
				slug = "question"
			}
			seen[slug]++
			if n := seen[slug]; n > 1 {
				slug += "_" + strconv.Itoa(n)
			}
			out = append(out, models.SurveyVariable{
				Question:    q.Question,
				Slug:        slug,
				DisplayName: strings.TrimSpace(q.Question),
				Type:        q.QuestionType,
			})
		}
	}
	return out
}

// PoolFromVariables แปลงเป็นกองตัวแปรของ board (id = slug)
func PoolFromVariables(vars []models.SurveyVariable) []models.Variable {
	pool := make([]models.Variable, 0, len(vars))
	for _, v := range vars {
		pool = append(pool, models.Variable{ID: v.Slug, Name: v.DisplayName})
	}
	return pool
}
