package responses

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"PollSensei-Backend/src/models"
)

// QuestionIndex จับคู่คำตอบกับคำถามด้วยข้อความคำถาม
type QuestionIndex map[string]*models.Question

func NewQuestionIndex(s *models.Survey) QuestionIndex {
	idx := QuestionIndex{}
	for i := range s.Sections {
		for j := range s.Sections[i].Questions {
			q := &s.Sections[i].Questions[j]
			key := normalizeKey(q.Question)
			if _, dup := idx[key]; !dup {
				idx[key] = q
			}
		}
	}
	return idx
}

func (idx QuestionIndex) Lookup(question string) *models.Question {
	return idx[normalizeKey(question)]
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func passed() models.ValidationResult {
	return models.ValidationResult{Status: models.ValidationPassed}
}

func failed(format string, args ...interface{}) models.ValidationResult {
	return models.ValidationResult{Status: models.ValidationFailed, Reason: fmt.Sprintf(format, args...)}
}

// IsEmptyAnswer คำตอบที่ไม่มีข้อมูลใด ๆ เลย
func IsEmptyAnswer(a models.Answer) bool {
	return strings.TrimSpace(a.Content) == "" &&
		len(a.SelectedOptions) == 0 &&
		a.ScaleValue == nil &&
		len(a.Matrix) == 0 &&
		a.MediaURL == "" &&
		(a.Transcription == nil || strings.TrimSpace(a.Transcription.Text) == "")
}

// ValidateAnswer ตรวจคำตอบหนึ่งข้อเทียบกับคำถามต้นฉบับ
func ValidateAnswer(a models.Answer, q *models.Question) models.ValidationResult {
	if q == nil {
		return failed("question not found in survey")
	}
	if a.QuestionType != "" && a.QuestionType != q.QuestionType {
		return failed("answer type %s does not match question type %s", a.QuestionType, q.QuestionType)
	}
	if IsEmptyAnswer(a) {
		if q.IsRequired {
			return failed("required question not answered")
		}
		return passed()
	}

	switch {
	case q.QuestionType.HasOptions():
		return validateChoice(a, q)
	case q.QuestionType.IsNumeric():
		return validateScale(a, q)
	case q.QuestionType.IsMatrix():
		return validateMatrix(a, q)
	case q.QuestionType == models.Media:
		if a.MediaURL == "" && strings.TrimSpace(a.Content) == "" {
			return failed("media answer requires a media_url")
		}
	}
	return passed()
}

func validateChoice(a models.Answer, q *models.Question) models.ValidationResult {
	selected := a.SelectedOptions
	if len(selected) == 0 && strings.TrimSpace(a.Content) != "" {
		selected = []string{strings.TrimSpace(a.Content)}
	}
	if len(selected) == 0 {
		return failed("no option selected")
	}
	if !q.QuestionType.IsMultiSelect() && len(selected) > 1 {
		return failed("only one option may be selected")
	}
	for _, opt := range selected {
		if !contains(q.Options, opt) {
			return failed("invalid option selected: %s", opt)
		}
	}
	return passed()
}

func validateScale(a models.Answer, q *models.Question) models.ValidationResult {
	value := a.ScaleValue
	if value == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Content), 64)
		if err != nil {
			return failed("numeric value required")
		}
		value = &v
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return failed("value must be a finite number")
	}
	if q.Min != nil && *value < *q.Min {
		return failed("value %v is below minimum %v", *value, *q.Min)
	}
	if q.Max != nil && *value > *q.Max {
		return failed("value %v is above maximum %v", *value, *q.Max)
	}
	return passed()
}

func validateMatrix(a models.Answer, q *models.Question) models.ValidationResult {
	if len(a.Matrix) == 0 {
		return failed("matrix answer requires at least one row")
	}
	for row, cols := range a.Matrix {
		if !contains(q.Rows, row) {
			return failed("invalid row: %s", row)
		}
		if len(cols) == 0 {
			return failed("no column selected for row %s", row)
		}
		if q.QuestionType == models.MatrixMultipleChoice && len(cols) > 1 {
			return failed("only one column may be selected for row %s", row)
		}
		for _, col := range cols {
			if !contains(q.Columns, col) {
				return failed("invalid column %s for row %s", col, row)
			}
		}
	}
	return passed()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ValidateResponse ใส่ validation_result ให้ทุกคำตอบของ response
func ValidateResponse(idx QuestionIndex, r *models.Response) {
	for i := range r.Answers {
		res := ValidateAnswer(r.Answers[i], idx.Lookup(r.Answers[i].Question))
		r.Answers[i].ValidationResult = &res
	}
}

// MissingRequired คืนข้อความคำถามบังคับที่ไม่มีคำตอบ
func MissingRequired(s *models.Survey, answers []models.Answer) []string {
	answered := map[string]bool{}
	for _, a := range answers {
		if !IsEmptyAnswer(a) {
			answered[normalizeKey(a.Question)] = true
		}
	}

	missing := []string{}
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			if q.IsRequired && !answered[normalizeKey(q.Question)] {
				missing = append(missing, q.Question)
			}
		}
	}
	return missing
}
