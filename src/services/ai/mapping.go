package ai

import (
	"strings"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/engine"
)

// MapOptionType "Multi-choice" -> multiple_choice, "Comment" -> long_text, อย่างอื่น -> matrix_checkbox
func MapOptionType(optionType string) models.QuestionType {
	switch strings.TrimSpace(optionType) {
	case "Multi-choice":
		return models.MultipleChoice
	case "Comment":
		return models.LongText
	default:
		return models.MatrixCheckbox
	}
}

// MapQuestion แปลงคำถามจาก engine เป็นคำถามของ survey (ไม่บังคับตอบ)
//
// matrix ใช้ Options เป็น columns และมีแถวเดียวคือตัวคำถาม
// ถ้า engine ไม่ส่งตัวเลือกมาเลย จะกลายเป็น long_text
func MapQuestion(q engine.Question) models.Question {
	out := models.Question{
		Question:     strings.TrimSpace(q.Question),
		QuestionType: MapOptionType(q.OptionType),
		IsRequired:   false,
	}
	options := cleanOptions(q.Options)

	switch {
	case out.QuestionType == models.LongText:
	case len(options) == 0:
		out.QuestionType = models.LongText
	case out.QuestionType.IsMatrix():
		row := out.Question
		if row == "" {
			row = "Row 1"
		}
		out.Rows = []string{row}
		out.Columns = options
	default:
		out.Options = options
	}
	return out
}

func cleanOptions(opts []string) []string {
	var out []string
	for _, o := range opts {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func MapQuestions(qs []engine.Question) []models.Question {
	out := make([]models.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, MapQuestion(q))
	}
	return out
}
