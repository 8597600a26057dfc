package surveys

import (
	"fmt"
	"strings"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/utils"
)

// ValidateQuestion checks that q carries exactly the fields its question_type needs.
func ValidateQuestion(q models.Question) []models.FieldError {
	errs := utils.ValidateStruct(q)
	if len(errs) > 0 {
		return errs
	}
	if !q.QuestionType.IsValid() {
		return []models.FieldError{{Field: "question_type", Msg: fmt.Sprintf("unknown question_type %q", q.QuestionType)}}
	}

	t := q.QuestionType
	switch {
	case t.HasOptions():
		if len(nonEmpty(q.Options)) == 0 {
			errs = append(errs, models.FieldError{Field: "options", Msg: "options are required for " + string(t)})
		}
	case len(q.Options) > 0:
		errs = append(errs, models.FieldError{Field: "options", Msg: "options are not allowed for " + string(t)})
	}

	if t.IsMatrix() {
		if len(nonEmpty(q.Rows)) == 0 {
			errs = append(errs, models.FieldError{Field: "rows", Msg: "rows are required for matrix questions"})
		}
		if len(nonEmpty(q.Columns)) == 0 {
			errs = append(errs, models.FieldError{Field: "columns", Msg: "columns are required for matrix questions"})
		}
	} else if len(q.Rows) > 0 || len(q.Columns) > 0 {
		errs = append(errs, models.FieldError{Field: "rows", Msg: "rows/columns are only allowed for matrix questions"})
	}

	if t.IsNumeric() {
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			errs = append(errs, models.FieldError{Field: "min", Msg: "min must not be greater than max"})
		}
	} else if q.Min != nil || q.Max != nil {
		errs = append(errs, models.FieldError{Field: "min", Msg: "min/max are only allowed for numeric questions"})
	}

	return errs
}

// ValidateSurvey ตรวจทั้ง survey ก่อนบันทึก; field จะถูกเติม path เช่น sections[0].questions[2].options
func ValidateSurvey(s *models.Survey) []models.FieldError {
	var errs []models.FieldError
	if strings.TrimSpace(s.Topic) == "" {
		errs = append(errs, models.FieldError{Field: "topic", Msg: "topic is required"})
	}
	if s.GeneratedBy != "" && s.GeneratedBy != models.GeneratedByAI && s.GeneratedBy != models.GeneratedByManually {
		errs = append(errs, models.FieldError{Field: "generated_by", Msg: "generated_by must be one of [ai manually]"})
	}
	for i, sec := range s.Sections {
		for j, q := range sec.Questions {
			for _, fe := range ValidateQuestion(q) {
				fe.Field = fmt.Sprintf("sections[%d].questions[%d].%s", i, j, fe.Field)
				errs = append(errs, fe)
			}
		}
	}
	return errs
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
