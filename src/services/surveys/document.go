package surveys

import (
	"errors"
	"fmt"

	"PollSensei-Backend/src/models"
)

var (
	ErrSectionOutOfRange  = errors.New("section index out of range")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrIndexOutOfRange    = errors.New("reorder index out of range")
)

// QuestionPatch ฟิลด์ที่ต้องการแก้ (nil = ไม่แก้)
type QuestionPatch struct {
	Question     *string              `json:"question,omitempty"`
	QuestionType *models.QuestionType `json:"question_type,omitempty"`
	Description  *string              `json:"description,omitempty"`
	IsRequired   *bool                `json:"is_required,omitempty"`
	Options      []string             `json:"options,omitempty"`
	Rows         []string             `json:"rows,omitempty"`
	Columns      []string             `json:"columns,omitempty"`
	Min          *float64             `json:"min,omitempty"`
	Max          *float64             `json:"max,omitempty"`
}

// AddSection appends a section holding questions. Question shape is not checked here;
// ValidateSurvey runs when the document is saved.
func AddSection(s *models.Survey, questions []models.Question) {
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	s.Sections = append(s.Sections, models.Section{Questions: qs})
}

// UpdateQuestion merges patch into sections[sectionIndex].questions[questionIndex].
// A question_type change resets the fields the new type does not use.
func UpdateQuestion(s *models.Survey, sectionIndex, questionIndex int, patch QuestionPatch) error {
	if sectionIndex < 0 || sectionIndex >= len(s.Sections) {
		return fmt.Errorf("%w: %d", ErrSectionOutOfRange, sectionIndex)
	}
	questions := s.Sections[sectionIndex].Questions
	if questionIndex < 0 || questionIndex >= len(questions) {
		return fmt.Errorf("%w: %d", ErrQuestionOutOfRange, questionIndex)
	}

	q := questions[questionIndex]
	if patch.QuestionType != nil && *patch.QuestionType != q.QuestionType {
		ChangeQuestionType(&q, *patch.QuestionType)
	}
	if patch.Question != nil {
		q.Question = *patch.Question
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.IsRequired != nil {
		q.IsRequired = *patch.IsRequired
	}
	if patch.Options != nil {
		q.Options = append([]string(nil), patch.Options...)
	}
	if patch.Rows != nil {
		q.Rows = append([]string(nil), patch.Rows...)
	}
	if patch.Columns != nil {
		q.Columns = append([]string(nil), patch.Columns...)
	}
	if patch.Min != nil {
		v := *patch.Min
		q.Min = &v
	}
	if patch.Max != nil {
		v := *patch.Max
		q.Max = &v
	}

	questions[questionIndex] = q
	return nil
}

// ChangeQuestionType switches q to t and clears variant fields t does not use.
// likert_scale is seeded with the default five-point options.
func ChangeQuestionType(q *models.Question, t models.QuestionType) {
	q.QuestionType = t
	if !t.HasOptions() {
		q.Options = nil
	} else if t == models.LikertScale {
		q.Options = append([]string(nil), models.DefaultLikertOptions...)
	} else if t == models.Boolean {
		q.Options = []string{"Yes", "No"}
	} else if len(q.Options) == 0 {
		q.Options = []string{""}
	}
	if !t.IsMatrix() {
		q.Rows = nil
		q.Columns = nil
	}
	if !t.IsNumeric() {
		q.Min = nil
		q.Max = nil
	}
}

// Reorder returns a new list with the element at from spliced out and reinserted at to.
// All other elements keep their relative order.
func Reorder[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return nil, fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, len(list))
	}

	out := make([]T, 0, len(list))
	moved := list[from]
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	out = append(out, moved) // grow by one, then shift the tail right
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out, nil
}

// ReorderQuestions reorders the question list of one section in place.
func ReorderQuestions(s *models.Survey, sectionIndex, from, to int) error {
	if sectionIndex < 0 || sectionIndex >= len(s.Sections) {
		return fmt.Errorf("%w: %d", ErrSectionOutOfRange, sectionIndex)
	}
	reordered, err := Reorder(s.Sections[sectionIndex].Questions, from, to)
	if err != nil {
		return err
	}
	s.Sections[sectionIndex].Questions = reordered
	return nil
}

// ResetSurvey discards the in-progress document content. Identity and ownership stay.
func ResetSurvey(s *models.Survey) {
	s.Topic = ""
	s.Description = ""
	s.Theme = ""
	s.Sections = []models.Section{}
	s.ConversationID = ""
	s.GeneratedBy = ""
}
