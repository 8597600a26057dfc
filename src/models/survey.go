package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType ชนิดของคำถาม (ใช้ชื่อเดียวกับที่ frontend ส่งมา)
type QuestionType string

const (
	MultipleChoice       QuestionType = "multiple_choice"
	SingleChoice         QuestionType = "single_choice"
	LongText             QuestionType = "long_text"
	ShortText            QuestionType = "short_text"
	Checkbox             QuestionType = "checkbox"
	StarRating           QuestionType = "star_rating"
	RatingScale          QuestionType = "rating_scale"
	Boolean              QuestionType = "boolean"
	Slider               QuestionType = "slider"
	Number               QuestionType = "number"
	DropDown             QuestionType = "drop_down"
	MatrixCheckbox       QuestionType = "matrix_checkbox"
	MatrixMultipleChoice QuestionType = "matrix_multiple_choice"
	Media                QuestionType = "media"
	LikertScale          QuestionType = "likert_scale"
)

var questionTypes = map[QuestionType]bool{
	MultipleChoice: true, SingleChoice: true, LongText: true, ShortText: true,
	Checkbox: true, StarRating: true, RatingScale: true, Boolean: true, Slider: true,
	Number: true, DropDown: true, MatrixCheckbox: true, MatrixMultipleChoice: true,
	Media: true, LikertScale: true,
}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	return questionTypes[t]
}

// HasOptions: choice-like variants carry an options list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case MultipleChoice, SingleChoice, Checkbox, DropDown, LikertScale, Boolean:
		return true
	}
	return false
}

// IsMatrix: matrix variants carry rows and columns.
func (t QuestionType) IsMatrix() bool {
	return t == MatrixCheckbox || t == MatrixMultipleChoice
}

// IsNumeric: numeric/scale variants carry min and max.
func (t QuestionType) IsNumeric() bool {
	switch t {
	case StarRating, RatingScale, Slider, Number:
		return true
	}
	return false
}

// IsMultiSelect: answers may hold more than one option.
func (t QuestionType) IsMultiSelect() bool {
	return t == Checkbox || t == MatrixCheckbox
}

// DefaultLikertOptions ค่าเริ่มต้นเมื่อเปลี่ยนคำถามเป็น likert_scale
var DefaultLikertOptions = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}

// GeneratedBy แหล่งที่มาของแบบสอบถาม
const (
	GeneratedByAI       = "ai"
	GeneratedByManually = "manually"
)

// SurveyStatus สถานะของแบบสอบถาม
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusPublished = "published"
	SurveyStatusClosed    = "closed"
)

// --- Question ---
type Question struct {
	Question     string       `bson:"question" json:"question" validate:"required"`
	QuestionType QuestionType `bson:"question_type" json:"question_type" validate:"required"`
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`
	IsRequired   bool         `bson:"is_required" json:"is_required"`

	Options []string `bson:"options,omitempty" json:"options,omitempty"`
	Rows    []string `bson:"rows,omitempty" json:"rows,omitempty"`
	Columns []string `bson:"columns,omitempty" json:"columns,omitempty"`
	Min     *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max     *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

// --- Section ---
type Section struct {
	Questions []Question `bson:"questions" json:"questions" validate:"dive"`
}

// --- Survey ---
type Survey struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Topic          string             `bson:"topic" json:"topic"`
	Description    string             `bson:"description" json:"description"`
	Theme          string             `bson:"theme" json:"theme"`
	Sections       []Section          `bson:"sections" json:"sections" validate:"dive"`
	ConversationID string             `bson:"conversation_id,omitempty" json:"conversation_id,omitempty"`
	GeneratedBy    string             `bson:"generated_by" json:"generated_by" validate:"omitempty,oneof=ai manually"`
	Status         string             `bson:"status" json:"status"`
	ShortURL       string             `bson:"short_url,omitempty" json:"short_url,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// QuestionCount จำนวนคำถามทั้งหมดในทุก section
func (s *Survey) QuestionCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Questions)
	}
	return n
}

// SurveyStatusRequest body ของ PATCH survey/status/:id
type SurveyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published closed"`
}

// DuplicateSurveyRequest body ของ POST survey/duplicate
type DuplicateSurveyRequest struct {
	SurveyID string `json:"survey_id" validate:"required,len=24,hexadecimal"`
}

// ShareLink ผลลัพธ์ของ survey/share/:id
type ShareLink struct {
	SurveyID string `json:"survey_id"`
	ShortURL string `json:"short_url"`
	Link     string `json:"link"`
}
