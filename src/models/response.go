package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationStatus ผลการตรวจคำตอบ (server เป็นผู้กำหนด)
const (
	ValidationPassed = "passed"
	ValidationFailed = "failed"
)

type ValidationResult struct {
	Status string `bson:"status,omitempty" json:"status,omitempty"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

type Transcription struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// Answer คำตอบของคำถามหนึ่งข้อ
type Answer struct {
	Question        string              `bson:"question" json:"question"`
	QuestionType    QuestionType        `bson:"question_type" json:"question_type"`
	Content         string              `bson:"content,omitempty" json:"content,omitempty"`
	SelectedOptions []string            `bson:"selected_options,omitempty" json:"selected_options,omitempty"`
	ScaleValue      *float64            `bson:"scale_value,omitempty" json:"scale_value,omitempty"`
	Matrix          map[string][]string `bson:"matrix,omitempty" json:"matrix,omitempty"`
	MediaURL        string              `bson:"media_url,omitempty" json:"media_url,omitempty"`
	Transcription   *Transcription      `bson:"transcription,omitempty" json:"transcription,omitempty"`

	ValidationResult *ValidationResult `bson:"validation_result,omitempty" json:"validation_result,omitempty"`
}

// Response คำตอบทั้งชุดของผู้ตอบหนึ่งคน
type Response struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SurveyID        primitive.ObjectID `bson:"survey_id" json:"survey_id"`
	RespondentName  string             `bson:"respondent_name" json:"respondent_name"`
	RespondentEmail string             `bson:"respondent_email,omitempty" json:"respondent_email,omitempty"`
	Country         string             `bson:"country,omitempty" json:"country,omitempty"`
	Answers         []Answer           `bson:"answers" json:"answers"`
	Deleted         bool               `bson:"deleted" json:"deleted"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidationCounts จำนวนคำตอบที่ผ่าน/ไม่ผ่าน
type ValidationCounts struct {
	ValidCount   int `json:"validCount"`
	InvalidCount int `json:"invalidCount"`
}

// SubmitResponseRequest body ของ response/upload และ ps/survey/respond
type SubmitResponseRequest struct {
	SurveyID        string   `json:"survey_id" validate:"required,len=24,hexadecimal"`
	RespondentName  string   `json:"respondent_name"`
	RespondentEmail string   `json:"respondent_email" validate:"omitempty,email"`
	Country         string   `json:"country"`
	Answers         []Answer `json:"answers" validate:"required,min=1"`
}

// TranscriptionUpdateRequest body ของ response/transcription/:id
type TranscriptionUpdateRequest struct {
	TranscriptionID string `json:"transcription_id" validate:"required"`
	Text            string `json:"text"`
}

// ResponseFilter ตัวกรองของ response/validate/individual/:id
type ResponseFilter struct {
	Countries    []string
	Date         *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	Name         string
	ResponseID   string
	Question     string
	QuestionType string
	Answer       string
}

// ValidatedResponse response หนึ่งรายการพร้อมจำนวนผ่าน/ไม่ผ่าน
type ValidatedResponse struct {
	Response `bson:",inline"`
	ValidationCounts
}

// SurveyValidationSummary ผลรวมของ response/validate/:id
type SurveyValidationSummary struct {
	SurveyID       string `json:"survey_id"`
	TotalResponses int    `json:"total_responses"`
	ValidationCounts
}

// QuestionSummary สรุปคำตอบรายคำถาม (response/summary/:id)
type QuestionSummary struct {
	Question     string         `json:"question"`
	QuestionType QuestionType   `json:"question_type"`
	Answered     int            `json:"answered"`
	OptionCounts map[string]int `json:"option_counts,omitempty"`
	Average      *float64       `json:"average,omitempty"`
}
