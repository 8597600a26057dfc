package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variable คอลัมน์ข้อมูลที่ดึงมาจากคำตอบ ใช้ลากไปใส่ test
type Variable struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Test การทดสอบทางสถิติหนึ่งรายการบน board
type Test struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Variables []Variable `bson:"variables" json:"variables"`
	Category  string     `bson:"category" json:"category"`
}

type TestAssignment struct {
	TestName      string   `json:"test_name" validate:"required"`
	TestVariables []string `json:"test_variables"`
}

// TestLibraryFormatted รูปแบบที่ส่งให้ engine
type TestLibraryFormatted struct {
	SurveyID string           `json:"survey_id" validate:"required,len=24,hexadecimal"`
	Data     []TestAssignment `json:"data" validate:"required,min=1,dive"`
}

// SurveyVariable ตัวแปรที่สกัดได้จากคำถาม (analysis/variables/:survey_id)
type SurveyVariable struct {
	Question    string       `json:"question"`
	Slug        string       `json:"slug"`
	DisplayName string       `json:"display_name"`
	Type        QuestionType `json:"type"`
}

// AnalysisReport สถานะ/ผลลัพธ์ของการวิเคราะห์
const (
	AnalysisPending   = "pending"
	AnalysisCompleted = "completed"
	AnalysisFailed    = "failed"
)

type AnalysisReport struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	SurveyID  primitive.ObjectID     `bson:"survey_id" json:"survey_id"`
	Request   TestLibraryFormatted   `bson:"request" json:"request"`
	Status    string                 `bson:"status" json:"status"`
	Result    map[string]interface{} `bson:"result,omitempty" json:"result,omitempty"`
	Error     string                 `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt" json:"updatedAt"`
}
