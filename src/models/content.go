package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContentPublished   = "publish"
	ContentUnpublished = "unpublish"
)

// --- FAQ ---
type FAQ struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	Category  string             `bson:"category" json:"category"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type FAQRequest struct {
	Question string `json:"question" validate:"required,min=5,max=300"`
	Answer   string `json:"answer" validate:"required,min=5"`
	Category string `json:"category" validate:"required"`
}

// --- Tutorial ---
const (
	TutorialVideo = "video"
	TutorialText  = "text"
)

type Tutorial struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	TutorialType string             `bson:"tutorial_type" json:"tutorial_type"`
	MediaURL     string             `bson:"media_url,omitempty" json:"media_url,omitempty"`
	Body         string             `bson:"body,omitempty" json:"body,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TutorialRequest video ต้องมี media_url, text ต้องมี body
type TutorialRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=120"`
	Description  string `json:"description" validate:"required,min=10,max=1000"`
	Category     string `json:"category" validate:"required"`
	TutorialType string `json:"tutorial_type" validate:"required,oneof=video text"`
	MediaURL     string `json:"media_url" validate:"omitempty,url"`
	Body         string `json:"body"`
}

// Overview ตัวเลขสรุปของ superadmin/overview
type Overview struct {
	TotalUsers     int64 `json:"total_users"`
	TotalSurveys   int64 `json:"total_surveys"`
	AISurveys      int64 `json:"ai_surveys"`
	ManualSurveys  int64 `json:"manual_surveys"`
	TotalResponses int64 `json:"total_responses"`
}
