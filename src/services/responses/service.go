package responses

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTranscriptionNotFound = errors.New("transcription not found")
	ErrInvalidID             = errors.New("invalid id")
)

// SurveyFinder อ่าน survey ต้นฉบับของ response
type SurveyFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error)
}

type Service struct {
	repo    Repository
	surveys SurveyFinder
}

func NewService(repo Repository, surveys SurveyFinder) *Service {
	return &Service{repo: repo, surveys: surveys}
}

func (s *Service) ownedSurvey(ctx context.Context, userID, surveyID primitive.ObjectID) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.UserID != userID {
		return nil, surveys.ErrForbidden
	}
	return survey, nil
}

func (s *Service) ownedResponse(ctx context.Context, userID, id primitive.ObjectID) (*models.Response, *models.Survey, error) {
	resp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	survey, err := s.ownedSurvey(ctx, userID, resp.SurveyID)
	if err != nil {
		return nil, nil, err
	}
	return resp, survey, nil
}

// Upload บันทึก response ที่เจ้าของ survey อัปโหลดเอง
func (s *Service) Upload(ctx context.Context, userID primitive.ObjectID, req models.SubmitResponseRequest) (*models.Response, error) {
	surveyID, err := primitive.ObjectIDFromHex(req.SurveyID)
	if err != nil {
		return nil, ErrInvalidID
	}
	survey, err := s.ownedSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, survey, req)
}

// Submit รับคำตอบจากลิงก์สาธารณะ (เฉพาะ survey ที่เผยแพร่แล้ว)
func (s *Service) Submit(ctx context.Context, req models.SubmitResponseRequest) (*models.Response, error) {
	surveyID, err := primitive.ObjectIDFromHex(req.SurveyID)
	if err != nil {
		return nil, ErrInvalidID
	}
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	switch survey.Status {
	case models.SurveyStatusPublished:
	case models.SurveyStatusClosed:
		return nil, surveys.ErrSurveyClosed
	default:
		return nil, surveys.ErrNotPublished
	}
	return s.insert(ctx, survey, req)
}

func (s *Service) insert(ctx context.Context, survey *models.Survey, req models.SubmitResponseRequest) (*models.Response, error) {
	if missing := MissingRequired(survey, req.Answers); len(missing) > 0 {
		fields := make([]models.FieldError, 0, len(missing))
		for _, q := range missing {
			fields = append(fields, models.FieldError{Field: "answers", Msg: "required question not answered: " + q})
		}
		return nil, utils.NewValidationError(fields)
	}

	answers := make([]models.Answer, len(req.Answers))
	copy(answers, req.Answers)
	for i := range answers {
		answers[i].ValidationResult = nil
		if t := answers[i].Transcription; t != nil && t.ID == "" {
			t.ID = uuid.NewString()
		}
	}

	resp := &models.Response{
		SurveyID:        survey.ID,
		RespondentName:  strings.TrimSpace(req.RespondentName),
		RespondentEmail: req.RespondentEmail,
		Country:         req.Country,
		Answers:         answers,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Insert(ctx, resp); err != nil {
		return nil, err
	}
	log.Printf("[response] stored id=%s survey=%s answers=%d", resp.ID.Hex(), survey.ID.Hex(), len(answers))
	return resp, nil
}

// ValidateSurvey ตรวจทุก response ของ survey แล้วบันทึกผลกลับลงฐานข้อมูล
func (s *Service) ValidateSurvey(ctx context.Context, userID, surveyID primitive.ObjectID) (*models.SurveyValidationSummary, error) {
	survey, err := s.ownedSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.AllBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	idx := NewQuestionIndex(survey)
	for i := range items {
		ValidateResponse(idx, &items[i])
		if err := s.repo.SetAnswers(ctx, items[i].ID, items[i].Answers); err != nil {
			return nil, fmt.Errorf("save validation for %s: %w", items[i].ID.Hex(), err)
		}
	}

	counts := CalculateValidationCountsAll(items)
	log.Printf("✅ [response] validated survey=%s responses=%d valid=%d invalid=%d",
		surveyID.Hex(), len(items), counts.ValidCount, counts.InvalidCount)
	return &models.SurveyValidationSummary{
		SurveyID:         surveyID.Hex(),
		TotalResponses:   len(items),
		ValidationCounts: counts,
	}, nil
}

// ValidatedResponses คืน response แบบแบ่งหน้าพร้อมจำนวนผ่าน/ไม่ผ่านของแต่ละรายการ
func (s *Service) ValidatedResponses(ctx context.Context, userID, surveyID primitive.ObjectID, filter models.ResponseFilter, deleted bool, p models.PaginationParams) (*models.PaginatedResponse, error) {
	p.Normalize()
	if _, err := s.ownedSurvey(ctx, userID, surveyID); err != nil {
		return nil, err
	}
	items, total, err := s.repo.List(ctx, surveyID, filter, deleted, p)
	if err != nil {
		return nil, err
	}

	out := make([]models.ValidatedResponse, 0, len(items))
	for _, r := range items {
		out = append(out, models.ValidatedResponse{Response: r, ValidationCounts: CalculateValidationCounts(r)})
	}
	return models.NewPaginatedResponse(out, total, p), nil
}

// Delete เป็น soft delete (ย้ายไปแท็บ Deleted)
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, _, err := s.ownedResponse(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.SetDeleted(ctx, id, true); err != nil {
		return err
	}
	log.Printf("[response] soft deleted id=%s", id.Hex())
	return nil
}

func (s *Service) Restore(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, _, err := s.ownedResponse(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.SetDeleted(ctx, id, false)
}

// UpdateTranscription แก้ข้อความถอดเสียงของคำตอบแบบ media
func (s *Service) UpdateTranscription(ctx context.Context, userID, id primitive.ObjectID, req models.TranscriptionUpdateRequest) (*models.Response, error) {
	resp, _, err := s.ownedResponse(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range resp.Answers {
		if t := resp.Answers[i].Transcription; t != nil && t.ID == req.TranscriptionID {
			t.Text = req.Text
			found = true
			break
		}
	}
	if !found {
		return nil, ErrTranscriptionNotFound
	}
	if err := s.repo.SetAnswers(ctx, id, resp.Answers); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) Summary(ctx context.Context, userID, surveyID primitive.ObjectID) ([]models.QuestionSummary, error) {
	survey, err := s.ownedSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.AllBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return Summarize(survey, items), nil
}

func (s *Service) RespondentNames(ctx context.Context, userID, surveyID primitive.ObjectID) ([]string, error) {
	if _, err := s.ownedSurvey(ctx, userID, surveyID); err != nil {
		return nil, err
	}
	return s.repo.RespondentNames(ctx, surveyID)
}
