package superadmin

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/users"
	"PollSensei-Backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidContentStatus = errors.New("status must be publish or unpublish")
	ErrInvalidPeriod        = errors.New("month must be 1-12 and year must be a valid year")
)

type Service struct {
	faqs      ContentRepository[models.FAQ]
	tutorials ContentRepository[models.Tutorial]
	users     users.Repository
	stats     Stats
}

func NewService(faqs ContentRepository[models.FAQ], tutorials ContentRepository[models.Tutorial], userRepo users.Repository, stats Stats) *Service {
	return &Service{faqs: faqs, tutorials: tutorials, users: userRepo, stats: stats}
}

// contentFilter filter_by = publish/unpublish กรองตามสถานะ อย่างอื่นกรองตามหมวด
func contentFilter(filterBy string) bson.M {
	filterBy = strings.TrimSpace(filterBy)
	switch filterBy {
	case "":
		return bson.M{}
	case models.ContentPublished, models.ContentUnpublished:
		return bson.M{"status": filterBy}
	default:
		return bson.M{"category": filterBy}
	}
}

// --- FAQ ---

func (s *Service) ListFAQs(ctx context.Context, filterBy string, p models.PaginationParams) (*models.PaginatedResponse, error) {
	p.Normalize()
	items, total, err := s.faqs.List(ctx, contentFilter(filterBy), p)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(items, total, p), nil
}

func (s *Service) CreateFAQ(ctx context.Context, req models.FAQRequest) (*models.FAQ, error) {
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}
	now := time.Now()
	faq := &models.FAQ{
		ID:        primitive.NewObjectID(),
		Question:  strings.TrimSpace(req.Question),
		Answer:    strings.TrimSpace(req.Answer),
		Category:  req.Category,
		Status:    models.ContentUnpublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.faqs.Insert(ctx, faq); err != nil {
		return nil, err
	}
	log.Println("✅ [superadmin] faq created:", faq.ID.Hex())
	return faq, nil
}

func (s *Service) GetFAQ(ctx context.Context, id primitive.ObjectID) (*models.FAQ, error) {
	return s.faqs.FindByID(ctx, id)
}

func (s *Service) UpdateFAQ(ctx context.Context, id primitive.ObjectID, req models.FAQRequest) (*models.FAQ, error) {
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}
	if err := s.faqs.Update(ctx, id, bson.M{
		"question": strings.TrimSpace(req.Question),
		"answer":   strings.TrimSpace(req.Answer),
		"category": req.Category,
	}); err != nil {
		return nil, err
	}
	return s.faqs.FindByID(ctx, id)
}

func (s *Service) SetFAQStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.FAQ, error) {
	if status != models.ContentPublished && status != models.ContentUnpublished {
		return nil, ErrInvalidContentStatus
	}
	if err := s.faqs.Update(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	return s.faqs.FindByID(ctx, id)
}

func (s *Service) DeleteFAQ(ctx context.Context, id primitive.ObjectID) error {
	return s.faqs.Delete(ctx, id)
}

// --- Tutorial ---

// ValidateTutorial ตรวจ tag แล้วตรวจเงื่อนไขตามชนิด (video ต้องมี media_url, text ต้องมี body)
func ValidateTutorial(req models.TutorialRequest) []models.FieldError {
	fields := utils.ValidateStruct(req)
	switch req.TutorialType {
	case models.TutorialVideo:
		if strings.TrimSpace(req.MediaURL) == "" {
			fields = append(fields, models.FieldError{Field: "media_url", Msg: "media_url is required for video tutorials"})
		}
	case models.TutorialText:
		if n := len([]rune(strings.TrimSpace(req.Body))); n < 20 {
			fields = append(fields, models.FieldError{Field: "body", Msg: "body must be at least 20 characters for text tutorials"})
		}
	}
	return fields
}

func (s *Service) ListTutorials(ctx context.Context, filterBy string, p models.PaginationParams) (*models.PaginatedResponse, error) {
	p.Normalize()
	items, total, err := s.tutorials.List(ctx, contentFilter(filterBy), p)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(items, total, p), nil
}

func (s *Service) CreateTutorial(ctx context.Context, req models.TutorialRequest) (*models.Tutorial, error) {
	if err := utils.NewValidationError(ValidateTutorial(req)); err != nil {
		return nil, err
	}
	now := time.Now()
	tut := &models.Tutorial{
		ID:           primitive.NewObjectID(),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Category:     req.Category,
		TutorialType: req.TutorialType,
		MediaURL:     req.MediaURL,
		Body:         req.Body,
		Status:       models.ContentUnpublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.tutorials.Insert(ctx, tut); err != nil {
		return nil, err
	}
	log.Println("✅ [superadmin] tutorial created:", tut.ID.Hex())
	return tut, nil
}

func (s *Service) GetTutorial(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error) {
	return s.tutorials.FindByID(ctx, id)
}

func (s *Service) UpdateTutorial(ctx context.Context, id primitive.ObjectID, req models.TutorialRequest) (*models.Tutorial, error) {
	if err := utils.NewValidationError(ValidateTutorial(req)); err != nil {
		return nil, err
	}
	if err := s.tutorials.Update(ctx, id, bson.M{
		"title":         strings.TrimSpace(req.Title),
		"description":   strings.TrimSpace(req.Description),
		"category":      req.Category,
		"tutorial_type": req.TutorialType,
		"media_url":     req.MediaURL,
		"body":          req.Body,
	}); err != nil {
		return nil, err
	}
	return s.tutorials.FindByID(ctx, id)
}

func (s *Service) SetTutorialStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Tutorial, error) {
	if status != models.ContentPublished && status != models.ContentUnpublished {
		return nil, ErrInvalidContentStatus
	}
	if err := s.tutorials.Update(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	return s.tutorials.FindByID(ctx, id)
}

func (s *Service) DeleteTutorial(ctx context.Context, id primitive.ObjectID) error {
	return s.tutorials.Delete(ctx, id)
}

// --- Users & statistics ---

func (s *Service) ListUsers(ctx context.Context, filter models.UserFilter, p models.PaginationParams) (*models.PaginatedResponse, error) {
	p.Normalize()
	items, total, err := s.users.List(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(items, total, p), nil
}

func (s *Service) Overview(ctx context.Context) (*models.Overview, error) {
	var (
		out models.Overview
		err error
	)
	if out.TotalUsers, err = s.stats.CountUsers(ctx); err != nil {
		return nil, err
	}
	if out.TotalSurveys, err = s.stats.CountSurveys(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if out.AISurveys, err = s.stats.CountSurveys(ctx, bson.M{"generated_by": models.GeneratedByAI}); err != nil {
		return nil, err
	}
	if out.ManualSurveys, err = s.stats.CountSurveys(ctx, bson.M{"generated_by": models.GeneratedByManually}); err != nil {
		return nil, err
	}
	if out.TotalResponses, err = s.stats.CountResponses(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthRange ช่วงเวลา [ต้นเดือน, ต้นเดือนถัดไป) ค่า 0 ใช้เดือน/ปีปัจจุบัน
func MonthRange(month, year int, now time.Time) (time.Time, time.Time, error) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 2000 || year > 9999 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

func (s *Service) SurveyCreationDistribution(ctx context.Context, month, year int) ([]DailyCount, error) {
	from, to, err := MonthRange(month, year, time.Now())
	if err != nil {
		return nil, err
	}
	counts, err := s.stats.CreationByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return FillDays(from.Month(), from.Year(), counts), nil
}

func (s *Service) SurveyTypeDistribution(ctx context.Context, month, year int) ([]TypeCount, error) {
	from, to, err := MonthRange(month, year, time.Now())
	if err != nil {
		return nil, err
	}
	counts, err := s.stats.TypeDistribution(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return FillTypes(counts), nil
}
