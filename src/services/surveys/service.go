package surveys

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/qrcode"
	"PollSensei-Backend/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrForbidden      = errors.New("you do not have access to this survey")
	ErrSurveyClosed   = errors.New("survey is closed")
	ErrNotPublished   = errors.New("survey is not published")
	ErrInvalidStatus  = errors.New("invalid survey status")
	shortURLGenerator = func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:10] }
)

type Service struct {
	repo     Repository
	cacheTTL time.Duration
	baseURL  string
}

func NewService(repo Repository, baseURL string, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, baseURL: strings.TrimRight(baseURL, "/"), cacheTTL: cacheTTL}
}

// Create บันทึก survey ใหม่ของผู้ใช้ (สถานะเริ่มต้น draft)
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, survey *models.Survey) (*models.Survey, error) {
	if survey.GeneratedBy == "" {
		survey.GeneratedBy = models.GeneratedByManually
	}
	if err := utils.NewValidationError(ValidateSurvey(survey)); err != nil {
		return nil, err
	}

	now := time.Now()
	survey.ID = primitive.NewObjectID()
	survey.UserID = userID
	survey.Status = models.SurveyStatusDraft
	survey.ShortURL = ""
	survey.CreatedAt = now
	survey.UpdatedAt = now
	if survey.Sections == nil {
		survey.Sections = []models.Section{}
	}

	if err := s.repo.Insert(ctx, survey); err != nil {
		return nil, err
	}
	defer invalidateListCache(userID.Hex())

	log.Printf("[survey] created id=%s by=%s generated_by=%s questions=%d",
		survey.ID.Hex(), userID.Hex(), survey.GeneratedBy, survey.QuestionCount())
	return survey, nil
}

// Get คืน survey ของเจ้าของเท่านั้น
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Survey, error) {
	survey, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.UserID != userID {
		return nil, ErrForbidden
	}
	return survey, nil
}

// Update แทนที่เนื้อหาของ survey (topic, description, theme, sections, ...)
func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, in *models.Survey) (*models.Survey, error) {
	survey, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	survey.Topic = in.Topic
	survey.Description = in.Description
	survey.Theme = in.Theme
	survey.Sections = in.Sections
	if in.ConversationID != "" {
		survey.ConversationID = in.ConversationID
	}
	if in.GeneratedBy != "" {
		survey.GeneratedBy = in.GeneratedBy
	}
	if err := utils.NewValidationError(ValidateSurvey(survey)); err != nil {
		return nil, err
	}
	return survey, s.save(ctx, survey)
}

// SetStatus เปลี่ยนสถานะ draft/published/closed
func (s *Service) SetStatus(ctx context.Context, userID, id primitive.ObjectID, status string) (*models.Survey, error) {
	switch status {
	case models.SurveyStatusDraft, models.SurveyStatusPublished, models.SurveyStatusClosed:
	default:
		return nil, ErrInvalidStatus
	}
	survey, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetFields(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	invalidateListCache(userID.Hex())
	survey.Status = status
	log.Printf("[survey] status id=%s -> %s", id.Hex(), status)
	return survey, nil
}

// Share ออก short URL (ครั้งแรก) และเผยแพร่ survey ที่ยังเป็น draft
func (s *Service) Share(ctx context.Context, userID, id primitive.ObjectID) (*models.ShareLink, error) {
	survey, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if survey.Status == models.SurveyStatusClosed {
		return nil, ErrSurveyClosed
	}

	fields := bson.M{}
	if survey.ShortURL == "" {
		survey.ShortURL = shortURLGenerator()
		fields["short_url"] = survey.ShortURL
	}
	if survey.Status != models.SurveyStatusPublished {
		survey.Status = models.SurveyStatusPublished
		fields["status"] = survey.Status
	}
	if len(fields) > 0 {
		if err := s.repo.SetFields(ctx, id, fields); err != nil {
			return nil, err
		}
		invalidateListCache(userID.Hex())
	}

	return &models.ShareLink{
		SurveyID: id.Hex(),
		ShortURL: survey.ShortURL,
		Link:     s.baseURL + "/ps/" + survey.ShortURL,
	}, nil
}

// ShareQRCode แชร์ survey (ถ้ายังไม่แชร์) แล้วคืน QR Code ของลิงก์เป็น PNG
func (s *Service) ShareQRCode(ctx context.Context, userID, id primitive.ObjectID, size int) ([]byte, *models.ShareLink, error) {
	link, err := s.Share(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	png, err := qrcode.SharePNG(link.Link, size)
	if err != nil {
		return nil, nil, err
	}
	return png, link, nil
}

// Duplicate คัดลอก survey เป็น draft ใหม่
func (s *Service) Duplicate(ctx context.Context, userID, id primitive.ObjectID) (*models.Survey, error) {
	src, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	cp := *src
	cp.Sections = make([]models.Section, len(src.Sections))
	for i, sec := range src.Sections {
		cp.Sections[i].Questions = append([]models.Question(nil), sec.Questions...)
	}
	cp.Topic = src.Topic + " (copy)"
	return s.Create(ctx, userID, &cp)
}

func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateListCache(userID.Hex())
	log.Printf("[survey] deleted id=%s", id.Hex())
	return nil
}

// List รายการ survey ของผู้ใช้แบบแบ่งหน้า (อ่านผ่าน redis cache)
func (s *Service) List(ctx context.Context, userID primitive.ObjectID, filter SearchFilter, p models.PaginationParams) (*models.PaginatedResponse, error) {
	p.Normalize()

	key := listCacheKey(userID.Hex(), struct {
		F SearchFilter
		P models.PaginationParams
	}{filter, p})

	var cached struct {
		Data  []models.Survey `json:"data"`
		Total int64           `json:"total"`
	}
	if getCache(key, &cached) {
		return models.NewPaginatedResponse(cached.Data, cached.Total, p), nil
	}

	items, total, err := s.repo.List(ctx, userID, filter, p)
	if err != nil {
		return nil, err
	}
	cached.Data, cached.Total = items, total
	setCache(key, cached, s.cacheTTL)
	return models.NewPaginatedResponse(items, total, p), nil
}

// GetPublic คืน survey ที่เผยแพร่แล้ว ค้นหาได้ทั้ง id และ short URL
func (s *Service) GetPublic(ctx context.Context, idOrCode string) (*models.Survey, error) {
	var (
		survey *models.Survey
		err    error
	)
	if oid, perr := primitive.ObjectIDFromHex(idOrCode); perr == nil {
		survey, err = s.repo.FindByID(ctx, oid)
	} else {
		survey, err = s.repo.FindByShortURL(ctx, idOrCode)
	}
	if err != nil {
		return nil, err
	}

	switch survey.Status {
	case models.SurveyStatusPublished:
		return survey, nil
	case models.SurveyStatusClosed:
		return nil, ErrSurveyClosed
	default:
		return nil, ErrNotPublished
	}
}

// --- draft editing: load, apply a document operation, save ---

func (s *Service) AddSection(ctx context.Context, userID, id primitive.ObjectID, questions []models.Question) (*models.Survey, error) {
	return s.edit(ctx, userID, id, func(survey *models.Survey) error {
		AddSection(survey, questions)
		return nil
	})
}

func (s *Service) UpdateQuestion(ctx context.Context, userID, id primitive.ObjectID, sectionIndex, questionIndex int, patch QuestionPatch) (*models.Survey, error) {
	return s.edit(ctx, userID, id, func(survey *models.Survey) error {
		return UpdateQuestion(survey, sectionIndex, questionIndex, patch)
	})
}

func (s *Service) ReorderQuestions(ctx context.Context, userID, id primitive.ObjectID, sectionIndex, from, to int) (*models.Survey, error) {
	return s.edit(ctx, userID, id, func(survey *models.Survey) error {
		return ReorderQuestions(survey, sectionIndex, from, to)
	})
}

func (s *Service) Reset(ctx context.Context, userID, id primitive.ObjectID) (*models.Survey, error) {
	return s.edit(ctx, userID, id, func(survey *models.Survey) error {
		ResetSurvey(survey)
		return nil
	})
}

func (s *Service) edit(ctx context.Context, userID, id primitive.ObjectID, apply func(*models.Survey) error) (*models.Survey, error) {
	survey, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if survey.Status == models.SurveyStatusClosed {
		return nil, ErrSurveyClosed
	}
	if err := apply(survey); err != nil {
		return nil, err
	}
	return survey, s.save(ctx, survey)
}

func (s *Service) save(ctx context.Context, survey *models.Survey) error {
	survey.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, survey); err != nil {
		return err
	}
	invalidateListCache(survey.UserID.Hex())
	return nil
}
