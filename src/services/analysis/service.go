package analysis

import (
	"context"
	"errors"
	"log"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoVariables = errors.New("assign at least one variable to a test before running the analysis")
	ErrInvalidID   = errors.New("invalid survey id")
)

type SurveyFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error)
}

// Enqueuer คือ *asynq.Client หรือ jobs.Queue
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Service struct {
	surveys   SurveyFinder
	reports   ReportRepository
	runner    Runner
	queue     Enqueuer
	catalogue *Catalogue
}

// NewService queue เป็น nil ได้ (ไม่มี redis) จะรัน analysis ทันทีใน request
func NewService(surveys SurveyFinder, reports ReportRepository, runner Runner, queue Enqueuer, catalogue *Catalogue) *Service {
	if catalogue == nil {
		catalogue = &Catalogue{}
	}
	return &Service{surveys: surveys, reports: reports, runner: runner, queue: queue, catalogue: catalogue}
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

func (s *Service) Library() map[string][]string {
	return s.catalogue.Grouped()
}

func (s *Service) Variables(ctx context.Context, userID, surveyID primitive.ObjectID) ([]models.SurveyVariable, error) {
	survey, err := s.ownedSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	return ExtractVariables(survey), nil
}

// Board สร้าง board เริ่มต้นของ survey: กองตัวแปรจากคำถาม และ test ทั้งหมดจาก catalogue
func (s *Service) Board(ctx context.Context, userID, surveyID primitive.ObjectID) (*AssignmentBoard, error) {
	vars, err := s.Variables(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	return NewAssignmentBoard(PoolFromVariables(vars), s.catalogue.Tests()), nil
}

// Run บันทึก report สถานะ pending แล้วส่งงานเข้าคิว
func (s *Service) Run(ctx context.Context, userID primitive.ObjectID, req models.TestLibraryFormatted) (*models.AnalysisReport, error) {
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}
	if !RequestHasVariables(req) {
		return nil, ErrNoVariables
	}
	surveyID, err := primitive.ObjectIDFromHex(req.SurveyID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if _, err := s.ownedSurvey(ctx, userID, surveyID); err != nil {
		return nil, err
	}

	now := time.Now()
	report := &models.AnalysisReport{
		SurveyID:  surveyID,
		Request:   req,
		Status:    models.AnalysisPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}

	if s.queue == nil {
		log.Println("⚠️ Asynq client not initialized, running analysis inline:", report.ID.Hex())
		if err := processReport(ctx, s.reports, s.runner, report.ID); err != nil {
			return nil, err
		}
		return s.reports.FindByID(ctx, report.ID)
	}

	task, err := NewRunAnalysisTask(report.ID.Hex())
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
		log.Println("❌ Failed to enqueue analysis task:", err)
		return nil, err
	}
	log.Println("✅ Enqueued analysis task:", report.ID.Hex())
	return report, nil
}

func (s *Service) Report(ctx context.Context, userID, surveyID primitive.ObjectID) (*models.AnalysisReport, error) {
	if _, err := s.ownedSurvey(ctx, userID, surveyID); err != nil {
		return nil, err
	}
	return s.reports.LatestForSurvey(ctx, surveyID)
}
