package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"PollSensei-Backend/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const TypeRunAnalysis = "analysis:run"

type RunAnalysisPayload struct {
	ReportID string `json:"report_id"`
}

func NewRunAnalysisTask(reportID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RunAnalysisPayload{ReportID: reportID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRunAnalysis, payload, asynq.MaxRetry(3)), nil
}

// Runner ส่วนของ engine client ที่ใช้รัน test
type Runner interface {
	RunTests(ctx context.Context, req models.TestLibraryFormatted) (map[string]interface{}, error)
}

func HandleRunAnalysisTask(repo ReportRepository, runner Runner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		log.Println("🎯 Start analysis task")

		var p RunAnalysisPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Println("❌ Payload decode error:", err)
			return err
		}
		id, err := primitive.ObjectIDFromHex(p.ReportID)
		if err != nil {
			return err
		}
		return processReport(ctx, repo, runner, id)
	}
}

func processReport(ctx context.Context, repo ReportRepository, runner Runner, id primitive.ObjectID) error {
	report, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			log.Println("⚠️ Analysis report not found. Skipping task:", id.Hex())
			return nil
		}
		return err
	}
	if report.Status != models.AnalysisPending {
		return nil
	}

	result, err := runner.RunTests(ctx, report.Request)
	if err != nil {
		log.Println("❌ Analysis failed:", id.Hex(), err)
		if ferr := repo.Fail(ctx, id, err.Error()); ferr != nil {
			return ferr
		}
		return nil
	}
	if err := repo.Complete(ctx, id, result); err != nil {
		return err
	}
	log.Println("✅ Analysis completed:", id.Hex())
	return nil
}

// RegisterAnalysisHandlers ลงทะเบียน handler ของ package analysis
func RegisterAnalysisHandlers(mux *asynq.ServeMux, repo ReportRepository, runner Runner) {
	mux.HandleFunc(TypeRunAnalysis, HandleRunAnalysisTask(repo, runner))
}
