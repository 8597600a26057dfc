package analysis

import (
	"context"
	"errors"
	"testing"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memReports struct {
	items map[primitive.ObjectID]*models.AnalysisReport
}

func newMemReports() *memReports {
	return &memReports{items: map[primitive.ObjectID]*models.AnalysisReport{}}
}

func (m *memReports) Insert(_ context.Context, r *models.AnalysisReport) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	m.items[r.ID] = &cp
	return nil
}

func (m *memReports) FindByID(_ context.Context, id primitive.ObjectID) (*models.AnalysisReport, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReports) LatestForSurvey(_ context.Context, surveyID primitive.ObjectID) (*models.AnalysisReport, error) {
	var latest *models.AnalysisReport
	for _, r := range m.items {
		if r.SurveyID == surveyID && (latest == nil || r.CreatedAt.After(latest.CreatedAt)) {
			latest = r
		}
	}
	if latest == nil {
		return nil, ErrReportNotFound
	}
	return latest, nil
}

func (m *memReports) Complete(_ context.Context, id primitive.ObjectID, result map[string]interface{}) error {
	m.items[id].Status = models.AnalysisCompleted
	m.items[id].Result = result
	return nil
}

func (m *memReports) Fail(_ context.Context, id primitive.ObjectID, reason string) error {
	m.items[id].Status = models.AnalysisFailed
	m.items[id].Error = reason
	return nil
}

type runnerFunc func(ctx context.Context, req models.TestLibraryFormatted) (map[string]interface{}, error)

func (f runnerFunc) RunTests(ctx context.Context, req models.TestLibraryFormatted) (map[string]interface{}, error) {
	return f(ctx, req)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	return &asynq.TaskInfo{ID: "t-1", Type: task.Type()}, args.Error(0)
}

type stubSurveys map[primitive.ObjectID]*models.Survey

func (s stubSurveys) FindByID(_ context.Context, id primitive.ObjectID) (*models.Survey, error) {
	if sv, ok := s[id]; ok {
		return sv, nil
	}
	return nil, surveys.ErrSurveyNotFound
}

func analysisFixture(runner Runner, queue Enqueuer) (*Service, *memReports, *models.Survey) {
	sv := &models.Survey{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Sections: []models.Section{{Questions: []models.Question{
			{Question: "Age", QuestionType: models.Number},
			{Question: "Gender", QuestionType: models.SingleChoice, Options: []string{"F", "M"}},
		}}},
	}
	cat, _ := ParseCatalogue([]byte(catalogueYAML))
	reports := newMemReports()
	return NewService(stubSurveys{sv.ID: sv}, reports, runner, queue, cat), reports, sv
}

func request(surveyID string, vars ...string) models.TestLibraryFormatted {
	return models.TestLibraryFormatted{
		SurveyID: surveyID,
		Data:     []models.TestAssignment{{TestName: "T-Tests", TestVariables: vars}},
	}
}

func TestBoardFromSurvey(t *testing.T) {
	svc, _, sv := analysisFixture(nil, nil)

	board, err := svc.Board(context.Background(), sv.UserID, sv.ID)

	require.NoError(t, err)
	assert.Equal(t, []models.Variable{{ID: "age", Name: "Age"}, {ID: "gender", Name: "Gender"}}, board.Variables)
	assert.Len(t, board.Library, 3)
	assert.Empty(t, board.Selected)

	_, err = svc.Board(context.Background(), primitive.NewObjectID(), sv.ID)
	assert.ErrorIs(t, err, surveys.ErrForbidden)
}

func TestRunInlineWithoutQueue(t *testing.T) {
	var got models.TestLibraryFormatted
	runner := runnerFunc(func(_ context.Context, req models.TestLibraryFormatted) (map[string]interface{}, error) {
		got = req
		return map[string]interface{}{"T-Tests": map[string]interface{}{"p_value": 0.04}}, nil
	})
	svc, _, sv := analysisFixture(runner, nil)

	report, err := svc.Run(context.Background(), sv.UserID, request(sv.ID.Hex(), "age", "gender"))

	require.NoError(t, err)
	assert.Equal(t, models.AnalysisCompleted, report.Status)
	assert.Contains(t, report.Result, "T-Tests")
	assert.Equal(t, []string{"age", "gender"}, got.Data[0].TestVariables)

	latest, err := svc.Report(context.Background(), sv.UserID, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, latest.ID)
}

func TestRunRecordsEngineFailure(t *testing.T) {
	runner := runnerFunc(func(context.Context, models.TestLibraryFormatted) (map[string]interface{}, error) {
		return nil, errors.New("engine down")
	})
	svc, _, sv := analysisFixture(runner, nil)

	report, err := svc.Run(context.Background(), sv.UserID, request(sv.ID.Hex(), "age"))

	require.NoError(t, err)
	assert.Equal(t, models.AnalysisFailed, report.Status)
	assert.Equal(t, "engine down", report.Error)
}

func TestRunEnqueuesTask(t *testing.T) {
	queue := new(MockEnqueuer)
	queue.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == TypeRunAnalysis
	})).Return(nil)
	svc, reports, sv := analysisFixture(nil, queue)

	report, err := svc.Run(context.Background(), sv.UserID, request(sv.ID.Hex(), "age"))

	require.NoError(t, err)
	assert.Equal(t, models.AnalysisPending, report.Status)
	assert.Equal(t, models.AnalysisPending, reports.items[report.ID].Status)
	queue.AssertExpectations(t)
}

func TestRunRejectsBadRequests(t *testing.T) {
	svc, _, sv := analysisFixture(nil, nil)
	ctx := context.Background()

	_, err := svc.Run(ctx, sv.UserID, request(sv.ID.Hex()))
	assert.ErrorIs(t, err, ErrNoVariables)

	_, err = svc.Run(ctx, sv.UserID, models.TestLibraryFormatted{SurveyID: sv.ID.Hex()})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Run(ctx, primitive.NewObjectID(), request(sv.ID.Hex(), "age"))
	assert.ErrorIs(t, err, surveys.ErrForbidden)
}

func TestHandleRunAnalysisTask(t *testing.T) {
	reports := newMemReports()
	report := &models.AnalysisReport{Status: models.AnalysisPending, Request: request("x", "age")}
	require.NoError(t, reports.Insert(context.Background(), report))

	calls := 0
	handler := HandleRunAnalysisTask(reports, runnerFunc(func(context.Context, models.TestLibraryFormatted) (map[string]interface{}, error) {
		calls++
		return map[string]interface{}{"ok": true}, nil
	}))

	task, err := NewRunAnalysisTask(report.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, models.AnalysisCompleted, reports.items[report.ID].Status)

	// งานซ้ำไม่ควรเรียก engine อีก
	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, 1, calls)

	missing, _ := NewRunAnalysisTask(primitive.NewObjectID().Hex())
	assert.NoError(t, handler(context.Background(), missing))

	assert.Error(t, handler(context.Background(), asynq.NewTask(TypeRunAnalysis, []byte("{"))))
}
