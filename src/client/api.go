package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/ai"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/services/surveys"
)

// ---------- auth ----------

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var out models.User
	if err := c.data(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.User, error) {
	var out models.User
	if err := c.data(ctx, http.MethodPost, "/auth/verify-otp", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.data(ctx, http.MethodPost, "/auth/resend-otp", nil, map[string]string{"email": email}, nil)
}

// Login เก็บ access_token ลง TokenStore เมื่อสำเร็จ
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*auth.LoginResult, error) {
	var out auth.LoginResult
	if err := c.data(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	c.tokens.SetToken(out.AccessToken)
	return &out, nil
}

// Logout ล้าง token ในเครื่องเสมอ แม้ server จะตอบ error
func (c *Client) Logout(ctx context.Context) error {
	defer c.tokens.Clear()
	return c.data(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.data(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- surveys ----------

// SurveyQuery ตัวกรองของ survey list/search
type SurveyQuery struct {
	SearchTerm string
	Status     string
	Page       int
	PageSize   int
}

func (q SurveyQuery) values() url.Values {
	v := pageQuery(q.Page, q.PageSize)
	if q.SearchTerm != "" {
		v.Set("search_term", q.SearchTerm)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

func (c *Client) ListSurveys(ctx context.Context, q SurveyQuery) (*Page[models.Survey], error) {
	var out Page[models.Survey]
	if err := c.raw(ctx, http.MethodGet, "/survey/", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchSurveys(ctx context.Context, q SurveyQuery) (*Page[models.Survey], error) {
	var out Page[models.Survey]
	if err := c.raw(ctx, http.MethodGet, "/survey/search", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) surveyCall(ctx context.Context, method, path string, in interface{}) (*models.Survey, error) {
	var out models.Survey
	if err := c.data(ctx, method, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSurvey(ctx context.Context, s models.Survey) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodPost, "/survey/create", s)
}

func (c *Client) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodGet, "/survey/"+url.PathEscape(id), nil)
}

func (c *Client) UpdateSurvey(ctx context.Context, id string, s models.Survey) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodPut, "/survey/update/"+url.PathEscape(id), s)
}

func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	return c.data(ctx, http.MethodDelete, "/survey/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) SetSurveyStatus(ctx context.Context, id, status string) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodPatch, "/survey/status/"+url.PathEscape(id), models.SurveyStatusRequest{Status: status})
}

func (c *Client) DuplicateSurvey(ctx context.Context, id string) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodPost, "/survey/duplicate", models.DuplicateSurveyRequest{SurveyID: id})
}

func (c *Client) ShareSurvey(ctx context.Context, id string) (*models.ShareLink, error) {
	var out models.ShareLink
	if err := c.data(ctx, http.MethodPatch, "/survey/share/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadSurvey คืนไฟล์ข้อความของแบบสอบถาม
func (c *Client) DownloadSurvey(ctx context.Context, id string) ([]byte, error) {
	body, _, err := c.send(ctx, http.MethodGet, "/survey/download/"+url.PathEscape(id), nil, nil)
	return body, err
}

// PublicSurvey ใช้ id หรือ short url ก็ได้
func (c *Client) PublicSurvey(ctx context.Context, idOrCode string) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodGet, "/ps/survey/"+url.PathEscape(idOrCode), nil)
}

func (c *Client) AddDraftSection(ctx context.Context, id string, questions []models.Question) (*models.Survey, error) {
	body := map[string]interface{}{"questions": questions}
	return c.surveyCall(ctx, http.MethodPost, "/survey/draft/"+url.PathEscape(id)+"/section", body)
}

func (c *Client) UpdateDraftQuestion(ctx context.Context, id string, section, question int, patch surveys.QuestionPatch) (*models.Survey, error) {
	body := map[string]interface{}{"section_index": section, "question_index": question, "patch": patch}
	return c.surveyCall(ctx, http.MethodPatch, "/survey/draft/"+url.PathEscape(id)+"/question", body)
}

func (c *Client) ReorderDraftQuestions(ctx context.Context, id string, section, from, to int) (*models.Survey, error) {
	body := map[string]int{"section_index": section, "from": from, "to": to}
	return c.surveyCall(ctx, http.MethodPatch, "/survey/draft/"+url.PathEscape(id)+"/reorder", body)
}

func (c *Client) ResetDraft(ctx context.Context, id string) (*models.Survey, error) {
	return c.surveyCall(ctx, http.MethodPost, "/survey/draft/"+url.PathEscape(id)+"/reset", nil)
}

// ---------- responses ----------

// ResponseQuery ตัวกรองของ response/validate/individual/:id (วันที่ใช้ YYYY-MM-DD)
type ResponseQuery struct {
	Countries    []string
	Date         string
	StartDate    string
	EndDate      string
	Name         string
	ResponseID   string
	Question     string
	QuestionType string
	Answer       string
	Deleted      bool
}

func (q ResponseQuery) values(page, pageSize int) url.Values {
	v := pageQuery(page, pageSize)
	for _, country := range q.Countries {
		v.Add("countries", country)
	}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("date", q.Date)
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	set("name", q.Name)
	set("response_id", q.ResponseID)
	set("question", q.Question)
	set("question_type", q.QuestionType)
	set("answer", q.Answer)
	if q.Deleted {
		v.Set("deleted", strconv.FormatBool(true))
	}
	return v
}

func (c *Client) UploadResponse(ctx context.Context, req models.SubmitResponseRequest) (*models.Response, error) {
	var out models.Response
	if err := c.data(ctx, http.MethodPost, "/response/upload", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPublicResponse ผู้ตอบส่งผ่านลิงก์สาธารณะ
func (c *Client) SubmitPublicResponse(ctx context.Context, req models.SubmitResponseRequest) (*models.Response, error) {
	var out models.Response
	if err := c.data(ctx, http.MethodPost, "/ps/survey/respond", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateResponses(ctx context.Context, surveyID string) (*models.SurveyValidationSummary, error) {
	var out models.SurveyValidationSummary
	if err := c.data(ctx, http.MethodPost, "/response/validate/"+url.PathEscape(surveyID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidatedResponses(ctx context.Context, surveyID string, q ResponseQuery, page, pageSize int) (*Page[models.ValidatedResponse], error) {
	var out Page[models.ValidatedResponse]
	path := "/response/validate/individual/" + url.PathEscape(surveyID)
	if err := c.raw(ctx, http.MethodGet, path, q.values(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResponse(ctx context.Context, id string) error {
	return c.data(ctx, http.MethodDelete, "/response/delete/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) RestoreResponse(ctx context.Context, id string) error {
	return c.data(ctx, http.MethodPatch, "/response/restore/"+url.PathEscape(id), nil, nil, nil)
}

// ExportResponses ระบุ surveyID หรือ responseID อย่างใดอย่างหนึ่ง, format = csv | json
func (c *Client) ExportResponses(ctx context.Context, surveyID, responseID, format string) ([]byte, string, error) {
	q := url.Values{}
	if surveyID != "" {
		q.Set("survey_id", surveyID)
	}
	if responseID != "" {
		q.Set("response_id", responseID)
	}
	if format != "" {
		q.Set("format", format)
	}
	body, header, err := c.send(ctx, http.MethodGet, "/response/export", q, nil)
	if err != nil {
		return nil, "", err
	}
	return body, header.Get("Content-Type"), nil
}

func (c *Client) UpdateTranscription(ctx context.Context, responseID string, req models.TranscriptionUpdateRequest) (*models.Response, error) {
	var out models.Response
	if err := c.data(ctx, http.MethodPatch, "/response/transcription/"+url.PathEscape(responseID), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResponseSummary(ctx context.Context, surveyID string) ([]models.QuestionSummary, error) {
	var out []models.QuestionSummary
	if err := c.data(ctx, http.MethodGet, "/response/summary/"+url.PathEscape(surveyID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RespondentNames(ctx context.Context, surveyID string) ([]string, error) {
	var out []string
	if err := c.data(ctx, http.MethodGet, "/response/respondents-names/"+url.PathEscape(surveyID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------- analysis ----------

func (c *Client) TestLibrary(ctx context.Context) (map[string][]string, error) {
	out := map[string][]string{}
	if err := c.data(ctx, http.MethodGet, "/analysis/library", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SurveyVariables(ctx context.Context, surveyID string) ([]models.SurveyVariable, error) {
	var out []models.SurveyVariable
	if err := c.data(ctx, http.MethodGet, "/analysis/variables/"+url.PathEscape(surveyID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RunAnalysis(ctx context.Context, req models.TestLibraryFormatted) (*models.AnalysisReport, error) {
	var out models.AnalysisReport
	if err := c.data(ctx, http.MethodPost, "/analysis/run", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnalysisReport(ctx context.Context, surveyID string) (*models.AnalysisReport, error) {
	var out models.AnalysisReport
	if err := c.data(ctx, http.MethodGet, "/analysis/report/"+url.PathEscape(surveyID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- ai ----------

// aiPath ผู้ใช้ที่ login แล้วใช้ survey/ai ส่วน guest ใช้ unauth/ai
func (c *Client) aiPath(endpoint string) string {
	if c.Authenticated() {
		return "/survey/ai/" + endpoint
	}
	return "/unauth/ai/" + endpoint
}

func (c *Client) GenerateQuestions(ctx context.Context, req engine.GenerateQuestionsRequest) (*ai.GeneratedQuestions, error) {
	var out ai.GeneratedQuestions
	if err := c.data(ctx, http.MethodPost, c.aiPath("generate-questions"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateTopics(ctx context.Context, req engine.GenerateTopicsRequest) (*engine.GenerateTopicsResponse, error) {
	var out engine.GenerateTopicsResponse
	if err := c.data(ctx, http.MethodPost, c.aiPath("generate-topics"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateSingleQuestion(ctx context.Context, req engine.GenerateSingleQuestionRequest) (*ai.GeneratedQuestion, error) {
	var out ai.GeneratedQuestion
	if err := c.data(ctx, http.MethodPost, c.aiPath("generate-single-question"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req engine.ChatRequest) (*ai.ChatEvent, error) {
	var out ai.ChatEvent
	if err := c.data(ctx, http.MethodPost, c.aiPath("chat"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChatHistory(ctx context.Context, conversationID string) ([]ai.ChatEvent, error) {
	var out []ai.ChatEvent
	path := c.aiPath("chat/" + url.PathEscape(conversationID) + "/history")
	if err := c.data(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------- superadmin ----------

func (c *Client) ListFAQs(ctx context.Context, filterBy string, page, pageSize int) (*Page[models.FAQ], error) {
	q := pageQuery(page, pageSize)
	if filterBy != "" {
		q.Set("filter_by", filterBy)
	}
	var out Page[models.FAQ]
	if err := c.raw(ctx, http.MethodGet, "/superadmin/faq", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFAQ(ctx context.Context, req models.FAQRequest) (*models.FAQ, error) {
	var out models.FAQ
	if err := c.data(ctx, http.MethodPost, "/superadmin/faq", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFAQ(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error) {
	var out models.FAQ
	if err := c.data(ctx, http.MethodPut, "/superadmin/faq/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetFAQStatus status = publish | unpublish
func (c *Client) SetFAQStatus(ctx context.Context, id, status string) (*models.FAQ, error) {
	var out models.FAQ
	q := url.Values{"status": {status}}
	if err := c.data(ctx, http.MethodPatch, "/superadmin/faq-status/"+url.PathEscape(id), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFAQ(ctx context.Context, id string) error {
	return c.data(ctx, http.MethodDelete, "/superadmin/faq/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListTutorials(ctx context.Context, filterBy string, page, pageSize int) (*Page[models.Tutorial], error) {
	q := pageQuery(page, pageSize)
	if filterBy != "" {
		q.Set("filter_by", filterBy)
	}
	var out Page[models.Tutorial]
	if err := c.raw(ctx, http.MethodGet, "/superadmin/tutorial", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTutorial(ctx context.Context, req models.TutorialRequest) (*models.Tutorial, error) {
	var out models.Tutorial
	if err := c.data(ctx, http.MethodPost, "/superadmin/tutorial", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTutorial(ctx context.Context, id string) error {
	return c.data(ctx, http.MethodDelete, "/superadmin/tutorial/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, f models.UserFilter, page, pageSize int) (*Page[models.User], error) {
	q := pageQuery(page, pageSize)
	for key, value := range map[string]string{
		"subscription_type": f.SubscriptionType,
		"account_type":      f.AccountType,
		"location":          f.Location,
		"email":             f.Email,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	var out Page[models.User]
	if err := c.raw(ctx, http.MethodGet, "/superadmin/users", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Overview(ctx context.Context) (*models.Overview, error) {
	var out models.Overview
	if err := c.data(ctx, http.MethodGet, "/superadmin/overview", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
