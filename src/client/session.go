package client

import (
	"context"
	"net/http"
	"net/url"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/analysis"
)

// AnalysisSession board ของการจับคู่ตัวแปรกับ test ที่แก้ในเครื่องก่อนส่ง run
type AnalysisSession struct {
	client   *Client
	SurveyID string
	Board    *analysis.AssignmentBoard
}

// OpenAnalysis โหลด board ตั้งต้นของแบบสอบถามจาก server
func (c *Client) OpenAnalysis(ctx context.Context, surveyID string) (*AnalysisSession, error) {
	var board analysis.AssignmentBoard
	if err := c.data(ctx, http.MethodGet, "/analysis/board/"+url.PathEscape(surveyID), nil, nil, &board); err != nil {
		return nil, err
	}
	if board.Selected == nil {
		board.Selected = []models.Test{}
	}
	return &AnalysisSession{client: c, SurveyID: surveyID, Board: &board}, nil
}

func (s *AnalysisSession) ToggleTest(testID string) bool { return s.Board.ToggleTest(testID) }

func (s *AnalysisSession) IsSelected(testID string) bool { return s.Board.IsSelected(testID) }

func (s *AnalysisSession) Drop(v models.Variable, testID string) bool { return s.Board.Drop(v, testID) }

func (s *AnalysisSession) RemoveVariable(testID, variableID string) bool {
	return s.Board.RemoveVariable(testID, variableID)
}

// CanRun มี test ที่ใส่ตัวแปรแล้วอย่างน้อยหนึ่งอัน
func (s *AnalysisSession) CanRun() bool { return s.Board.HasVariables() }

// Run ส่ง test ที่เลือกไว้ให้ server ไม่ยิง request ถ้ายังไม่มีตัวแปร
func (s *AnalysisSession) Run(ctx context.Context) (*models.AnalysisReport, error) {
	if !s.CanRun() {
		return nil, analysis.ErrNoVariables
	}
	return s.client.RunAnalysis(ctx, s.Board.Format(s.SurveyID))
}

func (s *AnalysisSession) Report(ctx context.Context) (*models.AnalysisReport, error) {
	return s.client.AnalysisReport(ctx, s.SurveyID)
}
