package responses

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"PollSensei-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var ErrUnsupportedFormat = errors.New("format must be csv or json")

type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export ส่งออก response ทั้ง survey (surveyID) หรือรายการเดียว (responseID)
func (s *Service) Export(ctx context.Context, userID primitive.ObjectID, surveyID, responseID, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		return nil, ErrUnsupportedFormat
	}

	var (
		survey *models.Survey
		items  []models.Response
	)
	switch {
	case responseID != "":
		id, err := primitive.ObjectIDFromHex(responseID)
		if err != nil {
			return nil, ErrInvalidID
		}
		resp, sv, err := s.ownedResponse(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		survey, items = sv, []models.Response{*resp}
	case surveyID != "":
		id, err := primitive.ObjectIDFromHex(surveyID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if survey, err = s.ownedSurvey(ctx, userID, id); err != nil {
			return nil, err
		}
		if items, err = s.repo.AllBySurvey(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidID
	}

	name := fmt.Sprintf("responses-%s-%s.%s", survey.ID.Hex(), time.Now().Format("20060102"), format)
	if format == FormatJSON {
		body, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: name, ContentType: "application/json", Body: body}, nil
	}

	body, err := WriteCSV(survey, items)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Filename: name, ContentType: "text/csv", Body: body}, nil
}

// WriteCSV หนึ่งแถวต่อ response หนึ่งคอลัมน์ต่อคำถาม
func WriteCSV(survey *models.Survey, items []models.Response) ([]byte, error) {
	header := []string{"response_id", "respondent_name", "respondent_email", "country", "created_at"}
	questions := []string{}
	for _, sec := range survey.Sections {
		for _, q := range sec.Questions {
			questions = append(questions, q.Question)
		}
	}
	header = append(header, questions...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range items {
		answers := map[string]string{}
		for _, a := range r.Answers {
			answers[normalizeKey(a.Question)] = AnswerText(a)
		}
		row := []string{r.ID.Hex(), r.RespondentName, r.RespondentEmail, r.Country, r.CreatedAt.Format(time.RFC3339)}
		for _, q := range questions {
			row = append(row, answers[normalizeKey(q)])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
