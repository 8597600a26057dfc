package surveys

import (
	"testing"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleSurvey() *models.Survey {
	return &models.Survey{
		Topic:       "Customer satisfaction",
		Description: "Quarterly pulse",
		Theme:       "purple",
		GeneratedBy: models.GeneratedByAI,
		Sections: []models.Section{{Questions: []models.Question{
			{Question: "How did you hear about us?", QuestionType: models.MultipleChoice, Options: []string{"Friend", "Ad"}},
			{Question: "Rate our support", QuestionType: models.StarRating, Min: ptr(1.0), Max: ptr(5.0)},
			{Question: "Anything else?", QuestionType: models.LongText},
		}}},
	}
}

func TestSurveyDocument(t *testing.T) {
	suite := testutil.NewSuite("Survey Document Tests")
	defer suite.Report(t)

	suite.Run(t, "ReorderMovesFirstToLast", time.Second, func(t *testing.T) {
		out, err := Reorder([]string{"A", "B", "C"}, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A"}, out)
	})

	suite.Run(t, "ReorderMovesLastToFirst", time.Second, func(t *testing.T) {
		out, err := Reorder([]string{"A", "B", "C", "D"}, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"D", "A", "B", "C"}, out)
	})

	suite.Run(t, "ReorderIsPermutationForAllIndexPairs", time.Second, func(t *testing.T) {
		in := []string{"A", "B", "C", "D", "E"}
		for from := range in {
			for to := range in {
				out, err := Reorder(in, from, to)
				require.NoError(t, err)
				assert.Len(t, out, len(in))
				assert.ElementsMatch(t, in, out)
				assert.Equal(t, in[from], out[to])
			}
		}
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, in, "input must not be mutated")
	})

	suite.Run(t, "ReorderRejectsOutOfRange", time.Second, func(t *testing.T) {
		_, err := Reorder([]int{1, 2}, 0, 2)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = Reorder([]int{}, 0, 0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = Reorder([]int{1}, -1, 0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	suite.Run(t, "ReorderQuestionsInSection", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		require.NoError(t, ReorderQuestions(s, 0, 2, 0))
		assert.Equal(t, "Anything else?", s.Sections[0].Questions[0].Question)
		assert.Equal(t, "How did you hear about us?", s.Sections[0].Questions[1].Question)
		assert.ErrorIs(t, ReorderQuestions(s, 3, 0, 1), ErrSectionOutOfRange)
	})

	suite.Run(t, "AddSectionDoesNotValidate", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		AddSection(s, []models.Question{{QuestionType: models.MatrixCheckbox}})
		require.Len(t, s.Sections, 2)
		assert.Len(t, s.Sections[1].Questions, 1)
		assert.Equal(t, 4, s.QuestionCount())
	})

	suite.Run(t, "AddSectionCopiesInput", time.Second, func(t *testing.T) {
		s := &models.Survey{}
		qs := []models.Question{{Question: "Q1", QuestionType: models.ShortText}}
		AddSection(s, qs)
		qs[0].Question = "changed"
		assert.Equal(t, "Q1", s.Sections[0].Questions[0].Question)
	})

	suite.Run(t, "UpdateQuestionMergesPatch", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		err := UpdateQuestion(s, 0, 0, QuestionPatch{
			Question:   ptr("Where did you find us?"),
			IsRequired: ptr(true),
			Options:    []string{"Friend", "Ad", "Search"},
		})
		require.NoError(t, err)
		q := s.Sections[0].Questions[0]
		assert.Equal(t, "Where did you find us?", q.Question)
		assert.True(t, q.IsRequired)
		assert.Equal(t, []string{"Friend", "Ad", "Search"}, q.Options)
		assert.Equal(t, models.MultipleChoice, q.QuestionType)
	})

	suite.Run(t, "UpdateQuestionTypeSwitchResetsFields", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		require.NoError(t, UpdateQuestion(s, 0, 1, QuestionPatch{QuestionType: ptr(models.LongText)}))
		q := s.Sections[0].Questions[1]
		assert.Equal(t, models.LongText, q.QuestionType)
		assert.Nil(t, q.Min)
		assert.Nil(t, q.Max)
		assert.Empty(t, q.Options)

		require.NoError(t, UpdateQuestion(s, 0, 0, QuestionPatch{QuestionType: ptr(models.LikertScale)}))
		assert.Equal(t, models.DefaultLikertOptions, s.Sections[0].Questions[0].Options)

		require.NoError(t, UpdateQuestion(s, 0, 2, QuestionPatch{
			QuestionType: ptr(models.MatrixMultipleChoice),
			Rows:         []string{"Speed", "Price"},
			Columns:      []string{"Bad", "Good"},
		}))
		m := s.Sections[0].Questions[2]
		assert.Equal(t, []string{"Speed", "Price"}, m.Rows)
		assert.Empty(t, m.Options)
	})

	suite.Run(t, "UpdateQuestionOutOfRange", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		assert.ErrorIs(t, UpdateQuestion(s, 1, 0, QuestionPatch{}), ErrSectionOutOfRange)
		assert.ErrorIs(t, UpdateQuestion(s, 0, 9, QuestionPatch{}), ErrQuestionOutOfRange)
	})

	suite.Run(t, "ResetSurveyClearsContent", time.Second, func(t *testing.T) {
		s := sampleSurvey()
		s.ConversationID = "conv-1"
		ResetSurvey(s)
		assert.Empty(t, s.Topic)
		assert.Empty(t, s.Description)
		assert.Empty(t, s.Theme)
		assert.Empty(t, s.Sections)
		assert.Empty(t, s.ConversationID)
		assert.Empty(t, s.GeneratedBy)
	})
}

func TestValidateQuestion(t *testing.T) {
	cases := []struct {
		name   string
		q      models.Question
		fields []string
	}{
		{"valid choice", models.Question{Question: "Pick", QuestionType: models.SingleChoice, Options: []string{"a", "b"}}, nil},
		{"choice without options", models.Question{Question: "Pick", QuestionType: models.Checkbox, Options: []string{" "}}, []string{"options"}},
		{"text with options", models.Question{Question: "Say", QuestionType: models.ShortText, Options: []string{"x"}}, []string{"options"}},
		{"matrix without columns", models.Question{Question: "Grid", QuestionType: models.MatrixCheckbox, Rows: []string{"r"}}, []string{"columns"}},
		{"numeric min > max", models.Question{Question: "Slide", QuestionType: models.Slider, Min: ptr(10.0), Max: ptr(1.0)}, []string{"min"}},
		{"min on text", models.Question{Question: "Say", QuestionType: models.LongText, Min: ptr(1.0)}, []string{"min"}},
		{"unknown type", models.Question{Question: "?", QuestionType: "essay"}, []string{"question_type"}},
		{"missing text", models.Question{QuestionType: models.Media}, []string{"question"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateQuestion(tc.q)
			got := []string{}
			for _, e := range errs {
				got = append(got, e.Field)
			}
			if tc.fields == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.fields, got)
		})
	}
}

func TestValidateSurveyPrefixesFieldPath(t *testing.T) {
	s := sampleSurvey()
	AddSection(s, []models.Question{{Question: "Grid", QuestionType: models.MatrixCheckbox}})

	errs := ValidateSurvey(s)
	require.Len(t, errs, 2)
	assert.Equal(t, "sections[1].questions[0].rows", errs[0].Field)
	assert.Equal(t, "sections[1].questions[0].columns", errs[1].Field)

	s.Topic = ""
	assert.Equal(t, "topic", ValidateSurvey(s)[0].Field)
}

func TestRenderTextAndSlug(t *testing.T) {
	s := sampleSurvey()
	s.Sections[0].Questions[0].IsRequired = true

	out := RenderText(s)
	assert.Contains(t, out, "Customer satisfaction\n")
	assert.Contains(t, out, "1. How did you hear about us? *")
	assert.Contains(t, out, "[ ] Friend")
	assert.Contains(t, out, "(1 - 5)")
	assert.Equal(t, "customer_satisfaction", Slug(s.Topic))
	assert.Equal(t, "survey", Slug("!!!"))
}
