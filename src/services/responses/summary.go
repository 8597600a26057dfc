package responses

import (
	"sort"
	"strconv"
	"strings"

	"PollSensei-Backend/src/models"
)

// Summarize สรุปคำตอบรายคำถามตามลำดับในแบบสอบถาม
func Summarize(survey *models.Survey, items []models.Response) []models.QuestionSummary {
	type acc struct {
		summary models.QuestionSummary
		sum     float64
		n       int
	}

	order := []string{}
	byKey := map[string]*acc{}
	for _, sec := range survey.Sections {
		for _, q := range sec.Questions {
			key := normalizeKey(q.Question)
			if _, ok := byKey[key]; ok {
				continue
			}
			order = append(order, key)
			byKey[key] = &acc{summary: models.QuestionSummary{Question: q.Question, QuestionType: q.QuestionType}}
		}
	}

	for _, r := range items {
		for _, a := range r.Answers {
			entry, ok := byKey[normalizeKey(a.Question)]
			if !ok || IsEmptyAnswer(a) {
				continue
			}
			entry.summary.Answered++

			qt := entry.summary.QuestionType
			switch {
			case qt.HasOptions():
				opts := a.SelectedOptions
				if len(opts) == 0 && a.Content != "" {
					opts = []string{a.Content}
				}
				for _, o := range opts {
					if entry.summary.OptionCounts == nil {
						entry.summary.OptionCounts = map[string]int{}
					}
					entry.summary.OptionCounts[o]++
				}
			case qt.IsMatrix():
				for row, cols := range a.Matrix {
					for _, col := range cols {
						if entry.summary.OptionCounts == nil {
							entry.summary.OptionCounts = map[string]int{}
						}
						entry.summary.OptionCounts[row+" / "+col]++
					}
				}
			case qt.IsNumeric():
				if a.ScaleValue != nil {
					entry.sum += *a.ScaleValue
					entry.n++
				} else if v, err := strconv.ParseFloat(strings.TrimSpace(a.Content), 64); err == nil {
					entry.sum += v
					entry.n++
				}
			}
		}
	}

	out := make([]models.QuestionSummary, 0, len(order))
	for _, key := range order {
		entry := byKey[key]
		if entry.n > 0 {
			avg := entry.sum / float64(entry.n)
			entry.summary.Average = &avg
		}
		out = append(out, entry.summary)
	}
	return out
}

// AnswerText แปลงคำตอบเป็นข้อความบรรทัดเดียวสำหรับ export
func AnswerText(a models.Answer) string {
	switch {
	case len(a.SelectedOptions) > 0:
		return strings.Join(a.SelectedOptions, "; ")
	case a.ScaleValue != nil:
		return strconv.FormatFloat(*a.ScaleValue, 'f', -1, 64)
	case len(a.Matrix) > 0:
		rows := make([]string, 0, len(a.Matrix))
		for row := range a.Matrix {
			rows = append(rows, row)
		}
		sort.Strings(rows)
		parts := make([]string, 0, len(rows))
		for _, row := range rows {
			parts = append(parts, row+": "+strings.Join(a.Matrix[row], "|"))
		}
		return strings.Join(parts, "; ")
	case a.Transcription != nil && a.Transcription.Text != "":
		return a.Transcription.Text
	case a.MediaURL != "":
		return a.MediaURL
	}
	return a.Content
}
