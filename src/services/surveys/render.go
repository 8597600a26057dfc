package surveys

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"PollSensei-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// RenderText จัดรูปแบบ survey เป็นข้อความสำหรับพิมพ์/ดาวน์โหลด
func RenderText(s *models.Survey) string {
	var b strings.Builder
	b.WriteString(s.Topic + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(s.Topic))) + "\n")
	if s.Description != "" {
		b.WriteString(s.Description + "\n")
	}

	n := 0
	for i, sec := range s.Sections {
		fmt.Fprintf(&b, "\nSection %d\n", i+1)
		for _, q := range sec.Questions {
			n++
			required := ""
			if q.IsRequired {
				required = " *"
			}
			fmt.Fprintf(&b, "%d. %s%s\n", n, q.Question, required)
			switch {
			case q.QuestionType.HasOptions():
				for _, o := range q.Options {
					fmt.Fprintf(&b, "   [ ] %s\n", o)
				}
			case q.QuestionType.IsMatrix():
				fmt.Fprintf(&b, "   columns: %s\n", strings.Join(q.Columns, " | "))
				for _, r := range q.Rows {
					fmt.Fprintf(&b, "   - %s\n", r)
				}
			case q.QuestionType.IsNumeric():
				if q.Min != nil && q.Max != nil {
					fmt.Fprintf(&b, "   (%g - %g)\n", *q.Min, *q.Max)
				}
			default:
				b.WriteString("   ____________________\n")
			}
		}
	}
	return b.String()
}

// Slug แปลงข้อความเป็น slug ใช้ตั้งชื่อไฟล์/ตัวแปร
func Slug(text string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(text), "_"), "_")
	if s == "" {
		return "survey"
	}
	return s
}

// Download คืนเนื้อหาไฟล์และชื่อไฟล์ของ survey/download/:id
func (s *Service) Download(ctx context.Context, userID, id primitive.ObjectID) ([]byte, string, error) {
	survey, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	return []byte(RenderText(survey)), Slug(survey.Topic) + ".txt", nil
}
