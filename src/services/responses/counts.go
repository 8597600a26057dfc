package responses

import "PollSensei-Backend/src/models"

// CalculateValidationCounts นับคำตอบที่ผ่าน/ไม่ผ่านของ response เดียว
// คำตอบที่ยังไม่มี validation_result จะไม่ถูกนับ
func CalculateValidationCounts(r models.Response) models.ValidationCounts {
	var counts models.ValidationCounts
	for _, a := range r.Answers {
		if a.ValidationResult == nil {
			continue
		}
		switch a.ValidationResult.Status {
		case models.ValidationPassed:
			counts.ValidCount++
		case models.ValidationFailed:
			counts.InvalidCount++
		}
	}
	return counts
}

// CalculateValidationCountsAll รวมผลของหลาย response
func CalculateValidationCountsAll(rs []models.Response) models.ValidationCounts {
	var total models.ValidationCounts
	for _, r := range rs {
		c := CalculateValidationCounts(r)
		total.ValidCount += c.ValidCount
		total.InvalidCount += c.InvalidCount
	}
	return total
}
