package analysis

import "PollSensei-Backend/src/models"

// AssignmentBoard สถานะของหน้าจับคู่ตัวแปรกับ test
//
// Variables คือกองตัวแปรที่ลากได้, Library คือ test ทั้งหมดที่เลือกได้
// และ Selected คือ test ที่ผู้ใช้เปิดไว้พร้อมตัวแปรที่ลากใส่
type AssignmentBoard struct {
	Variables []models.Variable `json:"variables"`
	Library   []models.Test     `json:"library"`
	Selected  []models.Test     `json:"selected"`
}

func NewAssignmentBoard(variables []models.Variable, library []models.Test) *AssignmentBoard {
	return &AssignmentBoard{
		Variables: append([]models.Variable{}, variables...),
		Library:   append([]models.Test{}, library...),
		Selected:  []models.Test{},
	}
}

func (b *AssignmentBoard) selectedIndex(testID string) int {
	for i, t := range b.Selected {
		if t.ID == testID {
			return i
		}
	}
	return -1
}

func (b *AssignmentBoard) IsSelected(testID string) bool {
	return b.selectedIndex(testID) >= 0
}

// Drop ใส่ตัวแปรลงใน test ที่เลือกไว้ ซ้ำ id เดิมจะไม่มีผล
func (b *AssignmentBoard) Drop(v models.Variable, testID string) bool {
	i := b.selectedIndex(testID)
	if i < 0 {
		return false
	}
	for _, existing := range b.Selected[i].Variables {
		if existing.ID == v.ID {
			return false
		}
	}
	b.Selected[i].Variables = append(b.Selected[i].Variables, v)
	return true
}

// RemoveVariable เอาตัวแปรออกจาก test นั้นเท่านั้น
func (b *AssignmentBoard) RemoveVariable(testID, variableID string) bool {
	i := b.selectedIndex(testID)
	if i < 0 {
		return false
	}
	kept := make([]models.Variable, 0, len(b.Selected[i].Variables))
	for _, v := range b.Selected[i].Variables {
		if v.ID != variableID {
			kept = append(kept, v)
		}
	}
	removed := len(kept) != len(b.Selected[i].Variables)
	b.Selected[i].Variables = kept
	return removed
}

// ToggleTest เปิด test (ตัวแปรว่าง) หรือปิด test แล้วคืนตัวแปรที่กองยังไม่มีกลับเข้ากอง
// คืนค่า true ถ้า test ถูกเลือกอยู่หลังจากเรียก
func (b *AssignmentBoard) ToggleTest(testID string) bool {
	var test *models.Test
	for i := range b.Library {
		if b.Library[i].ID == testID {
			test = &b.Library[i]
			break
		}
	}
	if test == nil {
		return false
	}

	if i := b.selectedIndex(testID); i >= 0 {
		removed := b.Selected[i]
		b.Selected = append(b.Selected[:i:i], b.Selected[i+1:]...)
		for _, v := range removed.Variables {
			if !b.inPool(v.ID) {
				b.Variables = append(b.Variables, v)
			}
		}
		return false
	}

	b.Selected = append(b.Selected, models.Test{
		ID:        test.ID,
		Name:      test.Name,
		Variables: []models.Variable{},
		Category:  test.Category,
	})
	return true
}

func (b *AssignmentBoard) inPool(id string) bool {
	for _, v := range b.Variables {
		if v.ID == id {
			return true
		}
	}
	return false
}

// HasVariables ต้องมีอย่างน้อยหนึ่ง test ที่มีตัวแปรจึงจะเริ่มวิเคราะห์ได้
func (b *AssignmentBoard) HasVariables() bool {
	for _, t := range b.Selected {
		if len(t.Variables) > 0 {
			return true
		}
	}
	return false
}

// TestsUsing ชื่อ test ที่มีตัวแปรนี้อยู่
func (b *AssignmentBoard) TestsUsing(variableID string) []string {
	names := []string{}
	for _, t := range b.Selected {
		for _, v := range t.Variables {
			if v.ID == variableID {
				names = append(names, t.Name)
				break
			}
		}
	}
	return names
}

// Format แปลงเป็น payload ที่ส่งให้ engine
func (b *AssignmentBoard) Format(surveyID string) models.TestLibraryFormatted {
	return FormatTests(b.Selected, surveyID)
}

func FormatTests(tests []models.Test, surveyID string) models.TestLibraryFormatted {
	out := models.TestLibraryFormatted{SurveyID: surveyID, Data: make([]models.TestAssignment, 0, len(tests))}
	for _, t := range tests {
		ids := make([]string, 0, len(t.Variables))
		for _, v := range t.Variables {
			ids = append(ids, v.ID)
		}
		out.Data = append(out.Data, models.TestAssignment{TestName: t.Name, TestVariables: ids})
	}
	return out
}

// RequestHasVariables ใช้ตรวจ payload ที่ได้รับจาก client
func RequestHasVariables(req models.TestLibraryFormatted) bool {
	for _, d := range req.Data {
		if len(d.TestVariables) > 0 {
			return true
		}
	}
	return false
}
