package analysis

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"PollSensei-Backend/src/models"

	"gopkg.in/yaml.v3"
)

var camelBoundary = regexp.MustCompile(`[^a-zA-Z0-9]+(.)`)

// ToCamelCase "One-sample t-test" -> "oneSampleTTest"
func ToCamelCase(s string) string {
	out := camelBoundary.ReplaceAllStringFunc(s, func(m string) string {
		r, _ := utf8.DecodeLastRuneInString(m)
		return string(unicode.ToUpper(r))
	})
	r, size := utf8.DecodeRuneInString(out)
	if size == 0 {
		return out
	}
	return string(unicode.ToLower(r)) + out[size:]
}

// Catalogue รายการ test ทั้งหมดจัดกลุ่มตามหมวด (ลำดับตามไฟล์)
type Catalogue struct {
	Categories []Category `json:"categories"`
}

type Category struct {
	Name  string   `json:"name"`
	Tests []string `json:"tests"`
}

// Grouped คืนรูปแบบ {category: [test names]}
func (c *Catalogue) Grouped() map[string][]string {
	out := make(map[string][]string, len(c.Categories))
	for _, cat := range c.Categories {
		out[cat.Name] = append([]string(nil), cat.Tests...)
	}
	return out
}

// Tests แปลงเป็น models.Test (ยังไม่มีตัวแปร) ตามลำดับในไฟล์
func (c *Catalogue) Tests() []models.Test {
	tests := []models.Test{}
	for _, cat := range c.Categories {
		for _, name := range cat.Tests {
			tests = append(tests, models.Test{
				ID:        ToCamelCase(name),
				Name:      name,
				Variables: []models.Variable{},
				Category:  cat.Name,
			})
		}
	}
	return tests
}

// ParseCatalogue อ่าน YAML แบบ mapping หมวด -> รายชื่อ test โดยรักษาลำดับ
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse test catalogue: %w", err)
	}
	if len(root.Content) == 0 {
		return &Catalogue{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("test catalogue must be a mapping of category to tests (line %d)", doc.Line)
	}

	cat := &Catalogue{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		var tests []string
		if err := val.Decode(&tests); err != nil {
			return nil, fmt.Errorf("category %q (line %d): %w", key.Value, key.Line, err)
		}
		clean := make([]string, 0, len(tests))
		for _, t := range tests {
			if t = strings.TrimSpace(t); t != "" {
				clean = append(clean, t)
			}
		}
		cat.Categories = append(cat.Categories, Category{Name: key.Value, Tests: clean})
	}
	return cat, nil
}

func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test catalogue: %w", err)
	}
	return ParseCatalogue(data)
}
