// Package testutil จับเวลาและสรุปผล subtest ของชุดทดสอบ
package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// CaseResult ผลของ subtest หนึ่งตัว
type CaseResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
	TooSlow  bool
}

// Suite รวมผลของ subtest ที่รันผ่าน Run
type Suite struct {
	Name string

	mu    sync.Mutex
	cases []CaseResult
}

func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

// Run รัน fn เป็น subtest ถ้า budget > 0 และใช้เวลาเกิน จะถือว่า fail
func (s *Suite) Run(t *testing.T, name string, budget time.Duration, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		start := time.Now()
		defer func() {
			took := time.Since(start)
			slow := budget > 0 && took > budget
			if slow {
				t.Errorf("❌ %s took %v, budget %v", name, took, budget)
			}
			s.record(CaseResult{Name: name, Duration: took, Passed: !t.Failed(), TooSlow: slow})
		}()
		fn(t)
	})
}

func (s *Suite) record(r CaseResult) {
	s.mu.Lock()
	s.cases = append(s.cases, r)
	s.mu.Unlock()
}

// Results สำเนาของผลที่บันทึกไว้
func (s *Suite) Results() []CaseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CaseResult(nil), s.cases...)
}

// Summary ข้อความสรุปผล (ว่างถ้ายังไม่มี subtest)
func (s *Suite) Summary() string {
	results := s.Results()
	if len(results) == 0 {
		return ""
	}

	var (
		b      strings.Builder
		passed int
		total  time.Duration
	)
	for _, r := range results {
		total += r.Duration
		if r.Passed {
			passed++
		}
	}
	fmt.Fprintf(&b, "📊 %s: %d/%d passed in %v\n", s.Name, passed, len(results), total)
	for _, r := range results {
		mark := "✅"
		if !r.Passed {
			mark = "❌"
		}
		fmt.Fprintf(&b, "   %s %s (%v)\n", mark, r.Name, r.Duration)
	}
	return b.String()
}

// Report เขียน Summary ลง log ของ test ใช้กับ defer
func (s *Suite) Report(t *testing.T) {
	if out := s.Summary(); out != "" {
		t.Log("\n" + out)
	}
}
