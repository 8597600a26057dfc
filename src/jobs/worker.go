package jobs

import (
	"context"
	"log"

	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/services/mail"

	"github.com/hibiken/asynq"
)

// Deps สิ่งที่ handler ของแต่ละ package ต้องใช้
type Deps struct {
	Reports analysis.ReportRepository
	Runner  analysis.Runner
	Mailer  mail.MailSender
}

// NewMux ลงทะเบียน handler ทั้งหมดของ worker
func NewMux(d Deps) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	analysis.RegisterAnalysisHandlers(mux, d.Reports, d.Runner)
	auth.RegisterAuthHandlers(mux, d.Mailer)
	return mux
}

// NewServer worker ที่อ่านงานจาก redis เดียวกับ Queue
func NewServer(redisURI string, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 5
	}
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{DefaultQueue: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Printf("❌ task %s failed: %v", task.Type(), err)
			}),
		},
	)
}

// StartWorker เริ่ม worker แบบไม่ block (เรียก Shutdown ตอนปิดแอป)
func StartWorker(redisURI string, concurrency int, d Deps) (*asynq.Server, error) {
	srv := NewServer(redisURI, concurrency)
	if err := srv.Start(NewMux(d)); err != nil {
		return nil, err
	}
	log.Println("✅ Asynq worker started")
	return srv, nil
}
