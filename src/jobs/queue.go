package jobs

import (
	"context"
	"errors"
	"log"

	"github.com/hibiken/asynq"
)

const DefaultQueue = "default"

// Queue ห่อ asynq.Client กับ Inspector ไว้ด้วยกัน
type Queue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func NewQueue(redisURI string) *Queue {
	opt := asynq.RedisClientOpt{Addr: redisURI}
	return &Queue{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
	}
}

// EnqueueContext ถ้า task id ซ้ำกับงานที่ยังค้าง จะลบงานเดิมแล้ว enqueue ใหม่
func (q *Queue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		return info, err
	}

	taskID := taskIDOf(opts)
	if taskID == "" {
		return nil, err
	}
	if derr := q.DeleteTask(queueOf(opts), taskID); derr != nil {
		return nil, derr
	}
	return q.client.EnqueueContext(ctx, task, opts...)
}

// DeleteTask ลบ task เดิม (ไม่มีก็ไม่ถือว่า error)
func (q *Queue) DeleteTask(queue, taskID string) error {
	err := q.inspector.DeleteTask(queue, taskID)
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		log.Println("⚠️ Failed to delete old task "+taskID+":", err)
		return err
	}
	if err == nil {
		log.Println("🗑️ Deleted previous task:", taskID)
	}
	return nil
}

// Stats สรุปจำนวนงานในคิว
func (q *Queue) Stats(queue string) (*QueueStats, error) {
	info, err := q.inspector.GetQueueInfo(queue)
	if err != nil {
		return nil, err
	}
	return &QueueStats{
		Queue:     info.Queue,
		Pending:   info.Pending,
		Active:    info.Active,
		Scheduled: info.Scheduled,
		Retry:     info.Retry,
		Archived:  info.Archived,
		Processed: info.ProcessedTotal,
		Failed:    info.FailedTotal,
		Paused:    info.Paused,
	}, nil
}

func (q *Queue) Close() {
	if err := q.client.Close(); err != nil {
		log.Println("⚠️ close asynq client:", err)
	}
	if err := q.inspector.Close(); err != nil {
		log.Println("⚠️ close asynq inspector:", err)
	}
}

type QueueStats struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Paused    bool   `json:"paused"`
}

func taskIDOf(opts []asynq.Option) string {
	for _, o := range opts {
		if o.Type() == asynq.TaskIDOpt {
			if id, ok := o.Value().(string); ok {
				return id
			}
		}
	}
	return ""
}

func queueOf(opts []asynq.Option) string {
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			if name, ok := o.Value().(string); ok {
				return name
			}
		}
	}
	return DefaultQueue
}
