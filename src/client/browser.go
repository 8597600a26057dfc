package client

import (
	"context"
	"log"
	"sync"
	"time"

	"PollSensei-Backend/src/models"
)

// ResponseBrowser ดู validated response ทีละรายการของแบบสอบถามหนึ่ง
type ResponseBrowser struct {
	client   *Client
	surveyID string
	debounce *Debouncer

	mu     sync.Mutex
	query  ResponseQuery
	cursor ResponseCursor
	page   *Page[models.ValidatedResponse]
	onLoad func(*Page[models.ValidatedResponse], error)
}

func NewResponseBrowser(c *Client, surveyID string, pageSize int, debounce time.Duration) *ResponseBrowser {
	if pageSize <= 0 {
		pageSize = models.DefaultPagination().PageSize
	}
	return &ResponseBrowser{
		client:   c,
		surveyID: surveyID,
		debounce: NewDebouncer(debounce),
		cursor:   ResponseCursor{CurrentPage: 1, PageSize: pageSize},
	}
}

// OnLoad callback หลังโหลดหน้าที่เกิดจาก SetPageSize
func (b *ResponseBrowser) OnLoad(fn func(*Page[models.ValidatedResponse], error)) {
	b.mu.Lock()
	b.onLoad = fn
	b.mu.Unlock()
}

// SetQuery เปลี่ยนตัวกรอง ต้อง Load เองเพื่อดึงข้อมูลใหม่
func (b *ResponseBrowser) SetQuery(q ResponseQuery) {
	b.mu.Lock()
	b.query = q
	b.mu.Unlock()
}

// Load ดึงหน้าปัจจุบันแล้วอัปเดต Total ของ cursor
func (b *ResponseBrowser) Load(ctx context.Context) (*Page[models.ValidatedResponse], error) {
	b.mu.Lock()
	q, page, size := b.query, b.cursor.CurrentPage, b.cursor.PageSize
	b.mu.Unlock()

	out, err := b.client.ValidatedResponses(ctx, b.surveyID, q, page, size)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.page = out
	b.cursor.Total = out.Total
	b.mu.Unlock()
	return out, nil
}

// SetPage ไปหน้าที่ n แล้วโหลดทันที
func (b *ResponseBrowser) SetPage(ctx context.Context, n int) (*Page[models.ValidatedResponse], error) {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	b.cursor.CurrentPage = n
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetPageSize แก้ page size แล้ว refetch แบบ debounce ผลลัพธ์ส่งไปที่ OnLoad
func (b *ResponseBrowser) SetPageSize(n int) {
	if n < 1 {
		return
	}
	b.mu.Lock()
	b.cursor.PageSize = n
	b.mu.Unlock()

	b.debounce.Trigger(func() {
		page, err := b.Load(context.Background())
		if err != nil {
			log.Println("⚠️ [responses] refetch after page size change:", err)
		}
		b.mu.Lock()
		fn := b.onLoad
		b.mu.Unlock()
		if fn != nil {
			fn(page, err)
		}
	})
}

func (b *ResponseBrowser) Next() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor.Next()
}

func (b *ResponseBrowser) Prev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor.Prev()
}

// Current response ที่ cursor ชี้อยู่ คืน false ถ้าอยู่นอกหน้าที่โหลดไว้
func (b *ResponseBrowser) Current() (*models.ValidatedResponse, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.page == nil || !b.cursor.InPage(len(b.page.Data)) {
		return nil, false
	}
	r := b.page.Data[b.cursor.Current]
	return &r, true
}

func (b *ResponseBrowser) Cursor() ResponseCursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Close ยกเลิก refetch ที่ค้างอยู่
func (b *ResponseBrowser) Close() { b.debounce.Stop() }
