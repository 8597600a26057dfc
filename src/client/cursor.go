package client

import (
	"sync"
	"time"
)

// DefaultDebounce ระยะหน่วงก่อน refetch เมื่อแก้ page size
const DefaultDebounce = 500 * time.Millisecond

// ResponseCursor ตำแหน่งของ response ที่กำลังดูอยู่
//
// Current เป็น index ในหน้าที่โหลดมา แต่ขอบเขตของ Next ใช้ Total จาก server
// ดังนั้น Current อาจเลยขอบหน้าที่โหลดไว้ได้ ให้เช็คด้วย InPage
type ResponseCursor struct {
	CurrentPage int
	PageSize    int
	Current     int
	Total       int64
}

// Next เลื่อนไปข้างหน้าเมื่อ Current < Total-1
func (c *ResponseCursor) Next() bool {
	if int64(c.Current) < c.Total-1 {
		c.Current++
		return true
	}
	return false
}

// Prev ถอยกลับเมื่อ Current > 0
func (c *ResponseCursor) Prev() bool {
	if c.Current > 0 {
		c.Current--
		return true
	}
	return false
}

// InPage Current อยู่ในข้อมูล loaded รายการที่โหลดมาหรือไม่
func (c *ResponseCursor) InPage(loaded int) bool {
	return c.Current >= 0 && c.Current < loaded
}

// Position ลำดับที่แสดงผู้ใช้ (เริ่มที่ 1)
func (c *ResponseCursor) Position() int { return c.Current + 1 }

// Debouncer เรียก fn ครั้งเดียวหลังจากไม่มี Trigger ใหม่ภายใน delay
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop ยกเลิกงานที่ค้างอยู่ คืน true ถ้ามีงานถูกยกเลิก
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
