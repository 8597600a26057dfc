package qrcode

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 128
	MaxSize     = 1024
)

// ClampSize ขนาดภาพที่ไม่อยู่ในช่วงจะถูกปรับ (0 = ค่า default)
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// SharePNG สร้าง QR Code ของลิงก์แบบสอบถามเป็น PNG
func SharePNG(link string, size int) ([]byte, error) {
	return qrcode.Encode(strings.TrimSpace(link), qrcode.Medium, ClampSize(size))
}
