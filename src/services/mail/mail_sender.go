package mail

import (
	"fmt"
	"log"
	"strings"

	"PollSensei-Backend/src/config"

	gomail "gopkg.in/gomail.v2"
)

type MailSender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPSender ต้องตั้ง SMTP_* ครบทุกตัว
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	if missing := cfg.SMTPMissing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing SMTP env: %v", strings.Join(missing, ", "))
	}
	return &SMTPSender{Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser, Pass: cfg.SMTPPass, From: cfg.SMTPFrom}, nil
}

func (s *SMTPSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(m)
}

// LogSender ใช้ตอน dev ที่ยังไม่ได้ตั้ง SMTP: พิมพ์เมลลง log แทนการส่ง
type LogSender struct{}

func (LogSender) Send(to, subject, html string) error {
	log.Printf("📧 [mail] to=%s subject=%q (SMTP not configured, not sent)", to, subject)
	return nil
}

// NewSenderFromConfig คืน SMTPSender ถ้าตั้งค่าครบ ไม่งั้นคืน LogSender
func NewSenderFromConfig(cfg *config.Config) MailSender {
	sender, err := NewSMTPSender(cfg)
	if err != nil {
		log.Println("⚠️", err, "- emails will be logged only")
		return LogSender{}
	}
	return sender
}
