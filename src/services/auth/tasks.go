package auth

import (
	"context"
	"encoding/json"
	"strings"

	"PollSensei-Backend/src/services/mail"

	"github.com/hibiken/asynq"
)

const TypeSendOTP = "auth:send-otp"

type SendOTPPayload struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	OTP       string `json:"otp"`
	ExpiresIn string `json:"expiresIn"`
}

func (p *SendOTPPayload) Normalize() {
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
}

// OTPTaskID id ของงานส่ง OTP ของอีเมลนี้
func OTPTaskID(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

func NewSendOTPTask(p SendOTPPayload) (*asynq.Task, error) {
	p.Normalize()
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendOTP, b, asynq.MaxRetry(5)), nil
}

func sendOTP(sender mail.MailSender, p SendOTPPayload) error {
	html, err := mail.RenderOTPEmailHTML(mail.OTPEmailData{Name: p.Name, OTP: p.OTP, ExpiresIn: p.ExpiresIn})
	if err != nil {
		return err
	}
	return sender.Send(p.Email, "Verify your PollSensei account", html)
}

func HandleSendOTPTask(sender mail.MailSender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p SendOTPPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}
		return sendOTP(sender, p)
	}
}

// RegisterAuthHandlers ลงทะเบียน handler ของ package auth
func RegisterAuthHandlers(mux *asynq.ServeMux, sender mail.MailSender) {
	mux.HandleFunc(TypeSendOTP, HandleSendOTPTask(sender))
}
