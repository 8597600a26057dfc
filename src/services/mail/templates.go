package mail

import (
	"bytes"
	_ "embed"
	"html/template"
)

type OTPEmailData struct {
	Name      string
	OTP       string
	ExpiresIn string
}

//go:embed otp_email.html
var otpEmailHTML string

var otpEmailTmpl = template.Must(template.New("otp").Parse(otpEmailHTML))

func RenderOTPEmailHTML(data OTPEmailData) (string, error) {
	var buf bytes.Buffer
	if err := otpEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
