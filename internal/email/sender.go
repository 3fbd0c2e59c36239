package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail over SMTP.
type Sender struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	tmpl    *template.Template
}

func NewSender(host string, port int, username, password, from, baseURL, templateDir string) (*Sender, error) {
	tmpl, err := template.ParseGlob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Sender{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		baseURL: baseURL,
		tmpl:    tmpl,
	}, nil
}

func (s *Sender) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, token)

	var buf bytes.Buffer
	err := s.tmpl.ExecuteTemplate(&buf, "verification_email.html", map[string]string{
		"Email": to,
		"Link":  link,
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify Your Email Address")
	m.SetBody("text/html", buf.String())

	return s.dialer.DialAndSend(m)
}
