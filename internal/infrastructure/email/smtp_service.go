package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"blog-backend/internal/config"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
	SendPostPublishedEmail(ctx context.Context, data PostPublishedEmailData) error
}

// sendFunc có cùng signature với smtp.SendMail, thay được trong test
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr    string
	smtpFrom    string
	auth        smtp.Auth
	frontendURL string
	send        sendFunc
}

// NewSMTPEmailService gửi qua SendGrid SMTP relay: username "apikey", password = API key
// Không có API key thì gửi không auth (mailhog/mailpit khi dev)
func NewSMTPEmailService(cfg config.EmailConfig, frontendURL string) EmailService {
	var auth smtp.Auth
	if cfg.APIKey != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.APIKey, cfg.SMTPHost)
	}
	return &smtpEmailService{
		smtpAddr:    cfg.SMTPHost + ":" + cfg.SMTPPort,
		smtpFrom:    cfg.From,
		auth:        auth,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		send:        smtp.SendMail,
	}
}

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<h1>Welcome, {{.Name}}!</h1><p>Your author account for {{.Email}} is ready. Start writing your first post.</p>`))

	postPublishedTmpl = template.Must(template.New("post_published").Parse(
		`<h1>Hi {{.Name}},</h1><p>Your post <strong>{{.PostTitle}}</strong> is now live.</p><p><a href="{{.Link}}">Read it here</a></p>`))
)

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	body, err := render(welcomeTmpl, data)
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: "Welcome to the blog",
		Body:    body,
		IsHTML:  true,
	})
}

func (s *smtpEmailService) SendPostPublishedEmail(ctx context.Context, data PostPublishedEmailData) error {
	body, err := render(postPublishedTmpl, struct {
		PostPublishedEmailData
		Link string
	}{data, fmt.Sprintf("%s/posts/%s", s.frontendURL, data.PostID)})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Your post \"%s\" has been published", data.PostTitle),
		Body:    body,
		IsHTML:  true,
	})
}

// SendEmail gửi một message đã render
func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.smtpFrom, req)
	if err := s.send(s.smtpAddr, s.auth, s.smtpFrom, req.To, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", strings.Join(req.To, ","), err)
	}
	return nil
}

func buildMessage(from string, req EmailRequest) []byte {
	contentType := "text/plain; charset=UTF-8"
	if req.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(req.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", req.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(req.Body)
	return b.Bytes()
}

func render(t *template.Template, data any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return b.String(), nil
}
