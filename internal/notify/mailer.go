// Package notify delivers transactional mail and the staff purchase feed.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// MailConfig holds the SMTP settings
type MailConfig struct {
	Host           string
	Port           int
	User           string
	Pass           string
	From           string
	FrontClientURL string
	Timeout        time.Duration
}

// Sender delivers built messages; *mail.Client implements it
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer renders and sends transactional mail
type Mailer struct {
	sender    Sender
	from      string
	frontURL  string
	templates map[domain.MailType]*template.Template
}

// templateData is what every mail template receives
type templateData struct {
	Username  string
	ActionURL string
	Data      map[string]string
}

// NewSMTPSender creates the go-mail client. Port 465 uses implicit TLS,
// any other port requires STARTTLS.
func NewSMTPSender(cfg MailConfig) (*mail.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
	}
	if cfg.Port == mail.DefaultPortSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client, nil
}

// NewMailer parses the embedded templates. A nil sender disables delivery.
func NewMailer(sender Sender, cfg MailConfig) (*Mailer, error) {
	templates := make(map[domain.MailType]*template.Template, len(templateFiles))
	for mailType, file := range templateFiles {
		tpl, err := template.ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		templates[mailType] = tpl.Lookup(strings.TrimPrefix(file, "templates/"))
	}
	return &Mailer{
		sender:    sender,
		from:      cfg.From,
		frontURL:  strings.TrimRight(cfg.FrontClientURL, "/"),
		templates: templates,
	}, nil
}

// Render builds the subject and HTML body of a mail
func (m *Mailer) Render(msg domain.Mail) (string, string, error) {
	tpl, ok := m.templates[msg.Type]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnknownMailType, msg.Type)
	}
	var buf bytes.Buffer
	err := tpl.Execute(&buf, templateData{
		Username:  msg.Username,
		ActionURL: m.frontURL + ProfilePath,
		Data:      msg.Data,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render %s mail: %w", msg.Type, err)
	}
	return subjects[msg.Type], buf.String(), nil
}

// Send renders and delivers one mail
func (m *Mailer) Send(ctx context.Context, msg domain.Mail) error {
	subject, body, err := m.Render(msg)
	if err != nil {
		return err
	}
	if m.sender == nil {
		logger.FromContext(ctx).Debug(LogMsgMailDisabled, "type", msg.Type)
		return nil
	}

	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("%w: invalid recipient address", domain.ErrInvalidInput)
	}
	out.Subject(subject)
	out.SetBodyString(mail.TypeTextHTML, body)

	if err := m.sender.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("%w: smtp: %v", domain.ErrUpstreamFailure, err)
	}
	logger.FromContext(ctx).Info(LogMsgMailSent, "type", msg.Type)
	return nil
}
