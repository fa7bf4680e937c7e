// Package smtpmail sends templated HTML e-mails over SMTP.
package smtpmail

import (
	"artisan/pkg/messaging"
	"artisan/pkg/serrors"
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templates embed.FS

// Sender delivers prepared messages. *mail.Client implements it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Options configures the SMTP connection and the branding of the template.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
	SiteURL  string
}

// Mailer renders the general message template and hands it to a Sender.
type Mailer struct {
	sender  Sender
	tmpl    *template.Template
	from    string
	appName string
	siteURL string
	now     func() time.Time
}

var _ messaging.Mailer = (*Mailer)(nil)

// New connects the mailer to an SMTP server described by opts.
func New(opts Options) (*Mailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not create smtp client: %w", err)
	}

	return NewWithSender(client, opts)
}

// NewWithSender builds a Mailer on top of an existing Sender.
func NewWithSender(sender Sender, opts Options) (*Mailer, error) {
	tmpl, err := template.ParseFS(templates, "templates/general.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse mail template: %w", err)
	}

	return &Mailer{
		sender:  sender,
		tmpl:    tmpl,
		from:    opts.From,
		appName: opts.AppName,
		siteURL: opts.SiteURL,
		now:     time.Now,
	}, nil
}

// Render returns the HTML body for m.
func (s *Mailer) Render(m messaging.Mail) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, struct {
		messaging.Mail
		AppName string
		SiteURL string
		Year    int
	}{
		Mail:    m,
		AppName: s.appName,
		SiteURL: s.siteURL,
		Year:    s.now().Year(),
	}); err != nil {
		return "", fmt.Errorf("could not render mail: %w", err)
	}

	return buf.String(), nil
}

// Send renders and delivers m. Invalid addresses are reported as bad requests.
func (s *Mailer) Send(ctx context.Context, m messaging.Mail) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid sender address")
	}
	if err := msg.To(m.To); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid recipient address")
	}
	msg.Subject(m.Subject)

	body, err := s.Render(m)
	if err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send mail")
	}

	return nil
}
