package mailer

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	"studiotrack_backend/internals/configs"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

/* =======================================================================
   SMTP (gomail), throttled
======================================================================= */

type SMTPMailer struct {
	From    string
	dialer  *gomail.Dialer
	limiter *rate.Limiter
	// swapped in tests
	send func(*gomail.Message) error
}

func NewSMTPMailer(host string, port int, user, password, from string, perMinute int) *SMTPMailer {
	if perMinute <= 0 {
		perMinute = 10
	}
	m := &SMTPMailer{
		From:    from,
		dialer:  gomail.NewDialer(host, port, user, password),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
	m.send = func(msg *gomail.Message) error { return m.dialer.DialAndSend(msg) }
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail throttled: %w", err)
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.send(gm)
}

/* =======================================================================
   Log only (no SMTP configured)
======================================================================= */

type LogMailer struct {
	Log *logrus.Logger
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	m.Log.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Warn("📭 SMTP not configured, mail not sent")
	m.Log.Debug(msg.HTML)
	return nil
}

func New(cfg *configs.Config, log *logrus.Logger) Mailer {
	if !cfg.MailEnabled() {
		return LogMailer{Log: log}
	}
	return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.MailPerMinute)
}

// PasswordResetMessage builds the reset mail pointing at link.
func PasswordResetMessage(to, link string, ttl time.Duration) Message {
	safe := html.EscapeString(link)
	body := fmt.Sprintf(`<p>Bonjour,</p>
<p>Une réinitialisation de mot de passe a été demandée pour votre compte.</p>
<p><a href="%s">Choisir un nouveau mot de passe</a></p>
<p>Ce lien expire dans %d minutes. Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.</p>`,
		safe, int(ttl.Minutes()))
	return Message{To: to, Subject: "Réinitialisation de votre mot de passe", HTML: body}
}
