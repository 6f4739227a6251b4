package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

type SecretGetter interface {
	Get(ctx context.Context, name string) (string, error)
}

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Account is the mailbox alerts are sent from.
type Account struct {
	Username string
	Password string
}

type Mailer interface {
	Send(ctx context.Context, account Account, msg Message) error
}

// SMTP sends mail through an authenticated STARTTLS relay.
type SMTP struct {
	Host    string
	Port    int
	Timeout time.Duration
}

func (s SMTP) Send(ctx context.Context, account Account, m Message) error {
	msg, err := buildMessage(m)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(account.Username),
		mail.WithPassword(account.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.Timeout))
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", m.To, err)
	}

	return nil
}

func buildMessage(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}

	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	return msg, nil
}

// Alert describes a failed run.
type Alert struct {
	Recipient  string
	ClientName string
	Period     string
	Status     string
	Message    string
	At         time.Time
}

type Options struct {
	SenderSecret   string
	PasswordSecret string
}

// Notifier emails failure alerts to client contacts.
type Notifier struct {
	secrets SecretGetter
	mailer  Mailer
	opts    Options
}

func New(secrets SecretGetter, mailer Mailer, opts Options) *Notifier {
	return &Notifier{secrets: secrets, mailer: mailer, opts: opts}
}

// Send emails a. A missing recipient or missing sender credentials skip the
// alert without error.
func (n *Notifier) Send(ctx context.Context, a Alert) error {
	if a.Recipient == "" {
		slog.Warn("skipping alert: no recipient address", "client", a.ClientName, "period", a.Period)
		return nil
	}

	sender, err := n.secrets.Get(ctx, n.opts.SenderSecret)
	if err != nil {
		slog.Warn("skipping alert: sender credentials missing", "client", a.ClientName, "error", err)
		return nil
	}

	password, err := n.secrets.Get(ctx, n.opts.PasswordSecret)
	if err != nil {
		slog.Warn("skipping alert: sender credentials missing", "client", a.ClientName, "error", err)
		return nil
	}

	msg := Message{
		From:    sender,
		To:      a.Recipient,
		Subject: Subject(a),
		Body:    Body(a),
	}

	if err := n.mailer.Send(ctx, Account{Username: sender, Password: password}, msg); err != nil {
		return err
	}

	slog.Info("alert sent", "client", a.ClientName, "period", a.Period, "to", a.Recipient)

	return nil
}

func Subject(a Alert) string {
	return fmt.Sprintf("❌ Échec Import PayFlow : %s (%s)", a.ClientName, a.Period)
}

func Body(a Alert) string {
	return fmt.Sprintf(`Bonjour,

Le transfert automatique des écritures de paie a échoué pour le client : %s.

Période : %s
Date : %s
Statut : %s

Raison de l'erreur :
--------------------------------------------------
%s
--------------------------------------------------

Merci de vérifier la configuration dans l'interface PayFlow puis de tenter un import manuel.

Cordialement,
L'équipe PayFlow
`, a.ClientName, a.Period, a.At.Format("02/01/2006 15:04"), a.Status, a.Message)
}
