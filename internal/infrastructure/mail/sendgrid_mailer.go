package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/travelhub/backend/internal/application/notification"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const sendEndpoint = "/v3/mail/send"

// SendGridMailer delivers emails through the SendGrid v3 API
type SendGridMailer struct {
	apiKey string
	host   string
	from   *sgmail.Email
	logger *zap.Logger
}

// Option configures a SendGridMailer
type Option func(*SendGridMailer)

// WithHost points the mailer at another API host
func WithHost(host string) Option {
	return func(m *SendGridMailer) {
		m.host = host
	}
}

// NewSendGridMailer creates a mailer sending as cfg.FromEmail
func NewSendGridMailer(cfg config.MailConfig, logger *zap.Logger, opts ...Option) (*SendGridMailer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from address is empty")
	}
	m := &SendGridMailer{
		apiKey: cfg.APIKey,
		host:   "https://api.sendgrid.com",
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Send delivers msg. Any status of 400 or above is an error.
func (m *SendGridMailer) Send(ctx context.Context, msg notification.Message) error {
	if msg.ToEmail == "" {
		return fmt.Errorf("to address is empty")
	}
	message := sgmail.NewSingleEmail(
		m.from,
		msg.Subject,
		sgmail.NewEmail(msg.ToName, msg.ToEmail),
		msg.Text,
		msg.HTML,
	)

	request := sendgrid.GetRequest(m.apiKey, sendEndpoint, m.host)
	request.Method = rest.Post
	request.Body = sgmail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	m.logger.Debug("mail sent",
		zap.Int("status", response.StatusCode),
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject))
	return nil
}

// LogMailer writes emails to the log instead of sending them.
// Used when mail delivery is disabled.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message envelope
func (m *LogMailer) Send(_ context.Context, msg notification.Message) error {
	m.logger.Info("mail delivery disabled, message dropped",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject))
	return nil
}

// NewMailer returns a SendGrid mailer when mail is enabled, else a LogMailer
func NewMailer(cfg config.MailConfig, logger *zap.Logger) (notification.Mailer, error) {
	if !cfg.Enabled {
		return NewLogMailer(logger), nil
	}
	return NewSendGridMailer(cfg, logger)
}

var (
	_ notification.Mailer = (*SendGridMailer)(nil)
	_ notification.Mailer = (*LogMailer)(nil)
)
