// Package notify sends RSVP confirmation emails.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	ProviderNoop = "noop"
	ProviderSES  = "ses"
)

// Confirmation is the data rendered into a confirmation email.
type Confirmation struct {
	To        string
	Name      string
	EventName string
	EventDate time.Time
	Responses map[string]string
}

type Notifier interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}

type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sesAPI is the subset of *ses.Client the notifier calls.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewNotifier picks the mail provider from config. An empty provider means
// noop.
func NewNotifier(config MailerConfig, logger *slog.Logger) (Notifier, error) {
	switch config.Provider {
	case ProviderSES:
		if config.FromAddress == "" {
			return nil, fmt.Errorf("MAIL_FROM_ADDRESS is required for the ses provider")
		}
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SES.AccessKeyID,
					config.SES.SecretAccessKey,
					"",
				),
			),
		}
		return newSESNotifier(ses.NewFromConfig(awsCfg), config, logger), nil
	case ProviderNoop, "":
		return &noopNotifier{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", config.Provider)
	}
}

type sesNotifier struct {
	client      sesAPI
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func newSESNotifier(client sesAPI, config MailerConfig, logger *slog.Logger) *sesNotifier {
	return &sesNotifier{
		client:      client,
		fromAddress: config.FromAddress,
		fromName:    config.FromName,
		logger:      logger,
	}
}

func (s *sesNotifier) SendConfirmation(ctx context.Context, c Confirmation) error {
	subject, html, text, err := render(c)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{c.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(html),
					Charset: aws.String("UTF-8"),
				},
				Text: &types.Content{
					Data:    aws.String(text),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.Info("Confirmation email sent", "provider", ProviderSES, "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) SendConfirmation(ctx context.Context, c Confirmation) error {
	n.logger.Debug("Confirmation email skipped", "provider", ProviderNoop, "event", c.EventName)
	return nil
}
