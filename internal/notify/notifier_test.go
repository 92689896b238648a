package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSESNotifierBuildsMessage(t *testing.T) {
	client := &fakeSES{}
	n := newSESNotifier(client, MailerConfig{FromAddress: "events@example.com", FromName: "RSVP"}, discardLogger())

	err := n.SendConfirmation(context.Background(), Confirmation{
		To:        "ada@example.com",
		Name:      "Ada",
		EventName: "Launch <Party>",
		EventDate: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Responses: map[string]string{"name": "Ada", "willJoin": "yes"},
	})
	require.NoError(t, err)
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	require.Equal(t, "RSVP <events@example.com>", aws.ToString(in.Source))
	require.Equal(t, []string{"ada@example.com"}, in.Destination.ToAddresses)
	require.Equal(t, "You're on the list for Launch <Party>", aws.ToString(in.Message.Subject.Data))
	require.Contains(t, aws.ToString(in.Message.Body.Html.Data), "Launch &lt;Party&gt;")
	require.Contains(t, aws.ToString(in.Message.Body.Text.Data), "- Will you join?: yes")
	require.Contains(t, aws.ToString(in.Message.Body.Text.Data), "Sunday, 1 June 2025")
}

func TestSESNotifierWrapsErrors(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	n := newSESNotifier(client, MailerConfig{FromAddress: "events@example.com"}, discardLogger())

	err := n.SendConfirmation(context.Background(), Confirmation{To: "ada@example.com", EventName: "Launch"})
	require.ErrorContains(t, err, "throttled")
}

func TestNewNotifierProviders(t *testing.T) {
	n, err := NewNotifier(MailerConfig{}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &noopNotifier{}, n)
	require.NoError(t, n.SendConfirmation(context.Background(), Confirmation{}))

	n, err = NewNotifier(MailerConfig{Provider: ProviderSES, FromAddress: "a@x.com", SES: SESConfig{Region: "eu-west-1"}}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &sesNotifier{}, n)

	_, err = NewNotifier(MailerConfig{Provider: ProviderSES}, discardLogger())
	require.Error(t, err)

	_, err = NewNotifier(MailerConfig{Provider: "pigeon"}, discardLogger())
	require.Error(t, err)
}
