package utils

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends transactional mail through SES.
type Mailer struct {
	client *ses.Client
	from   string
}

func NewMailer(ctx context.Context) (*Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for SES: %w", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg), from: os.Getenv("SES_EMAIL")}, nil
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendRecoveryKeyEmail delivers the account recovery key generated at
// registration. The key is not stored in plain text anywhere else.
func (m *Mailer) SendRecoveryKeyEmail(ctx context.Context, to, key string) error {
	subject := "Your EcoTaste recovery key"
	body := fmt.Sprintf(
		"Welcome to EcoTaste!\n\nYour account recovery key is: %s\n\nKeep it somewhere safe, it is shown only once.", key)
	return m.send(ctx, to, subject, body)
}
