// Package notifier delivers transactional email through Amazon SES:
// order receipts and confirmation codes.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/productshopwm/shop-backend/internal/order"
)

type EmailSender struct {
	client *ses.Client
	sender string
}

func NewEmailSender(ctx context.Context, region, accessKey, secretKey, sender string) (*EmailSender, error) {
	if sender == "" {
		return nil, fmt.Errorf("sender email address is not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &EmailSender{client: ses.NewFromConfig(awsCfg), sender: sender}, nil
}

func (s *EmailSender) SendOrderReceipt(ctx context.Context, email string, ord order.Order) error {
	var lines strings.Builder
	for _, item := range ord.Items {
		fmt.Fprintf(&lines, "  product #%d x%d @ %s\n", item.ProductID, item.Quantity, item.Price.StringFixed(2))
	}

	subject := fmt.Sprintf("Order #%d confirmed", ord.ID)
	body := fmt.Sprintf(
		"Thank you for your order!\n\nOrder #%d placed on %s.\n\nItems:\n%s\nTotal: %s\n\n"+
			"We will notify you when your order is ready for pickup.\n",
		ord.ID, ord.OrderDate.Format("2006-01-02 15:04"), lines.String(), ord.Total.StringFixed(2),
	)
	return s.send(ctx, email, subject, body)
}

func (s *EmailSender) SendConfirmationCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(
		"Your confirmation code is %s.\n\nThe code expires in 10 minutes and can be used once.\n", code,
	)
	return s.send(ctx, email, "Your confirmation code", body)
}

func (s *EmailSender) send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address is empty")
	}
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(body),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", recipient, err)
	}
	return nil
}
