package utils

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var (
	sesClient  *ses.Client
	sesOnce    sync.Once
	sesInitErr error
)

func mailer() (*ses.Client, error) {
	sesOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			sesInitErr = fmt.Errorf("AWS config load failed: %w", err)
			return
		}
		sesClient = ses.NewFromConfig(cfg)
	})
	if sesInitErr != nil {
		return nil, sesInitErr
	}
	return sesClient, nil
}

// generic SES sender
func sendEmail(to, subject, body string) error {
	client, err := mailer()
	if err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_SENDER_EMAIL")),
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		Log.Errorw("SES send failed", "to", to, "err", err)
	}
	return err
}

func SendMFAEmail(to, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	return sendEmail(to, "Your login verification code", body)
}

func SendResetEmail(to, code string) error {
	body := fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes. If you didn't request this, ignore this email.", code)
	return sendEmail(to, "Password reset code", body)
}
