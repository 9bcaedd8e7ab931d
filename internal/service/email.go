package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends receipts through the SendGrid v3 mail API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *SendGridMailer) SendReceipt(ctx context.Context, to, donorName string, rcpt domain.Receipt, pdf io.Reader) error {
	data, err := io.ReadAll(pdf)
	if err != nil {
		return fmt.Errorf("read receipt pdf: %w", err)
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail(donorName, to)
	subject := fmt.Sprintf("Your donation receipt %s", rcpt.SerialNumber)
	plain, htmlBody := receiptBody(donorName, rcpt)
	message := mail.NewSingleEmail(from, subject, recipient, plain, htmlBody)

	att := mail.NewAttachment()
	att.SetContent(base64.StdEncoding.EncodeToString(data))
	att.SetType(receiptContentType)
	att.SetFilename(rcpt.SerialNumber + ".pdf")
	att.SetDisposition("attachment")
	message.AddAttachment(att)

	logger.ExternalServiceCall("sendgrid", "SendReceipt", "receiptID", rcpt.ID)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "SendReceipt", err, "receiptID", rcpt.ID)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "SendReceipt", err, "receiptID", rcpt.ID)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "SendReceipt", nil, "receiptID", rcpt.ID, "status", resp.StatusCode)
	return nil
}

func receiptBody(donorName string, rcpt domain.Receipt) (string, string) {
	amount := rcpt.Amount.StringFixed(2)
	plain := fmt.Sprintf("Dear %s,\n\nThank you for your donation of %s on %s.\n"+
		"Your receipt %s is attached.\n\nWith gratitude,\nThe CentsWise Team",
		donorName, amount, rcpt.Date, rcpt.SerialNumber)
	htmlBody := fmt.Sprintf(`<html>
	<body>
		<p>Dear %s,</p>
		<p>Thank you for your donation of <strong>%s</strong> on %s.</p>
		<p>Your receipt <strong>%s</strong> is attached.</p>
		<p>With gratitude,<br>The CentsWise Team</p>
	</body>
</html>`, html.EscapeString(donorName), amount, html.EscapeString(rcpt.Date), html.EscapeString(rcpt.SerialNumber))
	return plain, htmlBody
}
