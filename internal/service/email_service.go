package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"kartpay/internal/config"
	"kartpay/internal/model"

	"github.com/rs/zerolog"
)

// smtpEmailSender implements EmailSender over plain SMTP. Sends are
// best-effort: a failed or disabled send is logged and audited but never
// surfaces to the checkout flow.
type smtpEmailSender struct {
	cfg    config.EmailConfig
	audit  AuditService
	logger zerolog.Logger

	// Injection point for tests.
	send func(addr, from string, to []string, msg []byte) error
}

// NewEmailSender creates a new SMTP-backed email sender.
func NewEmailSender(cfg config.EmailConfig, audit AuditService, logger zerolog.Logger) EmailSender {
	return &smtpEmailSender{
		cfg:    cfg,
		audit:  audit,
		logger: logger.With().Str("service", "email").Logger(),
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

// SendPaymentApproved notifies the customer of a confirmed order.
func (s *smtpEmailSender) SendPaymentApproved(ctx context.Context, customerEmail, customerName, orderID, amount string) {
	subject := fmt.Sprintf("Order #%s confirmed", orderID)
	body := fmt.Sprintf(`<html><body>
<h2>Thank you for your purchase, %s!</h2>
<p>Your payment of <strong>$%s</strong> for order <strong>#%s</strong> was approved.</p>
<p>We will let you know as soon as your order ships.</p>
</body></html>`, customerName, amount, orderID)

	s.deliver(ctx, customerEmail, orderID, subject, body)
}

// SendPaymentFailed notifies the customer of a cancelled order.
func (s *smtpEmailSender) SendPaymentFailed(ctx context.Context, customerEmail, customerName, orderID, failureReason string) {
	subject := fmt.Sprintf("Payment failed for order #%s", orderID)
	body := fmt.Sprintf(`<html><body>
<h2>We could not process your payment, %s</h2>
<p>Your payment for order <strong>#%s</strong> was declined and the order has been cancelled.</p>
<p>Reason: %s</p>
<p>Please verify your payment details and try again.</p>
</body></html>`, customerName, orderID, failureReason)

	s.deliver(ctx, customerEmail, orderID, subject, body)
}

func (s *smtpEmailSender) deliver(ctx context.Context, recipient, orderID, subject, body string) {
	if !s.cfg.Enabled {
		s.logger.Debug().Str("recipient", recipient).Msg("email notifications disabled, skipping send")
		return
	}

	msg := buildMessage(s.cfg.FromName, s.cfg.FromAddress, recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	if err := s.send(addr, s.cfg.FromAddress, []string{recipient}, msg); err != nil {
		s.logger.Error().
			Err(err).
			Str("recipient", recipient).
			Str("subject", subject).
			Msg("failed to send email")
		s.audit.LogFailure(ctx, string(model.EventEmailFailed), "ORDER", orderID, "",
			fmt.Sprintf("Failed to send email '%s'", subject), err.Error(), nil)
		return
	}

	s.logger.Info().Str("recipient", recipient).Str("subject", subject).Msg("email sent")
	s.audit.LogSuccess(ctx, string(model.EventEmailSent), "ORDER", orderID, "",
		fmt.Sprintf("Email '%s' sent", subject), nil)
}

func buildMessage(fromName, fromAddress, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, fromAddress)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
