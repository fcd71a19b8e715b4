// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"quokkalist/internal/domain/billing"
	sharedconfig "quokkalist/internal/shared/config"
	"quokkalist/internal/shared/id"
	"quokkalist/internal/shared/logger"
)

// SMTPReceiptSender delivers order receipts over SMTP. When email is
// disabled in config it logs and drops the message instead.
type SMTPReceiptSender struct {
	cfg    *sharedconfig.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPReceiptSender(cfg *sharedconfig.EmailConfig, log logger.Interface) *SMTPReceiptSender {
	return &SMTPReceiptSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log.Named("email"),
	}
}

func (s *SMTPReceiptSender) SendReceipt(ctx context.Context, to string, order *billing.Order) error {
	if !s.cfg.Enabled {
		s.logger.Debugw("email disabled, skipping receipt", "order_id", order.ID())
		return nil
	}

	reference := id.OrderReference(order.ID())

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your promotion receipt #%s", reference))
	msg.SetBody("text/plain", s.receiptBody(order, reference))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send receipt: %w", err)
		}
		s.logger.Infow("receipt sent", "order_id", order.ID(), "reference", reference)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SMTPReceiptSender) receiptBody(order *billing.Order, reference string) string {
	body := fmt.Sprintf(
		"Thanks for your purchase!\n\nOrder reference: %s\nPlan: %s x%d\nAmount: %s\n",
		reference, order.Plan(), order.Quantity(), order.Amount(),
	)
	if start, end := order.WindowStartAt(), order.WindowEndAt(); start != nil && end != nil {
		body += fmt.Sprintf("Promotion active: %s to %s\n",
			start.Format("2006-01-02 15:04 MST"), end.Format("2006-01-02 15:04 MST"))
	}
	if meta := order.PromoMeta(); meta != nil && meta.PromoCode != nil {
		body += fmt.Sprintf("Promo code applied: %s\n", *meta.PromoCode)
	}
	return body
}
