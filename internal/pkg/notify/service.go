// internal/pkg/notify/service.go
package notify

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/your-org/restaurant-backend/internal/config"
)

// Service sends order confirmation emails over SMTP. Sending is always
// best-effort: callers log failures and move on.
type Service struct {
	config *config.Config
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// OrderConfirmation holds the fields rendered into the confirmation email
type OrderConfirmation struct {
	To                string
	CustomerName      string
	OrderNumber       string
	Total             int64 // cents
	EstimatedDelivery time.Time
}

// SendOrderConfirmation emails the customer that their order was received.
// Returns nil without sending when email is disabled or no address is known.
func (s *Service) SendOrderConfirmation(conf *OrderConfirmation) error {
	if !s.config.Email.Enabled || conf.To == "" {
		return nil
	}

	if s.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}

	subject := fmt.Sprintf("Pedido %s recebido - %s", conf.OrderNumber, s.config.App.StoreName)
	body := fmt.Sprintf(
		"Olá %s,\r\n\r\n"+
			"Recebemos seu pedido %s no valor de R$%.2f.\r\n"+
			"Previsão de entrega: %s.\r\n\r\n"+
			"%s",
		conf.CustomerName,
		conf.OrderNumber,
		float64(conf.Total)/100,
		conf.EstimatedDelivery.Local().Format("15:04"),
		s.config.App.StoreName,
	)

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", conf.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.config.Email.SMTPUser, s.config.Email.SMTPPass, s.config.Email.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)

	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{conf.To}, msg.Bytes())
}
