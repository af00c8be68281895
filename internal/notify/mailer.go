package notify

import (
	"fmt"

	"app/internal/config"
	"app/internal/domain/model"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer sends the order confirmation over SMTP. Dispatch is best-effort:
// callers log failures but never fail the order, and nothing is retried.
type Mailer struct {
	dialer *gomail.Dialer
}

// New returns nil when no SMTP host is configured; a nil Mailer disables
// dispatch entirely.
func New(cfg config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		log.Info().Msg("SMTP not configured, confirmation mails disabled")
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (m *Mailer) SendOrderConfirmation(order model.Order, brand config.ShopContext) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", brand.MailFrom, brand.BrandName)
	msg.SetHeader("To", order.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("%s – Bestellbestätigung %s", brand.BrandName, order.OrderNumber))
	msg.SetBody("text/plain", confirmationBody(order, brand))

	return m.dialer.DialAndSend(msg)
}

func confirmationBody(order model.Order, brand config.ShopContext) string {
	return fmt.Sprintf(
		"%s\n\nOrder %s\n\n%s: %d L à %.4f %s\nBase price: %.2f\nDelivery fee: %.2f\nDiscount: %.2f\nTotal: %.2f %s\n\nDelivery to:\n%s %s\n%s\n%s %s\n",
		brand.BrandName,
		order.OrderNumber,
		order.Product, order.Liters, order.PricePerLiter, brand.Currency,
		order.BasePrice,
		order.DeliveryFee,
		order.Discount,
		order.TotalAmount, brand.Currency,
		order.DeliveryFirstName, order.DeliveryLastName,
		order.DeliveryStreet,
		order.DeliveryPostcode, order.DeliveryCity,
	)
}
