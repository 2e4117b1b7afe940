package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/google/uuid"
)

// OrderConfirmation carries everything the confirmation email needs. It is
// also the payload of order.created queue events.
type OrderConfirmation struct {
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	OrderID         uuid.UUID   `json:"order_id"`
	Items           []OrderLine `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
}

type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

var confirmationTmpl = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html>
<body>
  <h1>Order Confirmation</h1>
  <p>Thank you for your order, {{.CustomerName}}!</p>
  <p><strong>Order ID:</strong> #{{.OrderID}}</p>
  <table>
    <tr><th>Product</th><th>Quantity</th><th>Total</th></tr>
    {{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>${{printf "%.2f" .Subtotal}}</td></tr>
    {{end}}
  </table>
  <p><strong>Shipping Address:</strong> {{.ShippingAddress}}</p>
  <h3>Total Amount: ${{printf "%.2f" .TotalAmount}}</h3>
  <p>We'll send you a shipping confirmation once your order is on its way.</p>
</body>
</html>`))

type lineView struct {
	Name     string
	Quantity int
	Subtotal float64
}

type confirmationView struct {
	CustomerName    string
	OrderID         string
	Items           []lineView
	ShippingAddress string
	TotalAmount     float64
}

// Mailer renders and delivers order confirmation emails. Delivery is a
// structured log entry; a real transport slots in behind the same method.
type Mailer struct {
	from string
}

func NewMailer(from string) *Mailer {
	return &Mailer{from: from}
}

// NotifyOrderCreated renders the confirmation and sends it to the customer.
func (m *Mailer) NotifyOrderCreated(conf *OrderConfirmation) error {
	body, err := m.render(conf)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	slog.Info("order confirmation email sent",
		"from", m.from,
		"to", conf.CustomerEmail,
		"order_id", conf.OrderID,
		"bytes", len(body),
	)
	return nil
}

func (m *Mailer) render(conf *OrderConfirmation) (string, error) {
	view := confirmationView{
		CustomerName:    conf.CustomerName,
		OrderID:         conf.OrderID.String(),
		ShippingAddress: conf.ShippingAddress,
		TotalAmount:     conf.TotalAmount,
	}
	for _, item := range conf.Items {
		view.Items = append(view.Items, lineView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Price * float64(item.Quantity),
		})
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
