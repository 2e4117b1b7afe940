package mail

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation(t *testing.T) {
	m := NewMailer("orders@example.com")

	body, err := m.render(&OrderConfirmation{
		CustomerName:    "Ada",
		CustomerEmail:   "ada@example.com",
		OrderID:         uuid.MustParse("4fa5b0a2-9ccc-4d5e-8f5c-000000000001"),
		ShippingAddress: "1 Example Way",
		TotalAmount:     42.50,
		Items: []OrderLine{
			{Name: "Mug", Quantity: 2, Price: 8.50},
			{Name: "Lamp <special>", Quantity: 1, Price: 25.50},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Thank you for your order, Ada!")
	assert.Contains(t, body, "#4fa5b0a2-9ccc-4d5e-8f5c-000000000001")
	assert.Contains(t, body, "1 Example Way")
	assert.Contains(t, body, "$42.50")
	// Line subtotal, not unit price.
	assert.Contains(t, body, "$17.00")
	// html/template escapes product names.
	assert.Contains(t, body, "Lamp &lt;special&gt;")
}

func TestNotifyOrderCreated(t *testing.T) {
	m := NewMailer("orders@example.com")

	err := m.NotifyOrderCreated(&OrderConfirmation{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		OrderID:       uuid.New(),
		TotalAmount:   10,
		Items:         []OrderLine{{Name: "Mug", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)
}
