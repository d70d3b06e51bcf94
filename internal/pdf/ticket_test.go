package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarrido/tienda/internal/models"
	"github.com/mgarrido/tienda/internal/service/orders"
	"github.com/mgarrido/tienda/internal/session"
)

func TestWriteTicket(t *testing.T) {
	ticket := &orders.Ticket{
		Order: models.Order{
			ID:        7,
			UserID:    1,
			Total:     decimal.RequireFromString("49.95"),
			CreatedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		Items: []orders.TicketItem{
			{Nombre: "Widget", Quantity: 5, Precio: decimal.RequireFromString("9.99")},
		},
	}
	user := session.User{ID: 1, Nombre: "Ana", Email: "ana@example.com"}

	var buf bytes.Buffer
	require.NoError(t, WriteTicket(&buf, user, ticket))

	require.Greater(t, buf.Len(), 500)
	assert.Equal(t, "%PDF", buf.String()[:4])
	assert.Equal(t, "%%EOF", string(bytes.TrimSpace(buf.Bytes())[len(bytes.TrimSpace(buf.Bytes()))-5:]))
}

func TestWriteTicketEmptyItems(t *testing.T) {
	ticket := &orders.Ticket{
		Order: models.Order{ID: 1, Total: decimal.Zero, CreatedAt: time.Now()},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTicket(&buf, session.User{Nombre: "Ana"}, ticket))
	assert.Equal(t, "%PDF", buf.String()[:4])
}
