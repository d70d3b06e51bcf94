package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutOneOrder(t *testing.T, env *testEnv) string {
	t.Helper()
	env.postForm("/cart/add/1", url.Values{"quantity": {"2"}})
	rec := env.postForm("/cart/checkout", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	return rec.Header().Get(echo.HeaderLocation)
}

func TestTicketHTML(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(1, "Widget", "9.99")
	env.registerAndLogin("Ana", "ana@example.com", "secreta")
	ticketURL := checkoutOneOrder(t, env)

	rec := env.get(ticketURL)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ticket de compra")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "Widget - Cant: 2 x $9.99 = $19.98")
	assert.Contains(t, body, "19.98")
}

func TestTicketOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(1, "Widget", "9.99")

	env.registerAndLogin("Ana", "ana@example.com", "secreta")
	ticketURL := checkoutOneOrder(t, env)
	env.get("/logout")

	env.registerAndLogin("Eva", "eva@example.com", "secreta")
	rec := env.get(ticketURL)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Orden no encontrada")
	assert.NotContains(t, rec.Body.String(), "Widget")

	rec = env.get(ticketURL + "/pdf")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTicketBadIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin("Ana", "ana@example.com", "secreta")

	for _, target := range []string{"/orders/abc/ticket", "/orders/999/ticket"} {
		rec := env.get(target)
		require.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestTicketPDFStreamsAttachment(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(1, "Widget", "9.99")
	env.registerAndLogin("Ana", "ana@example.com", "secreta")
	ticketURL := checkoutOneOrder(t, env)

	rec := env.get(ticketURL + "/pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="ticket_1.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	require.True(t, rec.Body.Len() > 500, "pdf body too small: %d bytes", rec.Body.Len())
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestHistoryListsOwnOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(1, "Widget", "9.99")
	env.registerAndLogin("Ana", "ana@example.com", "secreta")

	checkoutOneOrder(t, env)
	checkoutOneOrder(t, env)

	rec := env.get("/orders/history")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "#1")
	assert.Contains(t, body, "#2")
	assert.Contains(t, body, "/orders/1/ticket")
	assert.Contains(t, body, "/orders/2/ticket/pdf")
}
