// Package pdf renders purchase tickets. Output streams straight into
// the caller's writer; no temporary files.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/mgarrido/tienda/internal/service/orders"
	"github.com/mgarrido/tienda/internal/session"
)

// WriteTicket writes the receipt for one order. The layout mirrors
// the HTML ticket: header with customer data, then one line per item.
func WriteTicket(w io.Writer, user session.User, t *orders.Ticket) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr("Ticket de compra"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Cliente: %s", user.Nombre)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Correo: %s", user.Email)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Fecha: %s", t.Order.CreatedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.CellFormat(0, 6, tr(fmt.Sprintf("Número de orden: %d", t.Order.ID)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Total: $%s", t.Order.Total.StringFixed(2))), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr("Detalle de productos:"), "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 12)
	for _, item := range t.Items {
		line := fmt.Sprintf("%s - Cant: %d x $%s = $%s",
			item.Nombre, item.Quantity, item.Precio.StringFixed(2), item.LineTotal().StringFixed(2))
		doc.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	return doc.Output(w)
}
