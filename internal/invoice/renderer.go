package invoice

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/stockroomhq/stockroom-backend/internal/finance"
)

// placeholder stands in for missing or unrenderable text fields.
const placeholder = "N/A"

// Render produces the single-page sale invoice. The layout is fixed: a
// centered title, date and invoice number, a one-row line-item table, the
// total, and the payment method.
func Render(data *finance.InvoiceData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "FACTURA DE VENTA", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.Ln(5)
	pdf.CellFormat(0, 5, fmt.Sprintf("Fecha: %s", data.CreatedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Factura #: %s", invoiceNumber(data.SaleID)), "", 1, "L", false, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 5, "Producto", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, "SKU", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, "Cantidad", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, "Precio Unit.", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, "Total", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 5, sanitize(data.ItemName), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, sanitize(data.SKU), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, strconv.Itoa(data.Quantity), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, fmt.Sprintf("$%.2f", data.Price), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, fmt.Sprintf("$%.2f", data.Total), "1", 1, "L", false, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 5, "TOTAL:", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, fmt.Sprintf("$%.2f", data.Total), "1", 1, "L", false, 0, "")

	pdf.Ln(5)
	pdf.CellFormat(0, 5, fmt.Sprintf("Metodo de Pago: %s", sanitize(data.PaymentMethod)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename names the downloaded invoice after the truncated sale id.
func Filename(saleID string) string {
	return fmt.Sprintf("factura_%s.pdf", invoiceNumber(saleID))
}

func invoiceNumber(saleID string) string {
	if len(saleID) > 8 {
		return saleID[:8]
	}
	return saleID
}

// sanitize keeps the text renderable with the built-in cp1252 fonts.
// Characters outside latin-1 become '?', and an empty result falls back to
// the placeholder.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r >= 0x20 && r <= 0xFF {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	if b.Len() == 0 {
		return placeholder
	}
	return b.String()
}
