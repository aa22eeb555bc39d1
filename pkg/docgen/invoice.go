package docgen

// RenderInvoice lays out an invoice on A4 and returns the PDF bytes.
func RenderInvoice(req InvoiceRequest) ([]byte, error) {
	pdf := newA4()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Invoice identity
	pdf.SetFont("Helvetica", "", 10)
	idWidths := []float64{37, 56, 37, 56}
	gridRow(pdf, idWidths, []string{"Invoice No:", req.InvoiceNumber, "Issue Date:", req.IssueDate})
	gridRow(pdf, idWidths, []string{"Due Date:", req.DueDate, "", ""})
	pdf.Ln(7)

	// Parties
	heading(pdf, "Billed By / Billed To")
	pdf.SetFont("Helvetica", "", 10)
	partyWidths := []float64{93, 93}
	gridRow(pdf, partyWidths, []string{req.SellerName, req.BuyerName})
	gridRow(pdf, partyWidths, []string{req.SellerAddress, req.BuyerAddress})
	pdf.Ln(7)

	// Line items
	heading(pdf, "Items")
	itemWidths := []float64{86, 25, 35, 40}
	headerRow(pdf, itemWidths, []string{"Description", "Qty", "Unit Price", "Amount"})
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range req.Items {
		cells := []string{item.Description, item.Quantity, item.UnitPrice, item.Amount}
		for i, w := range itemWidths {
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(w, 7, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(7)

	// Totals
	heading(pdf, "Summary")
	pdf.SetFont("Helvetica", "", 10)
	totalWidths := []float64{80, 106}
	gridRow(pdf, totalWidths, []string{"Subtotal:", req.Subtotal})
	gridRow(pdf, totalWidths, []string{"Tax:", req.Tax})
	pdf.SetFont("Helvetica", "B", 10)
	gridRow(pdf, totalWidths, []string{"Total:", req.Total})
	pdf.Ln(7)

	if req.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, req.Notes, "", "L", false)
	}

	return output(pdf)
}
