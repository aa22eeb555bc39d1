package docgen

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderReimbursement lays out a reimbursement request form on A4 and
// returns the PDF bytes.
func RenderReimbursement(req ReimbursementRequest) ([]byte, error) {
	pdf := newA4()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reimbursement Request Form", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Employee info grid
	pdf.SetFont("Helvetica", "", 10)
	infoWidths := []float64{37, 56, 37, 56}
	gridRow(pdf, infoWidths, []string{"Employee Name:", req.EmployeeName, "Employee ID:", req.EmployeeID})
	gridRow(pdf, infoWidths, []string{"Department:", req.Department, "Contact:", req.Contact})
	pdf.Ln(7)

	// Expense table
	heading(pdf, "Expense Details")
	expenseWidths := []float64{26, 36, 26, 55, 43}
	headerRow(pdf, expenseWidths, []string{"Date", "Category", "Amount", "Description", "Invoice"})
	pdf.SetFont("Helvetica", "", 9)
	for _, e := range req.Expenses {
		cells := []string{e.Date, e.Category, e.Amount, e.Description, e.Invoice}
		for i, w := range expenseWidths {
			align := "L"
			if i == 2 {
				align = "R"
			}
			pdf.CellFormat(w, 7, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(7)

	// Summary
	heading(pdf, "Summary")
	pdf.SetFont("Helvetica", "", 10)
	summaryWidths := []float64{80, 106}
	gridRow(pdf, summaryWidths, []string{"Total Claimed:", req.TotalClaimed})
	gridRow(pdf, summaryWidths, []string{"Advance Taken:", req.AdvanceTaken})
	gridRow(pdf, summaryWidths, []string{"Net Payable:", req.NetPayable})
	pdf.Ln(7)

	// Approvals
	heading(pdf, "Approvals")
	pdf.SetFont("Helvetica", "", 10)
	approvalWidths := []float64{57, 67, 22, 40}
	gridRow(pdf, approvalWidths, []string{"Employee Signature:", req.EmployeeSignature, "Date:", req.EmployeeDate})
	gridRow(pdf, approvalWidths, []string{"Manager Signature:", req.ManagerSignature, "Date:", req.ManagerDate})
	pdf.Ln(7)

	// Footer note
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Note: Please attach original invoices/receipts for all expenses claimed.", "", "L", false)

	return output(pdf)
}

func newA4() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	return pdf
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

// gridRow draws one bordered row of label/value cells.
func gridRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, w := range widths {
		pdf.CellFormat(w, 7, cells[i], "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// headerRow draws a shaded table header.
func headerRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	for i, w := range widths {
		pdf.CellFormat(w, 7, cells[i], "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
