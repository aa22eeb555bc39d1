// Package docgen renders reimbursement forms and invoices to PDF bytes.
// It is a pure formatting collaborator of the artifact store: bytes in,
// bytes out, no lifecycle state of its own.
package docgen

// Expense is one claimed line on a reimbursement form.
type Expense struct {
	Date        string `json:"date" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Invoice     string `json:"invoice"`
}

// ReimbursementRequest carries everything printed on a reimbursement form.
// Manager fields stay empty until countersigned on paper.
type ReimbursementRequest struct {
	EmployeeName      string    `json:"employee_name" binding:"required"`
	EmployeeID        string    `json:"employee_id" binding:"required"`
	Department        string    `json:"department"`
	Contact           string    `json:"contact"`
	Expenses          []Expense `json:"expenses" binding:"required,min=1,dive"`
	TotalClaimed      string    `json:"total_claimed" binding:"required"`
	AdvanceTaken      string    `json:"advance_taken"`
	NetPayable        string    `json:"net_payable" binding:"required"`
	EmployeeSignature string    `json:"employee_signature"`
	EmployeeDate      string    `json:"employee_date"`
	ManagerSignature  string    `json:"manager_signature"`
	ManagerDate       string    `json:"manager_date"`
}

// LineItem is one billed row on an invoice.
type LineItem struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// InvoiceRequest carries everything printed on an invoice.
type InvoiceRequest struct {
	InvoiceNumber string     `json:"invoice_number" binding:"required"`
	IssueDate     string     `json:"issue_date" binding:"required"`
	DueDate       string     `json:"due_date"`
	SellerName    string     `json:"seller_name" binding:"required"`
	SellerAddress string     `json:"seller_address"`
	BuyerName     string     `json:"buyer_name" binding:"required"`
	BuyerAddress  string     `json:"buyer_address"`
	Items         []LineItem `json:"items" binding:"required,min=1,dive"`
	Subtotal      string     `json:"subtotal" binding:"required"`
	Tax           string     `json:"tax"`
	Total         string     `json:"total" binding:"required"`
	Notes         string     `json:"notes"`
}
