package domain

import "github.com/shopspring/decimal"

// DashboardStats is a read-only projection over the ledger; nothing in it
// is authoritative state.
type DashboardStats struct {
	TotalBooks       int32           `json:"total_books"`
	TotalMembers     int32           `json:"total_members"`
	ActiveLoans      int32           `json:"active_loans"`
	OverdueLoans     int32           `json:"overdue_loans"`
	ReturnedLoans    int32           `json:"returned_loans"`
	OutstandingFines decimal.Decimal `json:"outstanding_fines"`
	TopBooks         []BookLoanCount `json:"top_books"`
}

type BookLoanCount struct {
	BookID    int32  `json:"book_id"`
	Title     string `json:"title"`
	LoanCount int32  `json:"loan_count"`
}
