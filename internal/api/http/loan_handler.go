package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"libris-backend/internal/domain"
	"libris-backend/internal/service"
)

type LoanHandler struct {
	loanSvc         service.LoanService
	defaultPageSize int32
}

func NewLoanHandler(loanSvc service.LoanService, defaultPageSize int32) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc, defaultPageSize: defaultPageSize}
}

type borrowRequest struct {
	BookID   int32 `json:"book_id"`
	Duration int32 `json:"duration"`
}

type loanListResponse struct {
	Loans []domain.Loan `json:"loans"`
	Total int32         `json:"total"`
}

func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}
	if req.BookID < 1 {
		writeError(w, r, fmt.Errorf("%w: book_id is required", domain.ErrInvalidArgument))
		return
	}

	loan, err := h.loanSvc.Borrow(r.Context(), claims.UserID, req.BookID, req.Duration)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

type returnResponse struct {
	Loan       *domain.Loan `json:"loan"`
	FineAmount string       `json:"fine_amount"`
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	loanID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	loan, err := h.loanSvc.Return(r.Context(), claims.UserID, claims.IsAdmin(), loanID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, returnResponse{Loan: loan, FineAmount: loan.FineAmount.StringFixed(2)})
}

func (h *LoanHandler) PayFine(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	loanID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	loan, err := h.loanSvc.PayFine(r.Context(), claims.UserID, claims.IsAdmin(), loanID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) MyLoans(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	loans, err := h.loanSvc.MyLoans(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: int32(len(loans))})
}

func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r, h.defaultPageSize)

	loans, total, err := h.loanSvc.LoanHistory(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: total})
}

func (h *LoanHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r, h.defaultPageSize)
	status := r.URL.Query().Get("status")

	loans, total, err := h.loanSvc.ListLoans(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: total})
}

func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanSvc.ListOverdue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: int32(len(loans))})
}
