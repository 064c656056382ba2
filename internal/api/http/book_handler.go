package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"libris-backend/internal/domain"
	"libris-backend/internal/service"
)

type BookHandler struct {
	bookSvc         service.BookService
	defaultPageSize int32
}

func NewBookHandler(bookSvc service.BookService, defaultPageSize int32) *BookHandler {
	return &BookHandler{bookSvc: bookSvc, defaultPageSize: defaultPageSize}
}

type bookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	CategoryID      *int32 `json:"category_id"`
	TotalCopies     int32  `json:"total_copies"`
	PublicationYear *int32 `json:"publication_year"`
	Description     string `json:"description"`
}

type bookListResponse struct {
	Books []domain.Book `json:"books"`
	Total int32         `json:"total"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	book := &domain.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		CategoryID:      req.CategoryID,
		TotalCopies:     req.TotalCopies,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
	}
	if err := h.bookSvc.AddBook(r.Context(), book); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	book, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	book := &domain.Book{
		ID:              id,
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		CategoryID:      req.CategoryID,
		TotalCopies:     req.TotalCopies,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
	}
	if err := h.bookSvc.UpdateBook(r.Context(), book); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.bookSvc.RemoveBook(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r, h.defaultPageSize)
	query := r.URL.Query().Get("q")

	var categoryID int32
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid category_id", domain.ErrInvalidArgument))
			return
		}
		categoryID = int32(v)
	}

	books, total, err := h.bookSvc.SearchBooks(r.Context(), query, categoryID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookListResponse{Books: books, Total: total})
}
