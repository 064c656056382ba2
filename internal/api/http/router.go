package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Book     *BookHandler
	Category *CategoryHandler
	Loan     *LoanHandler
	Stats    *StatsHandler
}

// NewRouter wires all routes. Three tiers: public (auth), authenticated
// member routes, and admin-only routes.
func NewRouter(h *Handlers, authMW *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.Authenticate)

	authed.HandleFunc("/users/me", h.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", h.User.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/users/me/password", h.User.ChangePassword).Methods(http.MethodPost)

	authed.HandleFunc("/books", h.Book.Search).Methods(http.MethodGet)
	authed.HandleFunc("/books/{id:[0-9]+}", h.Book.Get).Methods(http.MethodGet)
	authed.HandleFunc("/categories", h.Category.List).Methods(http.MethodGet)

	authed.HandleFunc("/loans/borrow", h.Loan.Borrow).Methods(http.MethodPost)
	authed.HandleFunc("/loans/my", h.Loan.MyLoans).Methods(http.MethodGet)
	authed.HandleFunc("/loans/history", h.Loan.History).Methods(http.MethodGet)
	authed.HandleFunc("/loans/{id:[0-9]+}/return", h.Loan.Return).Methods(http.MethodPost)
	authed.HandleFunc("/loans/{id:[0-9]+}/pay-fine", h.Loan.PayFine).Methods(http.MethodPost)

	// Admin
	admin := authed.NewRoute().Subrouter()
	admin.Use(RequireAdmin)

	admin.HandleFunc("/books", h.Book.Create).Methods(http.MethodPost)
	admin.HandleFunc("/books/{id:[0-9]+}", h.Book.Update).Methods(http.MethodPut)
	admin.HandleFunc("/books/{id:[0-9]+}", h.Book.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", h.Category.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", h.Category.Rename).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id:[0-9]+}", h.Category.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/loans", h.Loan.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/loans/overdue", h.Loan.ListOverdue).Methods(http.MethodGet)

	admin.HandleFunc("/users", h.User.ListMembers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/active", h.User.SetActive).Methods(http.MethodPut)

	admin.HandleFunc("/stats/dashboard", h.Stats.Dashboard).Methods(http.MethodGet)

	return r
}
