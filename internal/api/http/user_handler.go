package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"libris-backend/internal/domain"
	"libris-backend/internal/service"
)

type UserHandler struct {
	userSvc         service.UserService
	defaultPageSize int32
}

func NewUserHandler(userSvc service.UserService, defaultPageSize int32) *UserHandler {
	return &UserHandler{userSvc: userSvc, defaultPageSize: defaultPageSize}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	user, err := h.userSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	if err := h.userSvc.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type userListResponse struct {
	Users []domain.User `json:"users"`
	Total int32         `json:"total"`
}

func (h *UserHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r, h.defaultPageSize)

	users, total, err := h.userSvc.ListMembers(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userListResponse{Users: users, Total: total})
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	if err := h.userSvc.SetActive(r.Context(), id, req.IsActive); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
