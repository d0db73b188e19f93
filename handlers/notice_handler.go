package handlers

import (
	"net/http"

	"github.com/mkalnins/volleyball-league/middleware"
	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/services"
)

type NoticeHandler struct {
	noticeService services.NoticeService
}

func NewNoticeHandler(noticeService services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

func (h *NoticeHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var input services.CreateNoticeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	authorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	notice, err := h.noticeService.CreateNotice(r.Context(), authorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"notice": notice}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NoticeHandler) GetNoticeByID(w http.ResponseWriter, r *http.Request) {
	noticeID, err := getIDFromURL(r, "noticeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	notice, err := h.noticeService.GetNoticeByID(r.Context(), noticeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"notice": notice}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListNotices hides drafts and scheduled notices from everyone but
// admins and staff.
func (h *NoticeHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	includeUnpublished := false
	if role, err := middleware.GetUserRoleFromContext(r.Context()); err == nil {
		includeUnpublished = role == models.RoleAdmin || role == models.RoleStaff
	}

	notices, err := h.noticeService.ListNotices(r.Context(), includeUnpublished)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"notices": notices}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NoticeHandler) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	noticeID, err := getIDFromURL(r, "noticeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateNoticeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	notice, err := h.noticeService.UpdateNotice(r.Context(), noticeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"notice": notice}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NoticeHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	noticeID, err := getIDFromURL(r, "noticeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.noticeService.DeleteNotice(r.Context(), noticeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
