package handlers

import (
	"net/http"
	"strconv"

	"github.com/mkalnins/volleyball-league/repositories"
	"github.com/mkalnins/volleyball-league/services"
)

type TransferHandler struct {
	transferService services.TransferService
}

func NewTransferHandler(transferService services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) RecordTransfer(w http.ResponseWriter, r *http.Request) {
	var input services.RecordTransferInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	transfer, err := h.transferService.RecordTransfer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"transfer": transfer}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TransferHandler) GetTransferByID(w http.ResponseWriter, r *http.Request) {
	transferID, err := getIDFromURL(r, "transferID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transfer, err := h.transferService.GetTransferByID(r.Context(), transferID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transfer": transfer}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TransferHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListTransfersFilter{}
	if raw := r.URL.Query().Get("player_id"); raw != "" {
		playerID, convErr := strconv.Atoi(raw)
		if convErr != nil || playerID <= 0 {
			badRequestResponse(w, r, errInvalidQueryParam("player_id", raw))
			return
		}
		filter.PlayerID = &playerID
	}
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		teamID, convErr := strconv.Atoi(raw)
		if convErr != nil || teamID <= 0 {
			badRequestResponse(w, r, errInvalidQueryParam("team_id", raw))
			return
		}
		filter.TeamID = &teamID
	}

	transfers, err := h.transferService.ListTransfers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transfers": transfers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TransferHandler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	transferID, err := getIDFromURL(r, "transferID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.transferService.DeleteTransfer(r.Context(), transferID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
