package handlers

import (
	"fmt"
	"net/http"

	"github.com/mkalnins/volleyball-league/services"
)

type CSVHandler struct {
	csvService services.CSVService
}

func NewCSVHandler(csvService services.CSVService) *CSVHandler {
	return &CSVHandler{csvService: csvService}
}

func (h *CSVHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=standings-%d.csv", tournamentID))
	if err := h.csvService.ExportStandings(r.Context(), tournamentID, w); err != nil {
		// Headers may already be written; log and bail.
		serverErrorResponse(w, r, err)
	}
}

func (h *CSVHandler) ExportFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=fixtures-%d.csv", tournamentID))
	if err := h.csvService.ExportFixtures(r.Context(), tournamentID, w); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CSVHandler) ImportFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	file, _, err := r.FormFile("fixtures")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("fixtures file is required: %w", err))
		return
	}
	defer file.Close()

	result, err := h.csvService.ImportFixtures(r.Context(), tournamentID, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
