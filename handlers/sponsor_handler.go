package handlers

import (
	"fmt"
	"net/http"

	"github.com/mkalnins/volleyball-league/services"
)

type SponsorHandler struct {
	sponsorService services.SponsorService
}

func NewSponsorHandler(sponsorService services.SponsorService) *SponsorHandler {
	return &SponsorHandler{sponsorService: sponsorService}
}

func (h *SponsorHandler) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSponsorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	sponsor, err := h.sponsorService.CreateSponsor(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) GetSponsorByID(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sponsor, err := h.sponsorService.GetSponsorByID(r.Context(), sponsorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.sponsorService.ListSponsors(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsors": sponsors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) UpdateSponsor(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSponsorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	sponsor, err := h.sponsorService.UpdateSponsor(r.Context(), sponsorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("logo file is required: %w", err))
		return
	}
	defer file.Close()

	sponsor, err := h.sponsorService.UploadLogo(r.Context(), sponsorID, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.sponsorService.DeleteSponsor(r.Context(), sponsorID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
