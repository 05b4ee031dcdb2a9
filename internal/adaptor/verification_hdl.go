package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"kyc-service/internal/dto/request"
	"kyc-service/internal/usecase"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VerificationHandler struct {
	service usecase.VerificationService
	log     *zap.Logger
}

func NewVerificationHandler(service usecase.VerificationService, log *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "verification")),
	}
}

// Submit handles POST /api/verifications (customer only)
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	verification, err := h.service.Submit(r.Context(), actor)
	if err != nil {
		respondError(w, h.log, err, "submit verification")
		return
	}

	utils.ResponseCreated(w, "success", verification)
}

// List handles GET /api/verifications (protected)
func (h *VerificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	verifications, err := h.service.List(r.Context(), actor, paginationFrom(r))
	if err != nil {
		respondError(w, h.log, err, "list verifications")
		return
	}

	utils.ResponseSuccess(w, "success", verifications)
}

// Get handles GET /api/verifications/{id} (protected)
func (h *VerificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	verificationID := chi.URLParam(r, "id")
	if verificationID == "" {
		utils.ResponseBadRequest(w, "Verification ID is required", nil)
		return
	}

	verification, err := h.service.Get(r.Context(), actor, verificationID)
	if err != nil {
		respondError(w, h.log, err, "get verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}

// Approve handles POST /api/verifications/{id}/approve (admin only)
func (h *VerificationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	verificationID := chi.URLParam(r, "id")
	if verificationID == "" {
		utils.ResponseBadRequest(w, "Verification ID is required", nil)
		return
	}

	// The approval body is optional; remarks may be omitted entirely.
	var req request.ApproveVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Approve(r.Context(), actor, verificationID, &req)
	if err != nil {
		respondError(w, h.log, err, "approve verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}

// Reject handles POST /api/verifications/{id}/reject (admin only)
func (h *VerificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	verificationID := chi.URLParam(r, "id")
	if verificationID == "" {
		utils.ResponseBadRequest(w, "Verification ID is required", nil)
		return
	}

	var req request.RejectVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Reject(r.Context(), actor, verificationID, &req)
	if err != nil {
		respondError(w, h.log, err, "reject verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}
