package adaptor

import (
	"net/http"

	"kyc-service/internal/usecase"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuditorHandler struct {
	service usecase.AuditorService
	log     *zap.Logger
}

func NewAuditorHandler(service usecase.AuditorService, log *zap.Logger) *AuditorHandler {
	return &AuditorHandler{
		service: service,
		log:     log.With(zap.String("handler", "auditor")),
	}
}

// ListAuditors handles GET /api/auditors (protected)
func (h *AuditorHandler) ListAuditors(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	auditors, err := h.service.List(r.Context(), actor, paginationFrom(r))
	if err != nil {
		respondError(w, h.log, err, "list auditors")
		return
	}

	utils.ResponseSuccess(w, "success", auditors)
}

// GetAuditor handles GET /api/auditors/{id} (protected)
func (h *AuditorHandler) GetAuditor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	auditorID := chi.URLParam(r, "id")
	if auditorID == "" {
		utils.ResponseBadRequest(w, "Auditor ID is required", nil)
		return
	}

	auditor, err := h.service.Get(r.Context(), actor, auditorID)
	if err != nil {
		respondError(w, h.log, err, "get auditor")
		return
	}

	utils.ResponseSuccess(w, "success", auditor)
}
