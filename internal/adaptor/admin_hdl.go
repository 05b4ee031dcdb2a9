package adaptor

import (
	"net/http"

	"kyc-service/internal/usecase"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListAdmins handles GET /api/admins (admin only)
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	admins, err := h.service.List(r.Context(), actor, paginationFrom(r))
	if err != nil {
		respondError(w, h.log, err, "list admins")
		return
	}

	utils.ResponseSuccess(w, "success", admins)
}

// GetAdmin handles GET /api/admins/{id} (admin only)
func (h *AdminHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	adminID := chi.URLParam(r, "id")
	if adminID == "" {
		utils.ResponseBadRequest(w, "Admin ID is required", nil)
		return
	}

	admin, err := h.service.Get(r.Context(), actor, adminID)
	if err != nil {
		respondError(w, h.log, err, "get admin")
		return
	}

	utils.ResponseSuccess(w, "success", admin)
}
