package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"kyc-service/internal/dto/request"
	"kyc-service/internal/usecase"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/register (public)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "success", resp)
}

// Login handles POST /api/login (public)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// Credential failures map to 401 here rather than the generic
		// 403, matching what API clients expect from a login endpoint.
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeAuthorization {
			h.log.Warn("Login rejected", zap.Error(err))
			utils.ResponseUnauthorized(w, appErr.Message)
			return
		}
		respondError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Refresh handles POST /api/login/refresh (public)
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthorization) {
			h.log.Warn("Refresh rejected", zap.Error(err))
			utils.ResponseUnauthorized(w, "Invalid or expired refresh token")
			return
		}
		respondError(w, h.log, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
