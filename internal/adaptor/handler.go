package adaptor

import (
	"errors"
	"net/http"

	"kyc-service/internal/dto/request"
	"kyc-service/internal/policy"
	"kyc-service/internal/usecase"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Customer     *CustomerHandler
	Admin        *AdminHandler
	Auditor      *AuditorHandler
	Verification *VerificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Customer:     NewCustomerHandler(service.Customer, log),
		Admin:        NewAdminHandler(service.Admin, log),
		Auditor:      NewAuditorHandler(service.Auditor, log),
		Verification: NewVerificationHandler(service.Verification, log),
	}
}

// actorFrom pulls the resolved actor set by the Actor middleware.
func actorFrom(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	actor, ok := policy.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	return actor, true
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Infrastructure errors carry no code and collapse to 500 without
// leaking detail.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Code {
	case apperrors.CodeValidation:
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, fieldsOrNil(appErr))

	case apperrors.CodeConflict, apperrors.CodeInvalidState:
		log.Warn(operation+" failed - conflicting state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, appErr.Message)

	case apperrors.CodeAuthorization:
		log.Warn(operation+" failed - not permitted",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, appErr.Message)

	case apperrors.CodeNotFound:
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, appErr.Message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func fieldsOrNil(appErr *apperrors.Error) any {
	if len(appErr.Fields) == 0 {
		return nil
	}
	return appErr.Fields
}

// paginationFrom reads page/per_page query params with defaults.
func paginationFrom(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
