package adaptor

import (
	"encoding/json"
	"net/http"

	"kyc-service/internal/dto/request"
	"kyc-service/internal/usecase"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// ListCustomers handles GET /api/customers (protected)
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	customers, err := h.service.List(r.Context(), actor, paginationFrom(r))
	if err != nil {
		respondError(w, h.log, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// GetCustomer handles GET /api/customers/{id} (protected)
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	customer, err := h.service.Get(r.Context(), actor, customerID)
	if err != nil {
		respondError(w, h.log, err, "get customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// UpdateCustomer handles PUT /api/customers/{id} (protected)
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	var req request.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.Update(r.Context(), actor, customerID, &req)
	if err != nil {
		respondError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// UploadKYCDocument handles POST /api/customers/kyc-document (customer only)
func (h *CustomerHandler) UploadKYCDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.UploadKYCDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.UploadKYCDocument(r.Context(), actor, &req)
	if err != nil {
		respondError(w, h.log, err, "upload KYC document")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}
