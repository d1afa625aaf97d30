package adaptor

import (
	"fmt"
	"net/http"
	"strings"

	"beauty-orders/internal/dto/request"
	"beauty-orders/internal/usecase"
	"beauty-orders/pkg/utils"

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

// GetCustomers handles GET /api/customers?page=&per_page=&customer_type=
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	var customerType *string
	if t := strings.TrimSpace(r.URL.Query().Get("customer_type")); t != "" {
		customerType = &t
	}

	customers, err := h.service.GetCustomers(r.Context(), paginationFromQuery(r), customerType)
	if err != nil {
		handleServiceError(w, h.log, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "Customers retrieved successfully", customers)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.GetCustomerByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get customer by ID")
		return
	}

	utils.ResponseSuccess(w, "Customer retrieved successfully", customer)
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created successfully", customer)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Customer updated successfully", customer)
}

// DeleteCustomer handles DELETE /api/customers/{id} (admin only)
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "Customer deleted successfully", nil)
}

// GetCustomerStats handles GET /api/customers/{id}/stats
func (h *CustomerHandler) GetCustomerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetCustomerStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get customer stats")
		return
	}

	utils.ResponseSuccess(w, "Customer statistics retrieved successfully", stats)
}

// GetCustomerOrders handles GET /api/customers/{id}/orders
func (h *CustomerHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetCustomerOrders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get customer orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// GetStatsByType handles GET /api/customers/stats/by-type
func (h *CustomerHandler) GetStatsByType(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetCustomerStatsByType(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get customer type stats")
		return
	}

	utils.ResponseSuccess(w, "Customer statistics retrieved successfully", stats)
}

// SearchCustomers handles GET /api/customers/search/{term}
func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.SearchCustomers(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		handleServiceError(w, h.log, err, "search customers")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf("Found %d customers", len(customers)), customers)
}
