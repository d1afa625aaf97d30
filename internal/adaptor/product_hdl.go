package adaptor

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"beauty-orders/internal/dto/request"
	"beauty-orders/internal/usecase"
	"beauty-orders/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// GetProducts handles GET /api/products?page=&per_page=&category=
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
		category = &c
	}

	products, err := h.service.GetProducts(r.Context(), paginationFromQuery(r), category)
	if err != nil {
		handleServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// GetProductByID handles GET /api/products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get product by ID")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}

// CreateProduct handles POST /api/products (admin only)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/products/{id} (admin only)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/products/{id} (admin only)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// BulkUpdatePrice handles
// POST /api/products/bulk-price-update?keyword=&price_change_type=&value=&product_ids=
func (h *ProductHandler) BulkUpdatePrice(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	value, err := decimal.NewFromString(strings.TrimSpace(query.Get("value")))
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{
			"value": "Must be a number",
		})
		return
	}

	req := request.BulkPriceUpdateRequest{
		Keyword:         strings.TrimSpace(query.Get("keyword")),
		PriceChangeType: strings.TrimSpace(query.Get("price_change_type")),
		Value:           value,
		ProductIDs:      splitIDs(query["product_ids"]),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.BulkUpdatePrice(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk update price")
		return
	}

	if resp.Updated == 0 {
		utils.ResponseSuccess(w, fmt.Sprintf("No products found matching '%s'", resp.Keyword), resp)
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf("Updated %d products", resp.Updated), resp)
}

// SearchProducts handles GET /api/products/search/{term}
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchProducts(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		handleServiceError(w, h.log, err, "search products")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf("Found %d products", len(products)), products)
}

// GetLowStock handles GET /api/products/low-stock?threshold=
func (h *ProductHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{
				"threshold": "Must be a positive integer",
			})
			return
		}
		threshold = n
	}

	products, err := h.service.GetLowStock(r.Context(), threshold)
	if err != nil {
		handleServiceError(w, h.log, err, "get low stock products")
		return
	}

	utils.ResponseSuccess(w, "Low stock products retrieved successfully", products)
}

// splitIDs accepts both repeated and comma-separated product_ids values.
func splitIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, part)
			}
		}
	}
	return ids
}
