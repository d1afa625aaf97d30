package adaptor

import (
	"net/http"
	"strconv"

	"beauty-orders/internal/usecase"
	"beauty-orders/pkg/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service usecase.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service usecase.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log.With(zap.String("handler", "analytics")),
	}
}

// GetDashboard handles GET /api/analytics/dashboard?top=
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	top, ok := intQuery(w, r, "top")
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), top)
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", dashboard)
}

// GetRevenueByDay handles GET /api/analytics/revenue-by-day?days=
func (h *AnalyticsHandler) GetRevenueByDay(w http.ResponseWriter, r *http.Request) {
	days, ok := intQuery(w, r, "days")
	if !ok {
		return
	}

	revenue, err := h.service.GetRevenueByDay(r.Context(), days)
	if err != nil {
		handleServiceError(w, h.log, err, "get revenue by day")
		return
	}

	utils.ResponseSuccess(w, "Revenue retrieved successfully", revenue)
}

// intQuery returns 0 for an absent parameter and writes a 400 for a
// malformed or non-positive one.
func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{
			name: "Must be a positive integer",
		})
		return 0, false
	}
	return n, true
}
