package usecase

import (
	"context"
	"fmt"
	"time"

	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/dto/response"
	"beauty-orders/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultTopProducts = 5
	maxTopProducts     = 20
	defaultRevenueDays = 7
	maxRevenueDays     = 365
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context, top int) (*response.DashboardResponse, error)
	GetRevenueByDay(ctx context.Context, days int) ([]response.DailyRevenueResponse, error)
}

type analyticsService struct {
	repo              *repository.Repository
	lowStockThreshold int
	log               *zap.Logger
	now               func() time.Time
}

func NewAnalyticsService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo:              repo,
		lowStockThreshold: config.Inventory.LowStockThreshold,
		log:               log.With(zap.String("service", "analytics")),
		now:               time.Now,
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDashboard returns the headline counters plus the top products. A top of
// zero selects the default; larger values are capped.
func (s *analyticsService) GetDashboard(ctx context.Context, top int) (*response.DashboardResponse, error) {
	switch {
	case top < 0:
		return nil, fmt.Errorf("%w: top must be positive", ErrValidation)
	case top == 0:
		top = defaultTopProducts
	case top > maxTopProducts:
		top = maxTopProducts
	}

	counts, err := s.repo.Analytics.DashboardCounts(ctx, startOfDay(s.now()), s.lowStockThreshold)
	if err != nil {
		s.log.Error("Failed to load dashboard", zap.Error(err))
		return nil, fmt.Errorf("get dashboard counts: %w", err)
	}

	products, err := s.repo.Analytics.TopProducts(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("get top products: %w", err)
	}

	topProducts := make([]response.TopProductResponse, len(products))
	for i, p := range products {
		topProducts[i] = response.TopProductResponse{
			ProductID:     p.ProductID.String(),
			Name:          p.Name,
			OrderCount:    p.OrderCount,
			TotalQuantity: p.TotalQuantity,
		}
	}

	return &response.DashboardResponse{
		OrdersToday:    counts.OrdersToday,
		TotalRevenue:   counts.TotalRevenue,
		TotalOrders:    counts.TotalOrders,
		TotalCustomers: counts.TotalCustomers,
		TotalProducts:  counts.TotalProducts,
		LowStockCount:  counts.LowStockCount,
		TopProducts:    topProducts,
	}, nil
}

// GetRevenueByDay returns exactly days rows ending today (UTC), oldest first.
func (s *analyticsService) GetRevenueByDay(ctx context.Context, days int) ([]response.DailyRevenueResponse, error) {
	if days == 0 {
		days = defaultRevenueDays
	}
	if days < 1 || days > maxRevenueDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrValidation, maxRevenueDays)
	}

	from := startOfDay(s.now()).AddDate(0, 0, -(days - 1))

	rows, err := s.repo.Analytics.RevenueByDay(ctx, from)
	if err != nil {
		s.log.Error("Failed to load revenue by day", zap.Error(err), zap.Int("days", days))
		return nil, fmt.Errorf("get revenue by day: %w", err)
	}

	byDay := make(map[string]response.DailyRevenueResponse, len(rows))
	for _, row := range rows {
		key := row.Date.Format(time.DateOnly)
		byDay[key] = response.DailyRevenueResponse{
			Date:       key,
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
		}
	}

	out := make([]response.DailyRevenueResponse, 0, days)
	for i := 0; i < days; i++ {
		key := from.AddDate(0, 0, i).Format(time.DateOnly)
		day, ok := byDay[key]
		if !ok {
			day = response.DailyRevenueResponse{Date: key, Revenue: decimal.Zero}
		}
		out = append(out, day)
	}

	return out, nil
}
