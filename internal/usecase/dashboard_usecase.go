package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	recentOrderLimit = 5
	topProductLimit  = 5
	revenueMonths    = 6
)

// 管理ダッシュボード。毎回集計する。
type DashboardUsecase struct {
	reports repo.ReportRepository
	clock   Clock
}

func NewDashboardUsecase(reports repo.ReportRepository, clock Clock) *DashboardUsecase {
	return &DashboardUsecase{reports: reports, clock: clock}
}

type DashboardMetrics struct {
	TotalOrders      int64           `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCustomers   int64           `json:"total_customers"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// 月別売上（YYYY-MM）
type MonthlyRevenue struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type DashboardOutput struct {
	Metrics      DashboardMetrics     `json:"metrics"`
	RecentOrders []model.Order        `json:"recent_orders"`
	MonthlySales []MonthlyRevenue     `json:"monthly_sales"`
	TopProducts  []repo.TopProductRow `json:"top_products"`
}

func (u *DashboardUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	var out DashboardOutput
	var err error

	if out.Metrics.TotalOrders, err = u.reports.CountOrders(ctx); err != nil {
		return DashboardOutput{}, errDB()
	}
	if out.Metrics.TotalRevenue, err = u.reports.SumPaidRevenue(ctx); err != nil {
		return DashboardOutput{}, errDB()
	}
	if out.Metrics.TotalCustomers, err = u.reports.CountCustomers(ctx); err != nil {
		return DashboardOutput{}, errDB()
	}
	if out.Metrics.LowStockProducts, err = u.reports.CountLowStockProducts(ctx); err != nil {
		return DashboardOutput{}, errDB()
	}
	if out.RecentOrders, err = u.reports.RecentOrders(ctx, recentOrderLimit); err != nil {
		return DashboardOutput{}, errDB()
	}

	since := u.clock.Now().UTC().AddDate(0, -revenueMonths, 0)
	paid, err := u.reports.PaidOrdersSince(ctx, since)
	if err != nil {
		return DashboardOutput{}, errDB()
	}
	out.MonthlySales = groupByMonth(paid)

	if out.TopProducts, err = u.reports.TopProducts(ctx, topProductLimit); err != nil {
		return DashboardOutput{}, errDB()
	}
	return out, nil
}

// 年月ごとに合計（古い順）。売上の無い月は出さない。
func groupByMonth(orders []model.Order) []MonthlyRevenue {
	out := []MonthlyRevenue{}
	index := map[string]int{}
	for _, o := range orders {
		key := o.CreatedAt.UTC().Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, MonthlyRevenue{Month: key, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(o.TotalAmount)
	}
	// "YYYY-MM" は文字列順 = 時系列
	slices.SortFunc(out, func(a, b MonthlyRevenue) int { return strings.Compare(a.Month, b.Month) })
	return out
}
