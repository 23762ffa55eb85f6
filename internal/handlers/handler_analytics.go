package handlers

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/timeutil"
	"github.com/gin-gonic/gin"
)

const defaultChurnHorizonDays = 60

type analyticsHandler struct {
	service     portssvc.AnalyticsSvcFacade
	dealService portssvc.DealSvcFacade
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, service portssvc.AnalyticsSvcFacade, dealService portssvc.DealSvcFacade) {
	h := &analyticsHandler{service: service, dealService: dealService}
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/dre", h.dre)
		analytics.GET("/profitability", h.profitability)
		analytics.GET("/sales-performance", h.salesPerformance)
		analytics.GET("/churn-radar", h.churnRadar)
		analytics.GET("/workload", h.workload)
		analytics.GET("/dashboard", h.dashboard)
	}
}

// parsePeriod resolves the reporting window from query parameters. Accepts
// either month=YYYY-MM or an explicit from/to pair of YYYY-MM-DD dates, and
// falls back to the current month.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	if month := c.Query("month"); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
			return time.Time{}, time.Time{}, false
		}
		from, to := timeutil.MonthWindow(t)
		return from, to, true
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		if to.Before(from) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Period end precedes period start"})
			return time.Time{}, time.Time{}, false
		}
		// Push the end boundary to the last instant of its day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return from, to, true
	}

	from, to := timeutil.MonthWindow(time.Now())
	return from, to, true
}

// dre godoc
// @Summary Income statement for a period
// @Description Computes the managerial income statement (gross revenue, taxes, variable and fixed costs, net profit) for the requested period. Defaults to the current month.
// @Tags analytics
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Param from query string false "Period start as YYYY-MM-DD"
// @Param to query string false "Period end as YYYY-MM-DD"
// @Success 200 {object} dto.DREResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/dre [get]
func (h *analyticsHandler) dre(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	report, err := h.service.DRE(c.Request.Context(), requester, from, to)
	if err != nil {
		respondError(c, err, "Failed to compute income statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToDREResponse(report))
}

// profitability godoc
// @Summary Per-client profitability
// @Description Ranks clients by profit over the full transaction history. Expenses without a project attribution are excluded.
// @Tags analytics
// @Produce json
// @Success 200 {array} dto.ClientProfitabilityResponse
// @Security BearerAuth
// @Router /analytics/profitability [get]
func (h *analyticsHandler) profitability(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	rows, err := h.service.ClientProfitability(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to compute client profitability")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitabilityResponse(rows))
}

// salesPerformance godoc
// @Summary Salesperson ranking for a period
// @Description Ranks salespeople by revenue from deals won in the period, with deal counts, provisioned commissions and average ticket. Defaults to the current month.
// @Tags analytics
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Param from query string false "Period start as YYYY-MM-DD"
// @Param to query string false "Period end as YYYY-MM-DD"
// @Success 200 {object} dto.SalesPerformanceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/sales-performance [get]
func (h *analyticsHandler) salesPerformance(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	rows, err := h.service.SalesPerformance(c.Request.Context(), requester, from, to)
	if err != nil {
		respondError(c, err, "Failed to compute sales performance")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesPerformanceResponse(rows, from, to))
}

// churnRadar godoc
// @Summary Contract renewal risk radar
// @Description Lists clients whose contract ends within the horizon, tiered by urgency.
// @Tags analytics
// @Produce json
// @Param horizonDays query int false "Look-ahead window in days" default(60)
// @Success 200 {object} dto.ChurnRadarResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/churn-radar [get]
func (h *analyticsHandler) churnRadar(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	horizonDays := defaultChurnHorizonDays
	if raw := c.Query("horizonDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "horizonDays must be a positive integer"})
			return
		}
		horizonDays = parsed
	}
	rows, err := h.service.ChurnRadar(c.Request.Context(), requester, horizonDays)
	if err != nil {
		respondError(c, err, "Failed to compute churn radar")
		return
	}
	c.JSON(http.StatusOK, dto.ToChurnRadarResponse(rows, horizonDays))
}

// workload godoc
// @Summary Team workload and capacity utilization
// @Description Aggregates active task estimates per member against weekly capacity.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.WorkloadResponse
// @Security BearerAuth
// @Router /analytics/workload [get]
func (h *analyticsHandler) workload(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	report, err := h.service.TeamWorkload(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to compute team workload")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkloadResponse(report))
}

// dashboard godoc
// @Summary Combined analytics dashboard
// @Description Fans out to every analytics read-model concurrently and bundles the results. Period parameters apply to the income statement and sales ranking; churn uses the default horizon.
// @Tags analytics
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Param from query string false "Period start as YYYY-MM-DD"
// @Param to query string false "Period end as YYYY-MM-DD"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *analyticsHandler) dashboard(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	var (
		dreReport     *domain.DREReport
		profitability []domain.ClientProfitability
		ranking       []domain.SalesPerformanceRow
		churn         []domain.ChurnRiskClient
		workload      *domain.TeamWorkloadReport
		pipeline      *domain.PipelineSummary
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		dreReport, err = h.service.DRE(ctx, requester, from, to)
		return err
	})
	g.Go(func() (err error) {
		profitability, err = h.service.ClientProfitability(ctx, requester)
		return err
	})
	g.Go(func() (err error) {
		ranking, err = h.service.SalesPerformance(ctx, requester, from, to)
		return err
	})
	g.Go(func() (err error) {
		churn, err = h.service.ChurnRadar(ctx, requester, defaultChurnHorizonDays)
		return err
	})
	g.Go(func() (err error) {
		workload, err = h.service.TeamWorkload(ctx, requester)
		return err
	})
	g.Go(func() (err error) {
		pipeline, err = h.dealService.PipelineSummary(ctx, requester)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err, "Failed to assemble dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		DRE:              dto.ToDREResponse(dreReport),
		Profitability:    dto.ToProfitabilityResponse(profitability),
		SalesPerformance: dto.ToSalesPerformanceResponse(ranking, from, to),
		ChurnRadar:       dto.ToChurnRadarResponse(churn, defaultChurnHorizonDays),
		Workload:         dto.ToWorkloadResponse(workload),
		Pipeline:         dto.ToPipelineResponse(pipeline),
	})
}
