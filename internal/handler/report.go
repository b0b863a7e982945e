package handler

import (
	"net/http"
	"strconv"
	"time"

	"smart-billing/internal/config"
	"smart-billing/internal/service"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregate reports.
type ReportHandler struct {
	Reports *service.Reports
	App     config.AppSubConfig
}

func NewReportHandler(reports *service.Reports, app config.AppSubConfig) *ReportHandler {
	return &ReportHandler{Reports: reports, App: app}
}

// Summary returns sales count and revenue, ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *ReportHandler) Summary(c *gin.Context) {
	var start, end *time.Time

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"invalid start date, expected YYYY-MM-DD")
			return
		}
		start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"invalid end date, expected YYYY-MM-DD")
			return
		}
		end = &t
	}

	summary, err := h.Reports.Summary(start, end)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"sales_count":  summary.Count,
		"revenue_cent": summary.RevenueCent,
		"revenue":      util.FormatAmount(summary.RevenueCent),
	})
}

// TopProducts returns the best sellers, ?limit= overriding the config
// default.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit := h.App.TopProductsLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
			return
		}
		limit = n
	}

	rows, err := h.Reports.TopProducts(limit)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		items = append(items, gin.H{
			"product_id": row.ProductID,
			"name":       row.Name,
			"units_sold": row.UnitsSold,
		})
	}
	util.Success(c, util.Response{"items": items})
}

// LowStock lists products below the threshold, ?threshold= overriding
// the config default.
func (h *ReportHandler) LowStock(c *gin.Context) {
	threshold := h.App.LowStockThreshold
	if s := c.Query("threshold"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid threshold")
			return
		}
		threshold = n
	}

	products, err := h.Reports.LowStock(threshold)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, gin.H{
			"product_id": p.ID,
			"name":       p.Name,
			"quantity":   p.Quantity,
		})
	}
	util.Success(c, util.Response{"threshold": threshold, "items": items})
}

// CustomerHistory lists a customer's sales and their lifetime total.
func (h *ReportHandler) CustomerHistory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	history, err := h.Reports.CustomerHistory(id)
	if err != nil {
		fail(c, err)
		return
	}

	sales := make([]gin.H, 0, len(history.Sales))
	for i := range history.Sales {
		s := &history.Sales[i]
		sales = append(sales, gin.H{
			"id":         s.ID,
			"date":       s.Date.Format("2006-01-02"),
			"status":     s.Status,
			"total_cent": s.TotalCent,
			"total":      util.FormatAmount(s.TotalCent),
		})
	}

	util.Success(c, util.Response{
		"customer": gin.H{
			"id":   history.Customer.ID,
			"name": history.Customer.Name,
		},
		"sales":      sales,
		"total_cent": history.TotalCent,
		"total":      util.FormatAmount(history.TotalCent),
	})
}
