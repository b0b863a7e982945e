package handler

import (
	"net/http"

	"smart-billing/internal/models"
	"smart-billing/internal/service"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
)

// SaleHandler serves the sale workflow: create, add items, finalize,
// print the bill.
type SaleHandler struct {
	Sales *service.Sales
}

func NewSaleHandler(sales *service.Sales) *SaleHandler {
	return &SaleHandler{Sales: sales}
}

type createSaleReq struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Date       string `json:"date"` // defaults to today
}

type addItemReq struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int64   `json:"quantity" binding:"required"`
	Price     *string `json:"price"` // overrides catalog price when set
}

func saleResp(s *models.Sale) gin.H {
	resp := gin.H{
		"id":          s.ID,
		"customer_id": s.CustomerID,
		"date":        s.Date.Format("2006-01-02"),
		"status":      s.Status,
		"total_cent":  s.TotalCent,
		"total":       util.FormatAmount(s.TotalCent),
	}
	if s.Customer.ID != 0 {
		resp["customer"] = s.Customer.Name
	}
	return resp
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req createSaleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date := todayDate()
	if req.Date != "" {
		t, ok := parseDate(req.Date)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"invalid date, expected YYYY-MM-DD")
			return
		}
		date = t
	}

	sale, err := h.Sales.Create(req.CustomerID, date)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"sale": saleResp(sale)})
}

func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.Sales.List()
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(sales))
	for i := range sales {
		items = append(items, saleResp(&sales[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.Sales.Get(id)
	if err != nil {
		fail(c, err)
		return
	}

	lines := make([]gin.H, 0, len(sale.Items))
	for i := range sale.Items {
		it := &sale.Items[i]
		lines = append(lines, gin.H{
			"id":         it.ID,
			"product_id": it.ProductID,
			"quantity":   it.Quantity,
			"price_cent": it.PriceCent,
			"price":      util.FormatAmount(it.PriceCent),
		})
	}

	resp := saleResp(sale)
	resp["items"] = lines
	util.Success(c, util.Response{"sale": resp})
}

func (h *SaleHandler) AddItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var priceCent *int64
	if req.Price != nil {
		cent, err := util.ParseAmount(*req.Price)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		priceCent = &cent
	}

	item, err := h.Sales.AddItem(id, req.ProductID, req.Quantity, priceCent)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"item": gin.H{
			"id":         item.ID,
			"sale_id":    item.SaleID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"price_cent": item.PriceCent,
			"price":      util.FormatAmount(item.PriceCent),
		},
	})
}

func (h *SaleHandler) Finalize(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.Sales.Finalize(id)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"sale": saleResp(sale)})
}

func (h *SaleHandler) Bill(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.Sales.Bill(id)
	if err != nil {
		fail(c, err)
		return
	}

	lines := make([]gin.H, 0, len(bill.Lines))
	for _, line := range bill.Lines {
		lines = append(lines, gin.H{
			"product_id": line.ProductID,
			"product":    line.ProductName,
			"quantity":   line.Quantity,
			"price":      util.FormatAmount(line.PriceCent),
			"total":      util.FormatAmount(line.TotalCent),
		})
	}

	util.Success(c, util.Response{
		"bill": gin.H{
			"sale_id":  bill.SaleID,
			"customer": bill.CustomerName,
			"date":     bill.Date.Format("2006-01-02"),
			"status":   bill.Status,
			"lines":    lines,
			"total":    util.FormatAmount(bill.TotalCent),
		},
	})
}
