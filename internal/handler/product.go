package handler

import (
	"net/http"

	"smart-billing/internal/models"
	"smart-billing/internal/service"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the product side of the catalog.
type ProductHandler struct {
	Catalog *service.Catalog
}

func NewProductHandler(catalog *service.Catalog) *ProductHandler {
	return &ProductHandler{Catalog: catalog}
}

type createProductReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"` // decimal string, e.g. "12.50"
	Quantity    int64  `json:"quantity" binding:"min=0"`
}

type updateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *int64  `json:"quantity"`
}

func productResp(p *models.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price_cent":  p.PriceCent,
		"price":       util.FormatAmount(p.PriceCent),
		"quantity":    p.Quantity,
		"created_at":  p.CreatedAt,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	priceCent, err := util.ParseAmount(req.Price)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	product, err := h.Catalog.CreateProduct(req.Name, req.Description, priceCent, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"product": productResp(product)})
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		items = append(items, productResp(&products[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := h.Catalog.GetProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"product": productResp(product)})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
	}
	if req.Price != nil {
		priceCent, err := util.ParseAmount(*req.Price)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		patch.PriceCent = &priceCent
	}

	product, err := h.Catalog.UpdateProduct(id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"product": productResp(product)})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Catalog.DeleteProduct(id); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "product deleted"})
}
