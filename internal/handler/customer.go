package handler

import (
	"net/http"

	"smart-billing/internal/models"
	"smart-billing/internal/service"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves customer CRUD and search.
type CustomerHandler struct {
	Catalog *service.Catalog
}

func NewCustomerHandler(catalog *service.Catalog) *CustomerHandler {
	return &CustomerHandler{Catalog: catalog}
}

type createCustomerReq struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

type updateCustomerReq struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
}

func customerResp(cu *models.Customer) gin.H {
	return gin.H{
		"id":         cu.ID,
		"name":       cu.Name,
		"contact":    cu.Contact,
		"created_at": cu.CreatedAt,
	}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	customer, err := h.Catalog.CreateCustomer(req.Name, req.Contact)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"customer": customerResp(customer)})
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.Catalog.ListCustomers()
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(customers))
	for i := range customers {
		items = append(items, customerResp(&customers[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.Catalog.GetCustomer(id)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"customer": customerResp(customer)})
}

// Search matches customer names by substring, ?name=.
func (h *CustomerHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name query is required")
		return
	}

	customers, err := h.Catalog.SearchCustomers(name)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]gin.H, 0, len(customers))
	for i := range customers {
		items = append(items, customerResp(&customers[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	customer, err := h.Catalog.UpdateCustomer(id, service.CustomerPatch{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"customer": customerResp(customer)})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Catalog.DeleteCustomer(id); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "customer deleted"})
}
