// internal/handlers/product.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor/inventory-backend/internal/services"
	"github.com/shopfloor/inventory-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListAll()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.DataResponse(c, services.DeriveViews(products, time.Now()))
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid product payload: "+err.Error())
		return
	}

	if _, err := h.productService.Create(&req); err != nil {
		if errors.Is(err, services.ErrConstraintViolation) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c)
}

// POST /api/products/bulk
func (h *ProductHandler) BulkUpsertProducts(c *gin.Context) {
	var reqs []services.ProductRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		utils.BadRequestResponse(c, "request body must be an array of products: "+err.Error())
		return
	}

	count, err := h.productService.BulkUpsert(reqs)
	if err != nil {
		if errors.Is(err, services.ErrConstraintViolation) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.BulkSuccessResponse(c, count)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid product payload: "+err.Error())
		return
	}

	// Updating an id that does not exist is a documented no-op success.
	if err := h.productService.Update(id, &req); err != nil {
		if errors.Is(err, services.ErrConstraintViolation) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Param("id")); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// Idempotent: deleting an absent id still succeeds.
	utils.SuccessResponse(c)
}

// GET /api/products/expiring
func (h *ProductHandler) GetExpiringProducts(c *gin.Context) {
	products, err := h.productService.ListWithExpiry()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	now := time.Now()
	views := services.DeriveViews(products, now)
	utils.DataResponse(c, services.ExpiringWithin(views, now, services.DefaultExpiryWindowDays))
}

// GET /api/products/report/value
func (h *ProductHandler) GetValueReport(c *gin.Context) {
	products, err := h.productService.ListAll()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	views := services.DeriveViews(products, time.Now())
	utils.DataResponse(c, services.ValueByCategory(views))
}

// GET /api/products/report/category/:category
func (h *ProductHandler) GetCategoryReport(c *gin.Context) {
	products, err := h.productService.ListByCategory(c.Param("category"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.DataResponse(c, services.DeriveViews(products, time.Now()))
}
