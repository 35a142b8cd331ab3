// internal/api/handlers/product_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/service"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name         string  `json:"name" binding:"required"`
	Barcode      *string `json:"barcode"`
	CategoryID   int64   `json:"category_id" binding:"required"`
	AvgUnitPrice string  `json:"avg_unit_price"`
	ExpiresAt    *string `json:"expires_at"`
	CurrentStock int     `json:"current_stock"`
	OriginID     int64   `json:"origin_id"`
}

func (r *productRequest) toDomain() (*domain.Product, error) {
	product := &domain.Product{
		Name:         strings.TrimSpace(r.Name),
		Barcode:      r.Barcode,
		CategoryID:   r.CategoryID,
		CurrentStock: r.CurrentStock,
		OriginID:     r.OriginID,
	}

	if r.AvgUnitPrice != "" {
		price, err := decimal.NewFromString(r.AvgUnitPrice)
		if err != nil {
			return nil, errors.New("avg_unit_price must be a decimal number")
		}
		product.AvgUnitPrice = price
	}

	if r.ExpiresAt != nil && *r.ExpiresAt != "" {
		expires, err := time.ParseInLocation("2006-01-02", *r.ExpiresAt, time.UTC)
		if err != nil {
			return nil, errors.New("expires_at must be formatted as YYYY-MM-DD")
		}
		product.ExpiresAt = &expires
	}

	return product, nil
}

func (h *ProductHandler) List(c *gin.Context) {
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		products, err := h.service.Search(c.Request.Context(), search)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.ID = id

	if err := h.service.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, domain.ErrProductHasSales):
			c.JSON(http.StatusConflict, gin.H{"error": "product has recorded sales and cannot be deleted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ListSales(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))
	sales, err := h.service.ListSales(c.Request.Context(), id, days)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
