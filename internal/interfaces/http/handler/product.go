package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/jaysam/backend/internal/application/catalog"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/jaysam/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog browsing and product administration
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProductsRequest represents catalog list query parameters
type ListProductsRequest struct {
	Page            int     `form:"page" binding:"omitempty,min=1"`
	PageSize        int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search          string  `form:"search"`
	TimberType      string  `form:"timber_type"`
	Category        string  `form:"category"`
	Grade           string  `form:"grade"`
	MinPrice        *string `form:"min_price"`
	MaxPrice        *string `form:"max_price"`
	MinLength       *string `form:"min_length"`
	MaxLength       *string `form:"max_length"`
	FeaturedOnly    bool    `form:"featured"`
	IncludeInactive bool    `form:"include_inactive"`
}

// CreateProductRequest represents the product creation request body
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	TimberType      string          `json:"timber_type" binding:"required,max=100"`
	Category        string          `json:"category" binding:"required"`
	Grade           string          `json:"grade" binding:"max=50"`
	DimensionLabel  string          `json:"dimension_label" binding:"required,max=100"`
	Thickness       decimal.Decimal `json:"thickness" binding:"required"`
	Width           decimal.Decimal `json:"width" binding:"required"`
	Length          decimal.Decimal `json:"length" binding:"required"`
	Unit            string          `json:"unit" binding:"required,max=20"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit" binding:"required"`
	QuantityInStock decimal.Decimal `json:"quantity_in_stock"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url" binding:"omitempty,url"`
}

// UpdateProductRequest represents the product update request body
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Grade       string `json:"grade" binding:"max=50"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

// SetPriceRequest represents the price update request body
type SetPriceRequest struct {
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
}

// AdjustStockRequest represents the stock adjustment request body.
// Quantity is the new absolute stock level.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// SetFeaturedRequest represents the featured flag request body
type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// QuoteRequest represents the quote query parameters
type QuoteRequest struct {
	Quantity int `form:"quantity" binding:"required,min=1"`
}

// List returns a paginated product listing with filters
func (h *ProductHandler) List(c *gin.Context) {
	req := ListProductsRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := appcatalog.ListFilter{
		Page:            req.Page,
		PageSize:        req.PageSize,
		Search:          req.Search,
		TimberType:      req.TimberType,
		Grade:           req.Grade,
		FeaturedOnly:    req.FeaturedOnly,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Category != "" {
		category := catalog.Category(req.Category)
		if !category.IsValid() {
			h.BadRequest(c, "Unknown category: "+req.Category)
			return
		}
		filter.Category = &category
	}
	if req.MinPrice != nil {
		min, err := decimal.NewFromString(*req.MinPrice)
		if err != nil {
			h.BadRequest(c, "Invalid min_price")
			return
		}
		filter.MinPrice = &min
	}
	if req.MaxPrice != nil {
		max, err := decimal.NewFromString(*req.MaxPrice)
		if err != nil {
			h.BadRequest(c, "Invalid max_price")
			return
		}
		filter.MaxPrice = &max
	}
	if req.MinLength != nil {
		min, err := decimal.NewFromString(*req.MinLength)
		if err != nil {
			h.BadRequest(c, "Invalid min_length")
			return
		}
		filter.MinLength = &min
	}
	if req.MaxLength != nil {
		max, err := decimal.NewFromString(*req.MaxLength)
		if err != nil {
			h.BadRequest(c, "Invalid max_length")
			return
		}
		filter.MaxLength = &max
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, req.Page, req.PageSize)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Featured returns the featured product selection
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.productService.Featured(c.Request.Context(), 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// TimberTypes returns the distinct timber types with variant counts
func (h *ProductHandler) TimberTypes(c *gin.Context) {
	types, err := h.productService.TimberTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, types)
}

// SizeVariants returns all active size variants of a timber type
func (h *ProductHandler) SizeVariants(c *gin.Context) {
	timberType := c.Param("type")
	if timberType == "" {
		h.BadRequest(c, "Timber type is required")
		return
	}

	variants, err := h.productService.SizeVariants(c.Request.Context(), timberType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, variants)
}

// Quote returns a price calculation for a product and quantity
func (h *ProductHandler) Quote(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}

	quote, err := h.productService.Quote(c.Request.Context(), uuid.MustParse(idReq.ID), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// Create creates a new catalog product
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category := catalog.Category(req.Category)
	if !category.IsValid() {
		h.BadRequest(c, "Unknown category: "+req.Category)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), appcatalog.CreateProductRequest{
		Name:            req.Name,
		TimberType:      req.TimberType,
		Category:        category,
		Grade:           req.Grade,
		DimensionLabel:  req.DimensionLabel,
		Thickness:       req.Thickness,
		Width:           req.Width,
		Length:          req.Length,
		Unit:            req.Unit,
		PricePerUnit:    req.PricePerUnit,
		QuantityInStock: req.QuantityInStock,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update updates a product's descriptive attributes
func (h *ProductHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), uuid.MustParse(idReq.ID), appcatalog.UpdateProductRequest{
		Name:        req.Name,
		Grade:       req.Grade,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetPrice updates a product's unit price
func (h *ProductHandler) SetPrice(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.SetPrice(c.Request.Context(), uuid.MustParse(idReq.ID), req.PricePerUnit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// AdjustStock sets a product's stock level
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), uuid.MustParse(idReq.ID), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetFeatured toggles a product's featured flag
func (h *ProductHandler) SetFeatured(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.productService.SetFeatured(c.Request.Context(), uuid.MustParse(idReq.ID), *req.Featured); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate removes a product from the storefront
func (h *ProductHandler) Deactivate(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate returns a product to the storefront
func (h *ProductHandler) Activate(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Activate(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
