package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
)

// ShopHandler handles shop registration, membership and settings requests
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// Register handles creating a shop owned by the authenticated user
func (h *ShopHandler) Register(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required,min=2,max=255"`
		ShopType string `json:"shop_type"`
		Address  string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.RegisterShop(c.Request.Context(), &service.RegisterShopInput{
		OwnerID:  *userID,
		Name:     req.Name,
		ShopType: req.ShopType,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shop registered successfully", shop)
}

// List handles listing the shops the authenticated user belongs to
func (h *ShopHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shops, err := h.shopService.ListShops(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shops retrieved successfully", shops)
}

// Get handles getting a single shop
func (h *ShopHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	shop, err := h.shopService.GetShop(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop retrieved successfully", shop)
}

// UpdateSettings handles replacing a shop's settings
func (h *ShopHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	var req struct {
		Currency      string           `json:"currency"`
		Timezone      string           `json:"timezone"`
		TaxRate       *decimal.Decimal `json:"tax_rate"`
		TaxLabel      string           `json:"tax_label"`
		InvoicePrefix string           `json:"invoice_prefix"`
		POPrefix      string           `json:"po_prefix"`
		ExpensePrefix string           `json:"expense_prefix"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.UpdateSettings(c.Request.Context(), id, *userID, entity.ShopSettings{
		Currency:      req.Currency,
		Timezone:      req.Timezone,
		TaxRate:       req.TaxRate,
		TaxLabel:      req.TaxLabel,
		InvoicePrefix: req.InvoicePrefix,
		POPrefix:      req.POPrefix,
		ExpensePrefix: req.ExpensePrefix,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop settings updated successfully", shop)
}

// AddMember handles adding a user to a shop
func (h *ShopHandler) AddMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.shopService.AddMember(c.Request.Context(), id, *userID, req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", membership)
}

// RemoveMember handles removing a user from a shop
func (h *ShopHandler) RemoveMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.shopService.RemoveMember(c.Request.Context(), id, *userID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
