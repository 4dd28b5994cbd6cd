package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetShopID extracts the active shop ID from the Gin context
func GetShopID(c *gin.Context) uuid.UUID {
	shopIDVal, exists := c.Get("shop_id")
	if !exists {
		return uuid.Nil
	}
	shopID, ok := shopIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return shopID
}

// GetShopRole extracts the caller's role in the active shop
func GetShopRole(c *gin.Context) string {
	role, exists := c.Get("shop_role")
	if !exists {
		return ""
	}
	return role.(string)
}
