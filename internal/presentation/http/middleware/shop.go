package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/dto/response"
)

// ShopMiddleware resolves the active shop from the X-Shop-ID header, verifies
// the authenticated user is a member, and stamps the shop onto both the Gin
// context and the request context so repositories scope every query to it.
func ShopMiddleware(membershipRepo repository.ShopMembershipRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopIDStr := c.GetHeader("X-Shop-ID")
		if shopIDStr == "" {
			response.BadRequest(c, "X-Shop-ID header is required")
			c.Abort()
			return
		}

		shopID, err := uuid.Parse(shopIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid X-Shop-ID header")
			c.Abort()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		userID, ok := userIDVal.(uuid.UUID)
		if !ok || userID == uuid.Nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		membership, err := membershipRepo.Get(c.Request.Context(), shopID, userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if membership == nil {
			// Non-members get the same answer as for a shop that does not
			// exist, so shop IDs cannot be probed.
			response.NotFound(c, "Shop not found")
			c.Abort()
			return
		}

		c.Set("shop_id", shopID)
		c.Set("shop_role", membership.Role)

		ctx := infraRepo.WithShop(c.Request.Context(), shopID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetShopID retrieves the shop ID from gin context
func GetShopID(c *gin.Context) uuid.UUID {
	shopID, exists := c.Get("shop_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := shopID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
