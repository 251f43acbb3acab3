package controllers

import (
	"net/http"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/gin-gonic/gin"
)

// CreateShopRequest represents the request body for registering a shop
type CreateShopRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"owner_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address" binding:"required"`
	Territory string `json:"territory"`
}

// ReviewShopRequest represents the request body for the admin review step
type ReviewShopRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// CreateShop handles POST /api/v1/shops - registers a shop (marketing staff)
func CreateShop(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	shop := models.Shop{
		Name:        req.Name,
		OwnerName:   req.OwnerName,
		Phone:       req.Phone,
		Address:     req.Address,
		Territory:   req.Territory,
		Status:      models.ShopStatusPending,
		CreatedByID: user.ID,
	}

	db := config.GetDB()
	if err := db.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to register shop",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    shop,
	})
}

// ReviewShop handles PUT /api/v1/shops/:id/review - approves or rejects a
// pending shop registration (admin). A shop is reviewed exactly once.
func ReviewShop(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	shopID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ReviewShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := models.ShopStatusApproved
	if !req.Approved {
		status = models.ShopStatusRejected
	}

	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by_id": user.ID,
	}
	if req.Comment != "" {
		updates["review_comment"] = req.Comment
	}

	// Conditional update: only a pending shop can be reviewed.
	db := config.GetDB()
	result := db.Model(&models.Shop{}).
		Where("id = ? AND status = ?", shopID, models.ShopStatusPending).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to review shop",
			},
		})
		return
	}

	var shop models.Shop
	if result.RowsAffected == 0 {
		if err := db.First(&shop, shopID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SHOP_NOT_FOUND",
					"message": "Shop not found",
				},
			})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Shop has already been reviewed",
			},
		})
		return
	}

	if err := db.Preload("CreatedBy").Preload("ReviewedBy").First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load shop details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shop,
	})
}

// ListShops handles GET /api/v1/shops - lists shops with pagination
func ListShops(c *gin.Context) {
	if _, err := middleware.MustCurrentUser(c); err != nil {
		respondUserLookupError(c, err)
		return
	}

	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.Shop{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if territory := c.Query("territory"); territory != "" {
		query = query.Where("territory = ?", territory)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count shops",
			},
		})
		return
	}

	var shops []models.Shop
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch shops",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       shops,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetShop handles GET /api/v1/shops/:id
func GetShop(c *gin.Context) {
	if _, err := middleware.MustCurrentUser(c); err != nil {
		respondUserLookupError(c, err)
		return
	}

	shopID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var shop models.Shop
	if err := db.Preload("CreatedBy").Preload("ReviewedBy").First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shop,
	})
}
