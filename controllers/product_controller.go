package controllers

import (
	"net/http"
	"strings"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/gin-gonic/gin"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Brand string `json:"brand" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// CreateVariantRequest represents the request body for adding a variant
type CreateVariantRequest struct {
	Size string `json:"size" binding:"required"`
	Unit string `json:"unit"`
	SKU  string `json:"sku" binding:"required"`
}

// CreateProduct handles POST /api/v1/products (admin)
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
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

	product := models.Product{
		Brand: req.Brand,
		Name:  req.Name,
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListProducts handles GET /api/v1/products
func ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.Product{})
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count products",
			},
		})
		return
	}

	var products []models.Product
	if err := query.
		Preload("Variants").
		Order("brand ASC, name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.Preload("Variants").First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateVariant handles POST /api/v1/products/:id/variants (admin)
func CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreateVariantRequest
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

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	variant := models.Variant{
		ProductID: product.ID,
		Size:      req.Size,
		Unit:      req.Unit,
		SKU:       req.SKU,
	}

	if err := db.Create(&variant).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SKU_EXISTS",
					"message": "A variant with this SKU already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create variant",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    variant,
	})
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
}

// UpdateProduct handles PUT /api/v1/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
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

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}

	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update product",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id (admin, soft delete).
// Variants go with the product.
func DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Product{}, productID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Where("product_id = ?", productID).Delete(&models.Variant{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product variants",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// DeleteVariant handles DELETE /api/v1/variants/:id (admin, soft delete)
func DeleteVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Variant{}, variantID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete variant",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VARIANT_NOT_FOUND",
				"message": "Variant not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
