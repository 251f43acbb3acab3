package controllers

import (
	"net/http"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/gin-gonic/gin"
)

// CreateDistributorRequest represents the request body for creating a distributor
type CreateDistributorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	Territory     string `json:"territory"`
}

// UpdateDistributorRequest represents the request body for updating a distributor
type UpdateDistributorRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	Territory     string `json:"territory"`
}

// CreateDistributor handles POST /api/v1/distributors (admin)
func CreateDistributor(c *gin.Context) {
	var req CreateDistributorRequest
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

	distributor := models.Distributor{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Territory:     req.Territory,
	}

	db := config.GetDB()
	if err := db.Create(&distributor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create distributor",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    distributor,
	})
}

// ListDistributors handles GET /api/v1/distributors
func ListDistributors(c *gin.Context) {
	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.Distributor{})
	if territory := c.Query("territory"); territory != "" {
		query = query.Where("territory = ?", territory)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count distributors",
			},
		})
		return
	}

	var distributors []models.Distributor
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&distributors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch distributors",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       distributors,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetDistributor handles GET /api/v1/distributors/:id
func GetDistributor(c *gin.Context) {
	distributorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var distributor models.Distributor
	if err := db.First(&distributor, distributorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRIBUTOR_NOT_FOUND",
				"message": "Distributor not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    distributor,
	})
}

// UpdateDistributor handles PUT /api/v1/distributors/:id (admin)
func UpdateDistributor(c *gin.Context) {
	distributorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDistributorRequest
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
	var distributor models.Distributor
	if err := db.First(&distributor, distributorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRIBUTOR_NOT_FOUND",
				"message": "Distributor not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ContactPerson != "" {
		updates["contact_person"] = req.ContactPerson
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Territory != "" {
		updates["territory"] = req.Territory
	}

	if len(updates) > 0 {
		if err := db.Model(&distributor).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update distributor",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    distributor,
	})
}

// DeleteDistributor handles DELETE /api/v1/distributors/:id (admin, soft delete)
func DeleteDistributor(c *gin.Context) {
	distributorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Distributor{}, distributorID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete distributor",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRIBUTOR_NOT_FOUND",
				"message": "Distributor not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
