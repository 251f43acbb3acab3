package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/fieldlink/fieldlink-api/services"
	"github.com/fieldlink/fieldlink-api/utils"
	"github.com/gin-gonic/gin"
)

// CreateCheckIn handles POST /api/v1/checkins - logs a field visit
// (marketing staff). Accepts multipart form data with an optional photo.
func CreateCheckIn(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	location := c.PostForm("location")
	note := c.PostForm("note")

	var shopID *uint
	if raw := c.PostForm("shop_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "shop_id must be a number",
				},
			})
			return
		}
		id := uint(parsed)
		shopID = &id
	}

	if shopID == nil && location == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Either shop_id or location is required",
			},
		})
		return
	}

	db := config.GetDB()
	if shopID != nil {
		var shop models.Shop
		if err := db.First(&shop, *shopID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SHOP_NOT_FOUND",
					"message": "Shop not found",
				},
			})
			return
		}
	}

	var latitude, longitude float64
	if raw := c.PostForm("latitude"); raw != "" {
		latitude, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "latitude must be a number",
				},
			})
			return
		}
	}
	if raw := c.PostForm("longitude"); raw != "" {
		longitude, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "longitude must be a number",
				},
			})
			return
		}
	}

	checkIn := models.CheckIn{
		UserID:    user.ID,
		ShopID:    shopID,
		Location:  location,
		Latitude:  latitude,
		Longitude: longitude,
		Note:      note,
	}

	// Optional photo: S3 when configured, local uploads directory otherwise
	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			uploadErr := err.(*utils.FileUploadError)
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		key, err := storeImage(fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_ERROR",
					"message": "Failed to store check-in image",
				},
			})
			return
		}
		checkIn.ImageS3Key = &key
	}

	if err := db.Create(&checkIn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create check-in",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("Shop").First(&checkIn, checkIn.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load check-in details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    checkIn,
	})
}

// ListCheckIns handles GET /api/v1/checkins - marketing staff see their own
// check-ins, admins see all
func ListCheckIns(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.CheckIn{})
	if user.Role != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count check-ins",
			},
		})
		return
	}

	var checkIns []models.CheckIn
	if err := query.
		Preload("User").
		Preload("Shop").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&checkIns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch check-ins",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       checkIns,
		"pagination": paginationMeta(page, limit, total),
	})
}

// storeImage stores an uploaded image via S3 when configured, falling back
// to the local uploads directory.
func storeImage(fileHeader *multipart.FileHeader) (string, error) {
	if s3Service := services.GetS3Service(); s3Service != nil {
		return s3Service.UploadFile(fileHeader)
	}
	return utils.SaveUploadedFile(fileHeader, utils.UploadDir)
}
