package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/fieldlink/fieldlink-api/services"
	"github.com/gin-gonic/gin"
)

// inquiryService builds the workflow service on the active database handle.
func inquiryService() *services.InquiryService {
	return services.NewInquiryService(config.GetDB())
}

// respondInquiryError maps inquiry workflow failures onto the error envelope.
func respondInquiryError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrInquiryNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INQUIRY_NOT_FOUND",
				"message": "Sales inquiry not found",
			},
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Message,
			},
		})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Operation not permitted in the inquiry's current status",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to process sales inquiry",
			},
		})
	}
}

// CreateInquiryRequest represents the request body for raising a sales inquiry
type CreateInquiryRequest struct {
	DistributorID *uint  `json:"distributor_id"`
	ShopID        *uint  `json:"shop_id"`
	Brand         string `json:"brand" binding:"required"`
	Variant       string `json:"variant" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	Note          string `json:"note"`
}

// ReviewInquiryRequest represents the manager review body
type ReviewInquiryRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// DispatchInquiryRequest represents the godown dispatch body
type DispatchInquiryRequest struct {
	DispatchDate      string `json:"dispatch_date" binding:"required"`
	DispatchReference string `json:"dispatch_reference" binding:"required"`
}

// CreateInquiry handles POST /api/v1/inquiries (marketing staff and distributors)
func CreateInquiry(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	var req CreateInquiryRequest
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
	if req.DistributorID != nil {
		var distributor models.Distributor
		if err := db.First(&distributor, *req.DistributorID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DISTRIBUTOR_NOT_FOUND",
					"message": "Distributor not found",
				},
			})
			return
		}
	}
	if req.ShopID != nil {
		var shop models.Shop
		if err := db.First(&shop, *req.ShopID).Error; err != nil {
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

	inquiry := models.SalesInquiry{
		DistributorID: req.DistributorID,
		ShopID:        req.ShopID,
		Brand:         req.Brand,
		Variant:       req.Variant,
		Quantity:      req.Quantity,
		Note:          req.Note,
		Status:        models.InquiryStatusPending,
		CreatedByID:   user.ID,
	}

	if err := db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create sales inquiry",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    inquiry,
	})
}

// ReviewInquiry handles PUT /api/v1/inquiries/:id/review (manager)
func ReviewInquiry(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	inquiryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ReviewInquiryRequest
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

	inquiry, err := inquiryService().Review(c.Request.Context(), inquiryID, user.ID, req.Approved, req.Comment)
	if err != nil {
		respondInquiryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inquiry,
	})
}

// DispatchInquiry handles PUT /api/v1/inquiries/:id/dispatch (godown staff)
func DispatchInquiry(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	inquiryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DispatchInquiryRequest
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

	dispatchDate, err := time.Parse("2006-01-02", req.DispatchDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "dispatch_date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	inquiry, err := inquiryService().Dispatch(c.Request.Context(), inquiryID, user.ID, dispatchDate, req.DispatchReference)
	if err != nil {
		respondInquiryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inquiry,
	})
}

// ListInquiries handles GET /api/v1/inquiries - distributors see their own,
// staff roles see all
func ListInquiries(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.SalesInquiry{})
	if user.Role == models.RoleDistributor {
		query = query.Where("created_by_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count inquiries",
			},
		})
		return
	}

	var inquiries []models.SalesInquiry
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch inquiries",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       inquiries,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetInquiry handles GET /api/v1/inquiries/:id
func GetInquiry(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	inquiryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	inquiry, err := inquiryService().Get(c.Request.Context(), inquiryID)
	if err != nil {
		respondInquiryError(c, err)
		return
	}

	if user.Role == models.RoleDistributor && inquiry.CreatedByID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this inquiry",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inquiry,
	})
}
