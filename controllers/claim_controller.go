package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/fieldlink/fieldlink-api/services"
	"github.com/fieldlink/fieldlink-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// claimService builds the lifecycle service on the active database handle.
func claimService() *services.ClaimService {
	return services.NewClaimService(services.NewGormClaimStore(config.GetDB()))
}

// respondClaimError maps the lifecycle failure taxonomy onto the API error
// envelope: NotFound 404, validation 400, state/conflict 409, the rest 500.
func respondClaimError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLAIM_NOT_FOUND",
				"message": "Damage claim not found",
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
				"message": "Operation not permitted in the claim's current status",
			},
		})
	case errors.Is(err, services.ErrReplacementExists):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPLACEMENT_EXISTS",
				"message": "A replacement is already attached to this claim",
			},
		})
	case errors.Is(err, services.ErrTrackingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRACKING_CONFLICT",
				"message": "Could not assign a unique tracking ID, please retry",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to process damage claim",
			},
		})
	}
}

// CreateClaim handles POST /api/v1/claims - files a new damage claim
// (marketing staff and distributors). Accepts multipart form data with
// optional damage photos under the "images" field.
func CreateClaim(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	brand := c.PostForm("brand")
	variant := c.PostForm("variant")
	damageType := c.PostForm("damage_type")
	if brand == "" || variant == "" || damageType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "brand, variant and damage_type are required",
			},
		})
		return
	}

	if !models.IsValidDamageType(damageType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown damage type",
			},
		})
		return
	}

	pieces, err := strconv.Atoi(c.PostForm("pieces"))
	if err != nil || pieces < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "pieces must be a positive number",
			},
		})
		return
	}

	distributorID, err := strconv.ParseUint(c.PostForm("distributor_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "distributor_id must be a number",
			},
		})
		return
	}

	db := config.GetDB()
	var distributor models.Distributor
	if err := db.First(&distributor, uint(distributorID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRIBUTOR_NOT_FOUND",
				"message": "Distributor not found",
			},
		})
		return
	}

	var manufacturingDate *time.Time
	if raw := c.PostForm("manufacturing_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "manufacturing_date must be in YYYY-MM-DD format",
				},
			})
			return
		}
		manufacturingDate = &parsed
	}

	// Damage photos: S3 when configured, local uploads directory otherwise.
	imageKeys := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fileHeader := range form.File["images"] {
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
						"message": "Failed to store claim image",
					},
				})
				return
			}
			imageKeys = append(imageKeys, key)
		}
	}

	images, err := json.Marshal(imageKeys)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to record claim images",
			},
		})
		return
	}

	claim := models.DamageClaim{
		DistributorID:     distributor.ID,
		DistributorName:   distributor.Name,
		Brand:             brand,
		Variant:           variant,
		Size:              c.PostForm("size"),
		Pieces:            pieces,
		ManufacturingDate: manufacturingDate,
		BatchDetails:      c.PostForm("batch_details"),
		DamageType:        damageType,
		Reason:            c.PostForm("reason"),
		Images:            datatypes.JSON(images),
		Status:            models.ClaimStatusPending,
		CreatedByID:       user.ID,
	}

	store := services.NewGormClaimStore(db)
	if err := store.Create(c.Request.Context(), &claim); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create damage claim",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// ListClaims handles GET /api/v1/claims - lists claims with pagination.
// Distributors see their own claims; staff roles see all.
func ListClaims(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	page, limit := parsePagination(c)

	db := config.GetDB()
	query := db.Model(&models.DamageClaim{})
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
				"message": "Failed to count claims",
			},
		})
		return
	}

	var claims []models.DamageClaim
	if err := query.
		Preload("Replacement").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&claims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch claims",
			},
		})
		return
	}

	views := make([]models.ClaimView, 0, len(claims))
	for i := range claims {
		views = append(views, claims[i].View())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetClaim handles GET /api/v1/claims/:id
func GetClaim(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	claimID, ok := parseIDParam(c)
	if !ok {
		return
	}

	claim, err := claimService().GetByID(c.Request.Context(), claimID)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	// Distributors can only view their own claims
	if user.Role == models.RoleDistributor && claim.CreatedByID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this claim",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// DecideClaimRequest represents the request body for deciding a claim
type DecideClaimRequest struct {
	Status         string  `json:"status" binding:"required"`
	Comment        *string `json:"comment"`
	ApprovedPieces *int    `json:"approved_pieces"`
}

// DecideClaim handles PUT /api/v1/claims/:id/decision - applies a manager's
// verdict to a pending claim
func DecideClaim(c *gin.Context) {
	user, err := middleware.MustCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	claimID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DecideClaimRequest
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

	claim, err := claimService().Decide(c.Request.Context(), claimID, user.ID, services.Decision{
		Status:         req.Status,
		Comment:        req.Comment,
		ApprovedPieces: req.ApprovedPieces,
	})
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// AnnotateClaimRequest represents the request body for the manager comment step
type AnnotateClaimRequest struct {
	ManagerComment string `json:"manager_comment" binding:"required"`
}

// AnnotateClaim handles PUT /api/v1/claims/:id/comment - records a manager
// comment without touching the claim's status
func AnnotateClaim(c *gin.Context) {
	claimID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AnnotateClaimRequest
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

	claim, err := claimService().Annotate(c.Request.Context(), claimID, req.ManagerComment)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// CreateReplacementRequest represents the request body for recording a
// replacement dispatch against a tracking ID
type CreateReplacementRequest struct {
	TrackingID      string `json:"tracking_id" binding:"required"`
	DispatchDate    string `json:"dispatch_date" binding:"required"`
	ApprovedByName  string `json:"approved_by_name" binding:"required"`
	ChannelledTo    string `json:"channelled_to" binding:"required"`
	ReferenceNumber string `json:"reference_number" binding:"required"`
}

// CreateReplacement handles POST /api/v1/replacements - attaches dispatch
// details to an approved claim (godown staff)
func CreateReplacement(c *gin.Context) {
	var req CreateReplacementRequest
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

	claim, err := claimService().CreateReplacement(c.Request.Context(), req.TrackingID, services.ReplacementInput{
		DispatchDate:    dispatchDate,
		ApprovedByName:  req.ApprovedByName,
		ChannelledTo:    req.ChannelledTo,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// GetClaimByTracking handles GET /api/v1/claims/tracking/:trackingId
func GetClaimByTracking(c *gin.Context) {
	trackingID := c.Param("trackingId")
	if trackingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Tracking ID is required",
			},
		})
		return
	}

	claim, err := claimService().GetByTracking(c.Request.Context(), trackingID)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    claim.View(),
	})
}

// DeleteClaim handles DELETE /api/v1/claims/:id - removes a claim outright
// (admin only)
func DeleteClaim(c *gin.Context) {
	claimID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := claimService().Delete(c.Request.Context(), claimID); err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// parseIDParam reads the :id path parameter as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid ID parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/limit query parameters with the defaults used
// across all list endpoints.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// paginationMeta builds the pagination envelope section.
func paginationMeta(page, limit int, total int64) gin.H {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return gin.H{
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	}
}
