package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/fieldlink/fieldlink-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Distributor{},
		&models.Shop{},
		&models.Product{},
		&models.Variant{},
		&models.CheckIn{},
		&models.DamageClaim{},
		&models.Replacement{},
		&models.SalesInquiry{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// setupTestRouter creates a Gin router in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware simulates the JWT middleware by injecting the Auth0
// subject and validated claims into the context
func mockAuthMiddleware(auth0ID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: auth0ID},
			CustomClaims:     &middleware.CustomClaims{Role: role},
		})
		c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, auth0ID, role string) models.User {
	user := models.User{
		Auth0ID: auth0ID,
		Name:    "Test " + role,
		Email:   auth0ID + "@example.com",
		Role:    role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestDistributor(t *testing.T, db *gorm.DB) models.Distributor {
	distributor := models.Distributor{
		Name:  "Eastern Traders",
		Phone: "0123456789",
	}
	if err := db.Create(&distributor).Error; err != nil {
		t.Fatalf("Failed to create test distributor: %v", err)
	}
	return distributor
}

// setupClaimRouter wires the claim routes with the same role gates the real
// server uses, authenticated as the given identity.
func setupClaimRouter(auth0ID, role string) *gin.Engine {
	router := setupTestRouter()
	authed := router.Group("/api/v1")
	authed.Use(mockAuthMiddleware(auth0ID, role))
	{
		authed.POST("/claims", middleware.RequireRole(models.RoleMarketing, models.RoleDistributor), CreateClaim)
		authed.GET("/claims", ListClaims)
		authed.GET("/claims/tracking/:trackingId", GetClaimByTracking)
		authed.GET("/claims/:id", GetClaim)
		authed.PUT("/claims/:id/decision", middleware.RequireRole(models.RoleManager), DecideClaim)
		authed.PUT("/claims/:id/comment", middleware.RequireRole(models.RoleManager), AnnotateClaim)
		authed.DELETE("/claims/:id", middleware.RequireRole(models.RoleAdmin), DeleteClaim)
		authed.POST("/replacements", middleware.RequireRole(models.RoleGodown), CreateReplacement)
	}
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	response := parseEnvelope(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no error object: %s", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// performClaimForm posts a multipart claim form with optional image files
// under the "images" field.
func performClaimForm(router *gin.Engine, fields map[string]string, imageNames ...string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	for _, name := range imageNames {
		part, _ := writer.CreateFormFile("images", name)
		_, _ = part.Write([]byte("fake image bytes"))
	}
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/v1/claims", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateClaim(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		fields         map[string]string
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "marketing files a claim",
			role: models.RoleMarketing,
			fields: map[string]string{
				"brand":       "Acme",
				"variant":     "Classic",
				"size":        "500ml",
				"pieces":      "10",
				"damage_type": models.DamageTypeBox,
				"reason":      "Crushed in transit",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "distributor files a claim",
			role: models.RoleDistributor,
			fields: map[string]string{
				"brand":       "Acme",
				"variant":     "Classic",
				"pieces":      "3",
				"damage_type": models.DamageTypeSeal,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing required fields",
			role: models.RoleMarketing,
			fields: map[string]string{
				"brand": "Acme",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "zero pieces rejected",
			role: models.RoleMarketing,
			fields: map[string]string{
				"brand":       "Acme",
				"variant":     "Classic",
				"pieces":      "0",
				"damage_type": models.DamageTypeBox,
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "unknown damage type rejected",
			role: models.RoleMarketing,
			fields: map[string]string{
				"brand":       "Acme",
				"variant":     "Classic",
				"pieces":      "5",
				"damage_type": "Meteor Strike",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "manager cannot file claims",
			role: models.RoleManager,
			fields: map[string]string{
				"brand":       "Acme",
				"variant":     "Classic",
				"pieces":      "5",
				"damage_type": models.DamageTypeBox,
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			auth0ID := "auth0|" + tt.role
			createTestUser(t, db, auth0ID, tt.role)
			distributor := createTestDistributor(t, db)
			tt.fields["distributor_id"] = strconv.Itoa(int(distributor.ID))

			router := setupClaimRouter(auth0ID, tt.role)
			w := performClaimForm(router, tt.fields)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseEnvelope(t, w)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, true, response["success"])
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Pending", data["status"])
				_, hasTracking := data["tracking_id"]
				assert.False(t, hasTracking, "pending claims must not expose a tracking ID")
			} else {
				assert.Equal(t, false, response["success"])
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestCreateClaim_UnknownDistributor(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|marketing", models.RoleMarketing)

	router := setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w := performClaimForm(router, map[string]string{
		"distributor_id": "9999",
		"brand":          "Acme",
		"variant":        "Classic",
		"pieces":         "5",
		"damage_type":    models.DamageTypeBox,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DISTRIBUTOR_NOT_FOUND", errorCode(t, w))
}

func TestCreateClaim_WithImages(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	distributor := createTestDistributor(t, db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	router := setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w := performClaimForm(router, map[string]string{
		"distributor_id": strconv.Itoa(int(distributor.ID)),
		"brand":          "Acme",
		"variant":        "Classic",
		"pieces":         "10",
		"damage_type":    models.DamageTypeBox,
	}, "crate1.jpg", "crate2.png")

	assert.Equal(t, http.StatusCreated, w.Code)
	response := parseEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	images := data["images"].([]interface{})
	assert.Len(t, images, 2)
	for _, key := range images {
		assert.True(t, mockS3.FileExists(key.(string)), "image key %v should be stored", key)
	}
}

func TestCreateClaim_RejectsBadImageFormat(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	distributor := createTestDistributor(t, db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	router := setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w := performClaimForm(router, map[string]string{
		"distributor_id": strconv.Itoa(int(distributor.ID)),
		"brand":          "Acme",
		"variant":        "Classic",
		"pieces":         "10",
		"damage_type":    models.DamageTypeBox,
	}, "notes.pdf")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE_FORMAT", errorCode(t, w))

	// No claim row may exist after the rejected upload
	var count int64
	db.Model(&models.DamageClaim{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func fileTestClaim(t *testing.T, db *gorm.DB, creator models.User, distributor models.Distributor, pieces int) models.DamageClaim {
	claim := models.DamageClaim{
		DistributorID:   distributor.ID,
		DistributorName: distributor.Name,
		Brand:           "Acme",
		Variant:         "Classic",
		Pieces:          pieces,
		DamageType:      models.DamageTypeBox,
		Status:          models.ClaimStatusPending,
		CreatedByID:     creator.ID,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("Failed to create test claim: %v", err)
	}
	return claim
}

func TestDecideClaim(t *testing.T) {
	pieces4 := 4

	tests := []struct {
		name           string
		claimPieces    int
		body           gin.H
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "full approval",
			claimPieces:    10,
			body:           gin.H{"status": models.ClaimStatusApproved, "comment": "Verified"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "partial approval",
			claimPieces:    10,
			body:           gin.H{"status": models.ClaimStatusPartiallyApproved, "approved_pieces": pieces4},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejection",
			claimPieces:    10,
			body:           gin.H{"status": models.ClaimStatusRejected, "comment": "Not covered"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "partial approval without pieces",
			claimPieces:    10,
			body:           gin.H{"status": models.ClaimStatusPartiallyApproved},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "partial approval above claim pieces",
			claimPieces:    3,
			body:           gin.H{"status": models.ClaimStatusPartiallyApproved, "approved_pieces": 5},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "unknown status",
			claimPieces:    10,
			body:           gin.H{"status": "Escalated"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
			createTestUser(t, db, "auth0|manager", models.RoleManager)
			distributor := createTestDistributor(t, db)
			claim := fileTestClaim(t, db, creator, distributor, tt.claimPieces)

			router := setupClaimRouter("auth0|manager", models.RoleManager)
			w := performJSON(router, "PUT", fmt.Sprintf("/api/v1/claims/%d/decision", claim.ID), tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				response := parseEnvelope(t, w)
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.body["status"], data["status"])

				switch tt.body["status"] {
				case models.ClaimStatusApproved:
					assert.NotEmpty(t, data["tracking_id"])
					_, hasPieces := data["approved_pieces"]
					assert.False(t, hasPieces)
				case models.ClaimStatusPartiallyApproved:
					assert.NotEmpty(t, data["tracking_id"])
					assert.Equal(t, float64(pieces4), data["approved_pieces"])
				case models.ClaimStatusRejected:
					_, hasTracking := data["tracking_id"]
					assert.False(t, hasTracking, "rejected claims must not expose a tracking ID")
					_, hasPieces := data["approved_pieces"]
					assert.False(t, hasPieces)
				}
			} else {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestDecideClaim_RoleAndStateGuards(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	createTestUser(t, db, "auth0|manager", models.RoleManager)
	distributor := createTestDistributor(t, db)
	claim := fileTestClaim(t, db, creator, distributor, 10)

	// Marketing staff cannot decide
	marketingRouter := setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w := performJSON(marketingRouter, "PUT", fmt.Sprintf("/api/v1/claims/%d/decision", claim.ID), gin.H{
		"status": models.ClaimStatusApproved,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	managerRouter := setupClaimRouter("auth0|manager", models.RoleManager)

	// First decision succeeds
	w = performJSON(managerRouter, "PUT", fmt.Sprintf("/api/v1/claims/%d/decision", claim.ID), gin.H{
		"status": models.ClaimStatusApproved,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Second decision conflicts
	w = performJSON(managerRouter, "PUT", fmt.Sprintf("/api/v1/claims/%d/decision", claim.ID), gin.H{
		"status": models.ClaimStatusRejected,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))

	// Unknown claim
	w = performJSON(managerRouter, "PUT", "/api/v1/claims/9999/decision", gin.H{
		"status": models.ClaimStatusApproved,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CLAIM_NOT_FOUND", errorCode(t, w))
}

func TestAnnotateClaim(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	createTestUser(t, db, "auth0|manager", models.RoleManager)
	distributor := createTestDistributor(t, db)
	claim := fileTestClaim(t, db, creator, distributor, 10)

	router := setupClaimRouter("auth0|manager", models.RoleManager)

	w := performJSON(router, "PUT", fmt.Sprintf("/api/v1/claims/%d/comment", claim.ID), gin.H{
		"manager_comment": "Escalated to regional office",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Escalated to regional office", data["manager_comment"])
	assert.Equal(t, "Pending", data["status"])

	// Empty comment fails binding
	w = performJSON(router, "PUT", fmt.Sprintf("/api/v1/claims/%d/comment", claim.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func decideTestClaim(t *testing.T, claimID uint, managerID uint, status string) string {
	decided, err := claimService().Decide(context.Background(), claimID, managerID, services.Decision{Status: status})
	if err != nil {
		t.Fatalf("Failed to decide claim: %v", err)
	}
	if decided.TrackingID == nil {
		return ""
	}
	return *decided.TrackingID
}

func TestCreateReplacement(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	manager := createTestUser(t, db, "auth0|manager", models.RoleManager)
	createTestUser(t, db, "auth0|godown", models.RoleGodown)
	distributor := createTestDistributor(t, db)
	claim := fileTestClaim(t, db, creator, distributor, 10)

	trackingID := decideTestClaim(t, claim.ID, manager.ID, models.ClaimStatusApproved)

	router := setupClaimRouter("auth0|godown", models.RoleGodown)
	body := gin.H{
		"tracking_id":      trackingID,
		"dispatch_date":    "2025-03-14",
		"approved_by_name": "Depot Head",
		"channelled_to":    "Eastern Depot",
		"reference_number": "REF-7781",
	}

	w := performJSON(router, "POST", "/api/v1/replacements", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	response := parseEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	replacement := data["replacement"].(map[string]interface{})
	assert.Equal(t, "REF-7781", replacement["reference_number"])

	// Repeating the dispatch conflicts
	w = performJSON(router, "POST", "/api/v1/replacements", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "REPLACEMENT_EXISTS", errorCode(t, w))

	// Unknown tracking ID
	body["tracking_id"] = "DMG-0-000000"
	w = performJSON(router, "POST", "/api/v1/replacements", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CLAIM_NOT_FOUND", errorCode(t, w))
}

func TestCreateReplacement_RequiresGodownRole(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|manager", models.RoleManager)

	router := setupClaimRouter("auth0|manager", models.RoleManager)
	w := performJSON(router, "POST", "/api/v1/replacements", gin.H{
		"tracking_id":      "DMG-1-abc123",
		"dispatch_date":    "2025-03-14",
		"approved_by_name": "Depot Head",
		"channelled_to":    "Eastern Depot",
		"reference_number": "REF-1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetClaimByTracking(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	manager := createTestUser(t, db, "auth0|manager", models.RoleManager)
	distributor := createTestDistributor(t, db)
	claim := fileTestClaim(t, db, creator, distributor, 10)

	trackingID := decideTestClaim(t, claim.ID, manager.ID, models.ClaimStatusApproved)

	router := setupClaimRouter("auth0|marketing", models.RoleMarketing)

	w := performJSON(router, "GET", "/api/v1/claims/tracking/"+trackingID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(claim.ID), data["id"])

	w = performJSON(router, "GET", "/api/v1/claims/tracking/DMG-0-000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The static tracking route must coexist with the :id route
	w = performJSON(router, "GET", fmt.Sprintf("/api/v1/claims/%d", claim.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListClaims_DistributorScoping(t *testing.T) {
	db := setupTestDB(t)
	distributorUser := createTestUser(t, db, "auth0|distributor", models.RoleDistributor)
	otherUser := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	distributor := createTestDistributor(t, db)

	fileTestClaim(t, db, distributorUser, distributor, 5)
	fileTestClaim(t, db, otherUser, distributor, 7)
	fileTestClaim(t, db, otherUser, distributor, 9)

	// Distributor sees only their own claim
	router := setupClaimRouter("auth0|distributor", models.RoleDistributor)
	w := performJSON(router, "GET", "/api/v1/claims", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseEnvelope(t, w)
	assert.Len(t, response["data"], 1)

	// Staff see all claims
	router = setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w = performJSON(router, "GET", "/api/v1/claims", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = parseEnvelope(t, w)
	assert.Len(t, response["data"], 3)

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total"])
}

func TestGetClaim_DistributorOwnership(t *testing.T) {
	db := setupTestDB(t)
	distributorUser := createTestUser(t, db, "auth0|distributor", models.RoleDistributor)
	otherUser := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	distributor := createTestDistributor(t, db)

	foreign := fileTestClaim(t, db, otherUser, distributor, 5)
	own := fileTestClaim(t, db, distributorUser, distributor, 5)

	router := setupClaimRouter("auth0|distributor", models.RoleDistributor)

	w := performJSON(router, "GET", fmt.Sprintf("/api/v1/claims/%d", own.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "GET", fmt.Sprintf("/api/v1/claims/%d", foreign.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestDeleteClaim(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	createTestUser(t, db, "auth0|admin", models.RoleAdmin)
	distributor := createTestDistributor(t, db)
	claim := fileTestClaim(t, db, creator, distributor, 10)

	// Non-admin denied
	router := setupClaimRouter("auth0|marketing", models.RoleMarketing)
	w := performJSON(router, "DELETE", fmt.Sprintf("/api/v1/claims/%d", claim.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminRouter := setupClaimRouter("auth0|admin", models.RoleAdmin)
	w = performJSON(adminRouter, "DELETE", fmt.Sprintf("/api/v1/claims/%d", claim.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(adminRouter, "DELETE", fmt.Sprintf("/api/v1/claims/%d", claim.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|manager", models.RoleManager)

	router := setupClaimRouter("auth0|manager", models.RoleManager)
	w := performJSON(router, "PUT", "/api/v1/claims/not-a-number/decision", gin.H{
		"status": models.ClaimStatusApproved,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
}
