package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupShopRouter(auth0ID, role string) *gin.Engine {
	router := setupTestRouter()
	authed := router.Group("/api/v1")
	authed.Use(mockAuthMiddleware(auth0ID, role))
	{
		authed.POST("/shops", middleware.RequireRole(models.RoleMarketing, models.RoleAdmin), CreateShop)
		authed.PUT("/shops/:id/review", middleware.RequireRole(models.RoleAdmin), ReviewShop)
		authed.GET("/shops", ListShops)
		authed.GET("/shops/:id", GetShop)
	}
	return router
}

func registerTestShop(t *testing.T, db *gorm.DB, creator models.User, territory string) models.Shop {
	shop := models.Shop{
		Name:        "Corner Store",
		Address:     "12 Market Road",
		Territory:   territory,
		Status:      models.ShopStatusPending,
		CreatedByID: creator.ID,
	}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("Failed to create test shop: %v", err)
	}
	return shop
}

func TestCreateShop(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|marketing", models.RoleMarketing)

	router := setupShopRouter("auth0|marketing", models.RoleMarketing)
	w := performJSON(router, "POST", "/api/v1/shops", gin.H{
		"name":      "Corner Store",
		"address":   "12 Market Road",
		"territory": "east",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := parseEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.ShopStatusPending, data["status"])
}

func TestCreateShop_RequiresMarketingRole(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|godown", models.RoleGodown)

	router := setupShopRouter("auth0|godown", models.RoleGodown)
	w := performJSON(router, "POST", "/api/v1/shops", gin.H{
		"name":    "Corner Store",
		"address": "12 Market Road",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewShop(t *testing.T) {
	tests := []struct {
		name           string
		approved       bool
		expectedStatus string
	}{
		{"approve", true, models.ShopStatusApproved},
		{"reject", false, models.ShopStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
			admin := createTestUser(t, db, "auth0|admin", models.RoleAdmin)
			shop := registerTestShop(t, db, creator, "east")

			router := setupShopRouter("auth0|admin", models.RoleAdmin)
			w := performJSON(router, "PUT", fmt.Sprintf("/api/v1/shops/%d/review", shop.ID), gin.H{
				"approved": tt.approved,
				"comment":  "Reviewed",
			})

			assert.Equal(t, http.StatusOK, w.Code)
			response := parseEnvelope(t, w)
			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.expectedStatus, data["status"])
			assert.Equal(t, float64(admin.ID), data["reviewed_by_id"])
			assert.Equal(t, "Reviewed", data["review_comment"])
		})
	}
}

func TestReviewShop_OnceOnly(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	createTestUser(t, db, "auth0|admin", models.RoleAdmin)
	shop := registerTestShop(t, db, creator, "east")

	router := setupShopRouter("auth0|admin", models.RoleAdmin)

	w := performJSON(router, "PUT", fmt.Sprintf("/api/v1/shops/%d/review", shop.ID), gin.H{"approved": true})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "PUT", fmt.Sprintf("/api/v1/shops/%d/review", shop.ID), gin.H{"approved": false})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))

	// Status unchanged by the losing attempt
	var reloaded models.Shop
	db.First(&reloaded, shop.ID)
	assert.Equal(t, models.ShopStatusApproved, reloaded.Status)
}

func TestReviewShop_NotFound(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth0|admin", models.RoleAdmin)

	router := setupShopRouter("auth0|admin", models.RoleAdmin)
	w := performJSON(router, "PUT", "/api/v1/shops/9999/review", gin.H{"approved": true})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SHOP_NOT_FOUND", errorCode(t, w))
}

func TestListShops_Filters(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	createTestUser(t, db, "auth0|admin", models.RoleAdmin)

	east := registerTestShop(t, db, creator, "east")
	registerTestShop(t, db, creator, "west")

	db.Model(&models.Shop{}).Where("id = ?", east.ID).Update("status", models.ShopStatusApproved)

	router := setupShopRouter("auth0|admin", models.RoleAdmin)

	w := performJSON(router, "GET", "/api/v1/shops", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseEnvelope(t, w)["data"], 2)

	w = performJSON(router, "GET", "/api/v1/shops?status="+models.ShopStatusApproved, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseEnvelope(t, w)["data"], 1)

	w = performJSON(router, "GET", "/api/v1/shops?territory=west", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseEnvelope(t, w)["data"], 1)
}

func TestGetShop(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "auth0|marketing", models.RoleMarketing)
	shop := registerTestShop(t, db, creator, "east")

	router := setupShopRouter("auth0|marketing", models.RoleMarketing)

	w := performJSON(router, "GET", fmt.Sprintf("/api/v1/shops/%d", shop.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "GET", "/api/v1/shops/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
