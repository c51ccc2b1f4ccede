package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/task-manager-app/controllers"
	"github.com/yeremiapane/task-manager-app/middlewares"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/utils"
)

func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authCtrl := controllers.NewAuthController(db)
	router.POST("/api/auth/register", authCtrl.Register)
	router.POST("/api/auth/login", authCtrl.Login)

	auth := router.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/auth/profile", authCtrl.GetProfile)
	auth.PUT("/auth/profile", authCtrl.UpdateProfile)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginProfile(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	router := setupAuthRouter(db)

	// Register
	w := doJSON(t, router, "POST", "/api/auth/register", map[string]interface{}{
		"email":      "alice@example.com",
		"password":   "secret123",
		"first_name": "Alice",
		"last_name":  "Doe",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate email rejected
	w = doJSON(t, router, "POST", "/api/auth/register", map[string]interface{}{
		"email":      "alice@example.com",
		"password":   "secret123",
		"first_name": "Alice",
		"last_name":  "Doe",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login
	w = doJSON(t, router, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Token)

	// Wrong password
	w = doJSON(t, router, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Profile with token
	w = doJSON(t, router, "GET", "/api/auth/profile", nil, loginResp.Data.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")

	// Profile without token
	w = doJSON(t, router, "GET", "/api/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Update profile
	w = doJSON(t, router, "PUT", "/api/auth/profile", map[string]interface{}{
		"first_name": "Alicia",
	}, loginResp.Data.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alicia")
}
