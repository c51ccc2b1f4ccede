package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/task-manager-app/controllers"
	"github.com/yeremiapane/task-manager-app/models"
)

// authAs stands in for the JWT middleware in controller tests.
func authAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupTaskRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authAs(userID))

	taskCtrl := controllers.NewTaskController(db)
	router.GET("/api/tasks", taskCtrl.GetTasks)
	router.GET("/api/tasks/stats", taskCtrl.GetTaskStats)
	router.GET("/api/tasks/:task_id", taskCtrl.GetTask)
	router.POST("/api/tasks", taskCtrl.CreateTask)
	router.PUT("/api/tasks/:task_id", taskCtrl.UpdateTask)
	router.DELETE("/api/tasks/:task_id", taskCtrl.DeleteTask)
	return router
}

func TestTaskCRUD(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Task{})
	user := models.User{Email: "owner@example.com", Password: "x", FirstName: "Own", LastName: "Er"}
	require.NoError(t, db.Create(&user).Error)
	router := setupTaskRouter(db, user.ID)

	// Create
	due := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	w := doJSON(t, router, "POST", "/api/tasks", map[string]interface{}{
		"title":    "Write report",
		"due_date": due,
		"priority": "high",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "todo", created.Data.Status)
	assert.Equal(t, "high", created.Data.Priority)
	taskID := created.Data.ID

	// Get
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/tasks/%d", taskID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Update only the status
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/tasks/%d", taskID), map[string]interface{}{
		"status": "in_progress",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Data models.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "in_progress", updated.Data.Status)
	assert.Equal(t, "Write report", updated.Data.Title)

	// Invalid status rejected
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/tasks/%d", taskID), map[string]interface{}{
		"status": "paused",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Delete
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/tasks/%d", taskID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/tasks/%d", taskID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskListFiltersAndOwnership(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Task{})
	owner := models.User{Email: "owner2@example.com", Password: "x", FirstName: "A", LastName: "B"}
	other := models.User{Email: "other@example.com", Password: "x", FirstName: "C", LastName: "D"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	seed := func(userID uint, title, status, priority string) models.Task {
		task := models.Task{UserID: userID, Title: title, Status: status, Priority: priority}
		require.NoError(t, db.Create(&task).Error)
		return task
	}
	seed(owner.ID, "Ship release", "todo", "high")
	seed(owner.ID, "Water plants", "completed", "low")
	foreign := seed(other.ID, "Not yours", "todo", "high")

	router := setupTaskRouter(db, owner.ID)

	// Status filter
	w := doJSON(t, router, "GET", "/api/tasks?status=todo", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ship release")
	assert.NotContains(t, w.Body.String(), "Water plants")
	assert.NotContains(t, w.Body.String(), "Not yours")

	// Search filter
	w = doJSON(t, router, "GET", "/api/tasks?search=plants", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Water plants")
	assert.NotContains(t, w.Body.String(), "Ship release")

	// Another user's task is invisible
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/tasks/%d", foreign.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Stats
	w = doJSON(t, router, "GET", "/api/tasks/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.Data["total"])
	assert.Equal(t, int64(1), stats.Data["todo"])
	assert.Equal(t, int64(1), stats.Data["completed"])
	assert.Equal(t, int64(1), stats.Data["high_priority"])
}
