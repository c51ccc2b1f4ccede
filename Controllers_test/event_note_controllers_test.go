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

func setupEventNoteRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authAs(userID))

	eventCtrl := controllers.NewEventController(db)
	router.GET("/api/events", eventCtrl.GetEvents)
	router.GET("/api/events/:event_id", eventCtrl.GetEvent)
	router.POST("/api/events", eventCtrl.CreateEvent)
	router.PUT("/api/events/:event_id", eventCtrl.UpdateEvent)
	router.DELETE("/api/events/:event_id", eventCtrl.DeleteEvent)

	noteCtrl := controllers.NewNoteController(db)
	router.GET("/api/notes", noteCtrl.GetNotes)
	router.GET("/api/notes/:note_id", noteCtrl.GetNote)
	router.POST("/api/notes", noteCtrl.CreateNote)
	router.PUT("/api/notes/:note_id", noteCtrl.UpdateNote)
	router.DELETE("/api/notes/:note_id", noteCtrl.DeleteNote)
	return router
}

func TestEventCRUDAndRangeFilter(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Event{})
	user := models.User{Email: "cal@example.com", Password: "x", FirstName: "Cal", LastName: "E"}
	require.NoError(t, db.Create(&user).Error)
	router := setupEventNoteRouter(db, user.ID)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := doJSON(t, router, "POST", "/api/events", map[string]interface{}{
		"title":      "Standup",
		"start_date": base.Format(time.RFC3339),
		"end_date":   base.Add(30 * time.Minute).Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "POST", "/api/events", map[string]interface{}{
		"title":      "Offsite",
		"start_date": base.AddDate(0, 1, 0).Format(time.RFC3339),
		"end_date":   base.AddDate(0, 1, 2).Format(time.RFC3339),
		"all_day":    true,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Range covering only September 1st.
	url := fmt.Sprintf("/api/events?start=%s&end=%s",
		base.Add(-time.Hour).Format(time.RFC3339),
		base.Add(time.Hour).Format(time.RFC3339))
	w = doJSON(t, router, "GET", url, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Standup")
	assert.NotContains(t, w.Body.String(), "Offsite")

	// Update
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/events/%d", created.Data.ID), map[string]interface{}{
		"title": "Daily standup",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Daily standup")

	// Delete
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/events/%d", created.Data.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/events/%d", created.Data.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteCRUDAndSearch(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Note{})
	user := models.User{Email: "note@example.com", Password: "x", FirstName: "No", LastName: "Te"}
	require.NoError(t, db.Create(&user).Error)
	router := setupEventNoteRouter(db, user.ID)

	w := doJSON(t, router, "POST", "/api/notes", map[string]interface{}{
		"title":   "Groceries",
		"content": "milk, eggs, coffee",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Note `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "POST", "/api/notes", map[string]interface{}{
		"title":   "Meeting notes",
		"content": "decide on roadmap",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Search matches content, case-insensitive.
	w = doJSON(t, router, "GET", "/api/notes?search=COFFEE", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Groceries")
	assert.NotContains(t, w.Body.String(), "Meeting notes")

	// Update
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/notes/%d", created.Data.ID), map[string]interface{}{
		"content": "milk, eggs",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "milk, eggs")

	// Missing title rejected on create
	w = doJSON(t, router, "POST", "/api/notes", map[string]interface{}{
		"content": "orphan",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Delete
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/notes/%d", created.Data.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
