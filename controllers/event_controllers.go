package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/utils"
	"gorm.io/gorm"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

func (ec *EventController) scoped(c *gin.Context) *gorm.DB {
	return ec.DB.Where("user_id = ?", c.GetUint("user_id"))
}

// GetEvents lists the user's events, optionally restricted to a window
// (events overlapping [start, end]) for the calendar view.
func (ec *EventController) GetEvents(c *gin.Context) {
	query := ec.scoped(c).Model(&models.Event{})

	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			query = query.Where("end_date >= ?", t)
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			query = query.Where("start_date <= ?", t)
		}
	}

	var events []models.Event
	if err := query.Order("start_date ASC").Find(&events).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Events retrieved successfully", events)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("event_id"))

	var event models.Event
	if err := ec.scoped(c).First(&event, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event retrieved successfully", event)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	type request struct {
		Title       string    `json:"title" binding:"required"`
		Description *string   `json:"description"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
		AllDay      bool      `json:"all_day"`
		Color       *string   `json:"color"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	event := models.Event{
		UserID:      c.GetUint("user_id"),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AllDay:      req.AllDay,
		Color:       req.Color,
	}
	if err := ec.DB.Create(&event).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Event created successfully", event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("event_id"))

	var event models.Event
	if err := ec.scoped(c).First(&event, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		AllDay      *bool      `json:"all_day"`
		Color       *string    `json:"color"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Color != nil {
		event.Color = req.Color
	}

	if err := ec.DB.Save(&event).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event updated successfully", event)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("event_id"))

	result := ec.scoped(c).Delete(&models.Event{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event deleted successfully", gin.H{"event_id": id})
}
