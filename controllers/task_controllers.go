package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/utils"
	"gorm.io/gorm"
)

type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

func (tc *TaskController) scoped(c *gin.Context) *gorm.DB {
	return tc.DB.Where("user_id = ?", c.GetUint("user_id"))
}

// GetTasks lists the user's tasks with optional status/priority/search
// filters and pagination.
func (tc *TaskController) GetTasks(c *gin.Context) {
	query := tc.scoped(c).Model(&models.Task{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, limit := pageParams(c)
	var tasks []models.Task
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&tasks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tasks retrieved successfully", gin.H{
		"tasks":      tasks,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetTask returns one task owned by the user.
func (tc *TaskController) GetTask(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("task_id"))

	var task models.Task
	if err := tc.scoped(c).First(&task, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Task retrieved successfully", task)
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	type request struct {
		Title       string     `json:"title" binding:"required"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
		Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{
		UserID:      c.GetUint("user_id"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}

	if err := tc.DB.Create(&task).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Task created successfully", task)
}

// UpdateTask applies only the fields present in the request body.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("task_id"))

	var task models.Task
	if err := tc.scoped(c).First(&task, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
		Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Task updated successfully", task)
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("task_id"))

	result := tc.scoped(c).Delete(&models.Task{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Task deleted successfully", gin.H{"task_id": id})
}

// GetTaskStats returns counts per status plus high-priority and overdue
// totals for the dashboard.
func (tc *TaskController) GetTaskStats(c *gin.Context) {
	userID := c.GetUint("user_id")

	count := func(conds ...interface{}) (int64, error) {
		q := tc.DB.Model(&models.Task{}).Where("user_id = ?", userID)
		if len(conds) > 0 {
			q = q.Where(conds[0], conds[1:]...)
		}
		var n int64
		err := q.Count(&n).Error
		return n, err
	}

	total, err := count()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	todo, _ := count("status = ?", models.TaskStatusTodo)
	inProgress, _ := count("status = ?", models.TaskStatusInProgress)
	completed, _ := count("status = ?", models.TaskStatusCompleted)
	highPriority, _ := count("priority = ?", models.TaskPriorityHigh)
	overdue, _ := count("due_date < ? AND status <> ?", time.Now(), models.TaskStatusCompleted)

	utils.RespondJSON(c, http.StatusOK, "Task statistics retrieved successfully", gin.H{
		"total":         total,
		"todo":          todo,
		"in_progress":   inProgress,
		"completed":     completed,
		"high_priority": highPriority,
		"overdue":       overdue,
	})
}
