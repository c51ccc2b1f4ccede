package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/utils"
	"gorm.io/gorm"
)

type NoteController struct {
	DB *gorm.DB
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db}
}

func (nc *NoteController) scoped(c *gin.Context) *gorm.DB {
	return nc.DB.Where("user_id = ?", c.GetUint("user_id"))
}

// GetNotes lists the user's notes with optional full-text-ish search.
func (nc *NoteController) GetNotes(c *gin.Context) {
	query := nc.scoped(c).Model(&models.Note{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var notes []models.Note
	if err := query.Order("updated_at DESC").Find(&notes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notes retrieved successfully", notes)
}

func (nc *NoteController) GetNote(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("note_id"))

	var note models.Note
	if err := nc.scoped(c).First(&note, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Note retrieved successfully", note)
}

func (nc *NoteController) CreateNote(c *gin.Context) {
	type request struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	note := models.Note{
		UserID:  c.GetUint("user_id"),
		Title:   req.Title,
		Content: req.Content,
	}
	if err := nc.DB.Create(&note).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Note created successfully", note)
}

func (nc *NoteController) UpdateNote(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("note_id"))

	var note models.Note
	if err := nc.scoped(c).First(&note, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := nc.DB.Save(&note).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Note updated successfully", note)
}

func (nc *NoteController) DeleteNote(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("note_id"))

	result := nc.scoped(c).Delete(&models.Note{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Note deleted successfully", gin.H{"note_id": id})
}
