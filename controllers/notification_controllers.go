package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/realtime"
	"github.com/yeremiapane/task-manager-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewNotificationController(db *gorm.DB, hub *realtime.Hub) *NotificationController {
	return &NotificationController{DB: db, Hub: hub}
}

func (nc *NotificationController) scoped(c *gin.Context) *gorm.DB {
	return nc.DB.Where("user_id = ?", c.GetUint("user_id"))
}

// GetNotifications lists the user's notifications, newest first, with an
// optional is_read filter.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	query := nc.scoped(c).Model(&models.Notification{})

	if isRead := c.Query("is_read"); isRead != "" {
		query = query.Where("is_read = ?", isRead == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, limit := pageParams(c)
	var notifs []models.Notification
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications retrieved successfully", gin.H{
		"notifications": notifs,
		"pagination":    paginationMeta(page, limit, total),
	})
}

func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	var count int64
	if err := nc.scoped(c).Model(&models.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread count retrieved successfully", gin.H{"count": count})
}

// MarkAsRead flips a single notification to read.
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))
	userID := c.GetUint("user_id")

	var notif models.Notification
	if err := nc.scoped(c).First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !notif.IsRead {
		notif.IsRead = true
		if err := nc.DB.Save(&notif).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		nc.pushUnreadCount(userID)
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// MarkAllAsRead flips every unread notification of the user.
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	nc.pushUnreadCount(userID)

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}

func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))

	result := nc.scoped(c).Delete(&models.Notification{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted successfully", gin.H{"notif_id": id})
}

func (nc *NotificationController) pushUnreadCount(userID uint) {
	if nc.Hub == nil {
		return
	}
	var count int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return
	}
	nc.Hub.PushUnreadCount(userID, count)
}
