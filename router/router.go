package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/task-manager-app/controllers"
	"github.com/yeremiapane/task-manager-app/middlewares"
	"github.com/yeremiapane/task-manager-app/realtime"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	authCtrl := controllers.NewAuthController(db)
	taskCtrl := controllers.NewTaskController(db)
	eventCtrl := controllers.NewEventController(db)
	noteCtrl := controllers.NewNoteController(db)
	notificationCtrl := controllers.NewNotificationController(db, hub)
	streamCtrl := controllers.NewStreamController(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")

	// Public auth endpoints, tightly rate limited.
	public := api.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PUT("/auth/profile", authCtrl.UpdateProfile)

		auth.GET("/tasks", taskCtrl.GetTasks)
		auth.GET("/tasks/stats", taskCtrl.GetTaskStats)
		auth.GET("/tasks/:task_id", taskCtrl.GetTask)
		auth.POST("/tasks", taskCtrl.CreateTask)
		auth.PUT("/tasks/:task_id", taskCtrl.UpdateTask)
		auth.DELETE("/tasks/:task_id", taskCtrl.DeleteTask)

		auth.GET("/events", eventCtrl.GetEvents)
		auth.GET("/events/:event_id", eventCtrl.GetEvent)
		auth.POST("/events", eventCtrl.CreateEvent)
		auth.PUT("/events/:event_id", eventCtrl.UpdateEvent)
		auth.DELETE("/events/:event_id", eventCtrl.DeleteEvent)

		auth.GET("/notes", noteCtrl.GetNotes)
		auth.GET("/notes/:note_id", noteCtrl.GetNote)
		auth.POST("/notes", noteCtrl.CreateNote)
		auth.PUT("/notes/:note_id", noteCtrl.UpdateNote)
		auth.DELETE("/notes/:note_id", noteCtrl.DeleteNote)

		auth.GET("/notifications", notificationCtrl.GetNotifications)
		auth.GET("/notifications/unread/count", notificationCtrl.GetUnreadCount)
		auth.PUT("/notifications/read-all", notificationCtrl.MarkAllAsRead)
		auth.PUT("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)
		auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	}

	// Websocket endpoint authenticates via query token since browsers
	// cannot attach headers to upgrade requests.
	ws := api.Group("/notifications")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/stream", streamCtrl.Stream)
	}

	return r
}
