package services

import (
	"time"

	"github.com/yeremiapane/task-manager-app/models"
	"gorm.io/gorm"
)

// TaskAlert is one row of the due-soon/overdue queries: the task joined
// with the owner's contact info needed downstream for alerting.
type TaskAlert struct {
	TaskID        uint
	UserID        uint
	Title         string
	Description   *string
	DueDate       time.Time
	Priority      string
	UserEmail     string
	UserFirstName string
}

// TaskSource yields the tasks qualifying for an alert at a given instant.
// The two predicates are disjoint: due-soon requires a due date strictly
// in the future, overdue strictly in the past.
type TaskSource interface {
	DueSoon(now time.Time) ([]TaskAlert, error)
	Overdue(now time.Time) ([]TaskAlert, error)
}

type GormTaskRepository struct {
	DB *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{DB: db}
}

// DueSoon returns non-completed tasks due within (now, now+24h].
func (r *GormTaskRepository) DueSoon(now time.Time) ([]TaskAlert, error) {
	return r.query("tasks.due_date > ? AND tasks.due_date <= ?", now, now.Add(24*time.Hour))
}

// Overdue returns non-completed tasks whose due date has passed.
func (r *GormTaskRepository) Overdue(now time.Time) ([]TaskAlert, error) {
	return r.query("tasks.due_date < ?", now)
}

func (r *GormTaskRepository) query(window string, args ...interface{}) ([]TaskAlert, error) {
	var rows []TaskAlert
	err := r.DB.Table("tasks").
		Select("tasks.id AS task_id, tasks.user_id AS user_id, tasks.title AS title, "+
			"tasks.description AS description, tasks.due_date AS due_date, tasks.priority AS priority, "+
			"users.email AS user_email, users.first_name AS user_first_name").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.status <> ?", models.TaskStatusCompleted).
		Where("tasks.due_date IS NOT NULL").
		Where(window, args...).
		Order("tasks.due_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
