package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/realtime"
	"github.com/yeremiapane/task-manager-app/utils"
)

// ScanMetrics tracks what the scanner has done since startup.
type ScanMetrics struct {
	TicksCompleted int64
	TicksSkipped   int64
	DueSoonCreated int64
	OverdueCreated int64
	AppendFailures int64
	EmailsSent     int64
	EmailsFailed   int64
}

// NotificationScanner runs the due-soon and overdue sub-scans on every
// tick. Per qualifying task it checks the ledger for a recent duplicate,
// appends the notification record first (the durable part), then pushes
// it over websocket and attempts the email best-effort. A failure on one
// task never stops the rest of the batch.
type NotificationScanner struct {
	tasks       TaskSource
	ledger      Ledger
	mailer      Mailer        // nil when outbound mail is not configured
	hub         *realtime.Hub // nil when running without websocket push
	frontendURL string

	// DedupWindow is the lookback used to suppress duplicate alerts.
	DedupWindow time.Duration
	// DispatchTimeout bounds how long one email send may stall the scan.
	DispatchTimeout time.Duration

	mu      sync.Mutex
	running bool
	metrics ScanMetrics
}

func NewNotificationScanner(tasks TaskSource, ledger Ledger, mailer Mailer, hub *realtime.Hub, frontendURL string) *NotificationScanner {
	return &NotificationScanner{
		tasks:           tasks,
		ledger:          ledger,
		mailer:          mailer,
		hub:             hub,
		frontendURL:     frontendURL,
		DedupWindow:     24 * time.Hour,
		DispatchTimeout: 15 * time.Second,
	}
}

// RunScan executes one full tick against the current clock.
func (ns *NotificationScanner) RunScan() {
	ns.RunScanAt(time.Now())
}

// RunScanAt executes one full tick against an explicit time reference.
// Ticks never overlap: if the previous one is still in flight the call is
// skipped and logged.
func (ns *NotificationScanner) RunScanAt(now time.Time) {
	if !ns.tryStart() {
		utils.InfoLogger.Println("Notification scan still running, skipping tick")
		return
	}
	defer ns.finish()

	dueSoon := ns.scanDueSoon(now)
	overdue := ns.scanOverdue(now)

	if dueSoon > 0 {
		utils.InfoLogger.Printf("Created %d \"due soon\" notifications", dueSoon)
	}
	if overdue > 0 {
		utils.InfoLogger.Printf("Created %d \"overdue\" notifications", overdue)
	}
}

func (ns *NotificationScanner) tryStart() bool {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if ns.running {
		ns.metrics.TicksSkipped++
		return false
	}
	ns.running = true
	return true
}

func (ns *NotificationScanner) finish() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.running = false
	ns.metrics.TicksCompleted++
}

// GetMetrics returns a snapshot of the scanner counters.
func (ns *NotificationScanner) GetMetrics() ScanMetrics {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.metrics
}

func (ns *NotificationScanner) addMetric(update func(*ScanMetrics)) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	update(&ns.metrics)
}

func (ns *NotificationScanner) scanDueSoon(now time.Time) int {
	rows, err := ns.tasks.DueSoon(now)
	if err != nil {
		utils.ErrorLogger.Printf("Error checking tasks due soon: %v", err)
		return 0
	}
	return ns.process(rows, models.NotificationTaskDueSoon, now)
}

func (ns *NotificationScanner) scanOverdue(now time.Time) int {
	rows, err := ns.tasks.Overdue(now)
	if err != nil {
		utils.ErrorLogger.Printf("Error checking overdue tasks: %v", err)
		return 0
	}
	return ns.process(rows, models.NotificationTaskOverdue, now)
}

func (ns *NotificationScanner) process(rows []TaskAlert, kind string, now time.Time) int {
	created := 0
	since := now.Add(-ns.DedupWindow)

	for _, task := range rows {
		exists, err := ns.ledger.HasRecent(task.UserID, task.TaskID, kind, since)
		if err != nil {
			// A ledger read failure aborts this sub-scan; the other
			// sub-scan still runs.
			utils.ErrorLogger.Printf("Error reading notification ledger: %v", err)
			return created
		}
		if exists {
			continue
		}

		title, message := notificationContent(kind, task)

		// The ledger write must land before any dispatch attempt so a
		// failed email can never lose the in-app notification.
		notifID, err := ns.ledger.Append(task.UserID, kind, title, message, task.TaskID)
		if err != nil {
			utils.ErrorLogger.Printf("Error creating %s notification for task %d: %v", kind, task.TaskID, err)
			ns.addMetric(func(m *ScanMetrics) { m.AppendFailures++ })
			continue
		}
		created++
		if kind == models.NotificationTaskDueSoon {
			ns.addMetric(func(m *ScanMetrics) { m.DueSoonCreated++ })
		} else {
			ns.addMetric(func(m *ScanMetrics) { m.OverdueCreated++ })
		}

		if ns.hub != nil {
			relatedID := task.TaskID
			ns.hub.PushNotification(task.UserID, models.Notification{
				ID:        notifID,
				UserID:    task.UserID,
				Type:      kind,
				Title:     title,
				Message:   message,
				RelatedID: &relatedID,
				CreatedAt: now,
			})
		}

		if ns.mailer != nil {
			ns.dispatch(task, kind)
		}
	}

	return created
}

func notificationContent(kind string, task TaskAlert) (string, string) {
	if kind == models.NotificationTaskDueSoon {
		return "Task Due Soon", fmt.Sprintf("Your task %q is due in less than 24 hours", task.Title)
	}
	return "Task Overdue", fmt.Sprintf("Your task %q is overdue", task.Title)
}

// dispatch attempts the email for one notification. Transport errors are
// logged and swallowed; the wait is bounded so a hung SMTP server cannot
// stall the rest of the scan.
func (ns *NotificationScanner) dispatch(task TaskAlert, kind string) {
	var subject, body string
	if kind == models.NotificationTaskDueSoon {
		subject, body = dueSoonEmail(task, ns.frontendURL)
	} else {
		subject, body = overdueEmail(task, ns.frontendURL)
	}

	done := make(chan error, 1)
	go func() {
		done <- ns.mailer.Send(task.UserEmail, subject, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			utils.ErrorLogger.Printf("Failed to send email to %s: %v", task.UserEmail, err)
			ns.addMetric(func(m *ScanMetrics) { m.EmailsFailed++ })
			return
		}
		ns.addMetric(func(m *ScanMetrics) { m.EmailsSent++ })
	case <-time.After(ns.DispatchTimeout):
		utils.ErrorLogger.Printf("Timed out sending email to %s", task.UserEmail)
		ns.addMetric(func(m *ScanMetrics) { m.EmailsFailed++ })
	}
}
