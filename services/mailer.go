package services

import (
	"fmt"

	"github.com/yeremiapane/task-manager-app/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single message. Implementations report delivery failure
// through the returned error; the caller decides what to do with it (the
// scanner logs and moves on).
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

func dueSoonEmail(task TaskAlert, frontendURL string) (string, string) {
	subject := "Task Due Soon - Task Manager"
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>This is a reminder that your task is due soon:</p>
		<h3>%s</h3>
		<p><strong>Due Date:</strong> %s</p>
		<p><strong>Priority:</strong> %s</p>
		%s
		<p>Visit your <a href="%s">Task Manager</a> to view details.</p>`,
		task.UserFirstName, task.Title, task.DueDate.Format("Jan 2, 2006 3:04 PM"),
		task.Priority, descriptionBlock(task), frontendURL)
	return subject, body
}

func overdueEmail(task TaskAlert, frontendURL string) (string, string) {
	subject := "Task Overdue - Task Manager"
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your task is now overdue:</p>
		<h3>%s</h3>
		<p><strong>Due Date:</strong> %s</p>
		<p><strong>Priority:</strong> %s</p>
		%s
		<p>Visit your <a href="%s">Task Manager</a> to update the task.</p>`,
		task.UserFirstName, task.Title, task.DueDate.Format("Jan 2, 2006 3:04 PM"),
		task.Priority, descriptionBlock(task), frontendURL)
	return subject, body
}

func descriptionBlock(task TaskAlert) string {
	if task.Description == nil || *task.Description == "" {
		return ""
	}
	return fmt.Sprintf("<p><strong>Description:</strong> %s</p>", *task.Description)
}
