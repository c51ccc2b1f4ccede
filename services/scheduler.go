package services

import (
	"github.com/robfig/cron/v3"
	"github.com/yeremiapane/task-manager-app/utils"
)

// ScanScheduler triggers the notification scanner at the top of every
// hour. Scheduling lives apart from the scan logic so a tick can be unit
// tested by calling RunScanAt directly.
type ScanScheduler struct {
	cron    *cron.Cron
	scanner *NotificationScanner
}

func NewScanScheduler(scanner *NotificationScanner) *ScanScheduler {
	return &ScanScheduler{
		cron:    cron.New(),
		scanner: scanner,
	}
}

func (s *ScanScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		utils.InfoLogger.Println("Running notification checks...")
		s.scanner.RunScan()
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	utils.InfoLogger.Println("Notification scheduler started")
	return nil
}

func (s *ScanScheduler) Stop() {
	s.cron.Stop()
}
