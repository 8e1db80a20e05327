package services

import (
	"context"
	"log"
	"time"

	"shelfwise/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// overdueReportSchedule fires the daily overdue report at 08:30
const overdueReportSchedule = "30 8 * * *"

// ReminderService reports overdue borrowings on a daily schedule.
// A borrowing is overdue when it is still open past the loan period.
type ReminderService struct {
	borrowingRepo  repositories.BorrowingRepository
	loanPeriodDays int
	cron           *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(borrowingRepo repositories.BorrowingRepository, loanPeriodDays int) *ReminderService {
	return &ReminderService{
		borrowingRepo:  borrowingRepo,
		loanPeriodDays: loanPeriodDays,
		cron:           cron.New(),
	}
}

// Start schedules the daily overdue report
func (s *ReminderService) Start() {
	if _, err := s.cron.AddFunc(overdueReportSchedule, s.ReportOverdue); err != nil {
		log.Printf("❌ Failed to schedule overdue report: %v", err)
		return
	}
	s.cron.Start()
	log.Printf("🚀 ReminderService started (loan period: %d days)", s.loanPeriodDays)
}

// Stop cancels the schedule and waits for a running job to finish
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 ReminderService stopped")
}

// ReportOverdue logs every open borrowing older than the loan period
func (s *ReminderService) ReportOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -s.loanPeriodDays)
	overdue, err := s.borrowingRepo.ListActiveCheckedOutBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Overdue report query error: %v", err)
		return
	}

	for _, bw := range overdue {
		title := ""
		if bw.Book != nil {
			title = bw.Book.Title
		}
		days := int(time.Since(bw.CheckoutDate).Hours() / 24)
		log.Printf("⏰ Overdue borrowing %s: user=%d book=%d (%q) out for %d days", bw.RefCode, bw.UserID, bw.BookID, title, days)
	}

	if len(overdue) > 0 {
		log.Printf("⏰ Overdue report: %d borrowing(s) past the %d-day loan period", len(overdue), s.loanPeriodDays)
	}
}
