package jobs

import (
	"context"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"

	"github.com/shopspring/decimal"
)

// SendOverdueReminders emails every user with overdue loans, listing the
// materials they still hold and the fee accrued so far.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Overdue.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue loans, nothing to remind")
			return
		}

		// One email per user regardless of how many loans they hold.
		byUser := make(map[int64][]domain.OverdueLoan)
		order := make([]int64, 0)
		for _, o := range overdue {
			if _, seen := byUser[o.UserID]; !seen {
				order = append(order, o.UserID)
			}
			byUser[o.UserID] = append(byUser[o.UserID], o)
		}

		count := 0
		for _, userID := range order {
			loans := byUser[userID]
			first := loans[0]
			if err := jr.services.Email.SendOverdueReminder(ctx, first.UserContact, first.UserName, loans); err != nil {
				logger.Error("Failed to send overdue reminder",
					"user_id", userID,
					"contact", first.UserContact,
					"error", err)
				continue
			}
			count++
			logger.Debug("Sent overdue reminder", "user_id", userID, "loans", len(loans))
		}

		logger.Info("Overdue reminders sent", "count", count, "users_overdue", len(byUser))
	})
}

// ReportOverdueLoans logs a nightly summary of the overdue backlog.
func (jr *JobRunner) ReportOverdueLoans() {
	jr.runWithRecovery("ReportOverdueLoans", func() {
		ctx := context.Background()

		overdue, err := jr.services.Overdue.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		users := make(map[int64]struct{})
		totalFees := decimal.Zero
		maxDays := 0
		for _, o := range overdue {
			users[o.UserID] = struct{}{}
			totalFees = totalFees.Add(o.LateFee)
			if o.OverdueDays > maxDays {
				maxDays = o.OverdueDays
			}
		}

		logger.Info("Overdue loan report",
			"loans", len(overdue),
			"users", len(users),
			"accrued_fees", totalFees.StringFixed(2),
			"max_overdue_days", maxDays,
		)
	})
}
