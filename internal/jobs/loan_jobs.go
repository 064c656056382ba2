package jobs

import (
	"context"
	"time"

	"libris-backend/internal/logger"
)

// RunFineSweep marks unreturned loans past their grace period as overdue and
// recomputes their fines.
func (jr *JobRunner) RunFineSweep() {
	jr.runWithRecovery("RunFineSweep", func() {
		ctx := context.Background()

		count, err := jr.services.Loan.RunFineSweep(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to run fine sweep", "error", err)
			return
		}
		logger.Info("Marked loans as overdue", "count", count)
	})
}

// SendDueSoonReminders emails members whose active loans come due within the
// next two days. Delivery failures are logged and skipped; the next run
// retries them.
func (jr *JobRunner) SendDueSoonReminders() {
	jr.runWithRecovery("SendDueSoonReminders", func() {
		ctx := context.Background()

		query := `
			SELECT l.id, l.due_date, u.email, u.name, b.title, b.author
			FROM loans l
			JOIN users u ON l.user_id = u.id
			JOIN books b ON l.book_id = b.id
			WHERE l.status = 'active'
			  AND l.due_date >= $1
			  AND l.due_date < $2
		`

		now := time.Now().UTC()
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(48*time.Hour))
		if err != nil {
			logger.Error("Failed to query loans due soon", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				loanID  int32
				dueDate time.Time
				email   string
				name    string
				title   string
				author  string
			)
			if err := rows.Scan(&loanID, &dueDate, &email, &name, &title, &author); err != nil {
				logger.Error("Failed to scan due-soon loan", "error", err)
				continue
			}

			if err := jr.services.Email.SendDueSoonReminder(ctx, email, name, title, author, dueDate); err != nil {
				logger.Error("Failed to send due-soon reminder",
					"loan_id", loanID,
					"email", email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent due-soon reminder", "loan_id", loanID, "email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due-soon loans", "error", err)
			return
		}

		logger.Info("Sent due-soon reminders", "count", count)
	})
}

// SendOverdueNotices emails members with overdue loans, including the days
// overdue and the fine accrued so far.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()

		query := `
			SELECT l.id, l.due_date, l.fine_amount, u.email, u.name, b.title
			FROM loans l
			JOIN users u ON l.user_id = u.id
			JOIN books b ON l.book_id = b.id
			WHERE l.status = 'overdue'
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query overdue loans", "error", err)
			return
		}
		defer rows.Close()

		now := time.Now().UTC()
		count := 0
		for rows.Next() {
			var (
				loanID     int32
				dueDate    time.Time
				fineAmount string
				email      string
				name       string
				title      string
			)
			if err := rows.Scan(&loanID, &dueDate, &fineAmount, &email, &name, &title); err != nil {
				logger.Error("Failed to scan overdue loan", "error", err)
				continue
			}

			daysOverdue := int32(now.Sub(dueDate).Hours() / 24)
			if err := jr.services.Email.SendOverdueNotice(ctx, email, name, title, dueDate, daysOverdue, fineAmount); err != nil {
				logger.Error("Failed to send overdue notice",
					"loan_id", loanID,
					"email", email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent overdue notice", "loan_id", loanID, "email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue loans", "error", err)
			return
		}

		logger.Info("Sent overdue notices", "count", count)
	})
}
