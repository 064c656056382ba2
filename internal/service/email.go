package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendDueSoonReminder(ctx context.Context, email, name, bookTitle, author string, dueDate time.Time) error {
	subject := "Book Due Date Reminder"
	body := fmt.Sprintf(`Dear %s,

This is a reminder that the following book is due soon:

Book: %s
Author: %s
Due Date: %s

Please return the book on time to avoid late fees.

Thank you,
Libris`, name, bookTitle, author, dueDate.Format("2006-01-02"))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, name, bookTitle string, dueDate time.Time, daysOverdue int32, fineAmount string) error {
	subject := "Overdue Book Notification"
	body := fmt.Sprintf(`Dear %s,

The following book is overdue:

Book: %s
Due Date: %s
Days Overdue: %d
Fine Amount: $%s

Please return the book as soon as possible.

Thank you,
Libris`, name, bookTitle, dueDate.Format("2006-01-02"), daysOverdue, fineAmount)
	return s.send(email, name, subject, body)
}
