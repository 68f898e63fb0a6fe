package models

import "time"

type NewsletterSubscription struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	SubscribedAt time.Time `db:"subscribed_at" json:"subscribed_at"`
}

// BroadcastReport aggregates the outcome of a best-effort mail fan-out.
type BroadcastReport struct {
	Total        int      `json:"total"`
	Sent         int      `json:"sent"`
	Failed       int      `json:"failed"`
	FailedEmails []string `json:"failed_emails"`
}
