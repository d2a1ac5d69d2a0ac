package notification

import "context"

// Message is a rendered transactional email
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers transactional emails
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
