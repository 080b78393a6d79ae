// Package email renders and delivers the platform's outbound mail. The
// rest of the application never talks SMTP directly: services enqueue mail
// jobs and the mail worker pushes them through a Sender.
package email

import "context"

// Message is one outbound email. HTML is the rendered body; recipients of
// a fan-out share a single message.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages. Implementations: SMTPSender (gomail) and test
// fakes.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// PartnerNotificationData feeds the new-request notification sent to every
// matched partner.
type PartnerNotificationData struct {
	Urgent        bool
	Details       []TrainingLine
	Location      string
	PreferredTime string
	Duration      string
	Description   string
	ClientName    string
	LoginURL      string
}

// TrainingLine is one requested training rendered in the notification.
type TrainingLine struct {
	Type         string
	Group        string
	Participants int
}

// QuoteNotificationData feeds the new-quote notification sent to the
// client who opened the request.
type QuoteNotificationData struct {
	ClientName  string
	PartnerName string
	Price       int64
	Timeline    string
	Notes       string
	LoginURL    string
}

// PartnerApprovedData feeds the approval notice sent when an admin
// approves a partner account.
type PartnerApprovedData struct {
	PartnerName string
	LoginURL    string
}

// WelcomeData feeds the registration acknowledgement.
type WelcomeData struct {
	PartnerName string
}
