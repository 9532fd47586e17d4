package domain

import "fmt"

// Notification is a transactional email queued for asynchronous delivery.
type Notification struct {
	To      string
	Subject string
	Body    string
	// Kind labels the notification for metrics (e.g. "verify_email").
	Kind string
}

func VerificationNotification(to, name, link string) Notification {
	return Notification{
		To:      to,
		Kind:    "verify_email",
		Subject: "Verify your Salone SkillsHub account",
		Body: fmt.Sprintf("Hello %s,\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours.\n",
			name, link),
	}
}

func NewApplicationNotification(to, jobTitle, seekerName string) Notification {
	return Notification{
		To:      to,
		Kind:    "application_received",
		Subject: fmt.Sprintf("New application for %s", jobTitle),
		Body:    fmt.Sprintf("%s has applied to your posting \"%s\".\n", seekerName, jobTitle),
	}
}

func StatusChangeNotification(to, jobTitle string, status ApplicationStatus) Notification {
	return Notification{
		To:      to,
		Kind:    "application_status",
		Subject: fmt.Sprintf("Update on your application for %s", jobTitle),
		Body:    fmt.Sprintf("Your application for \"%s\" is now %s.\n", jobTitle, status),
	}
}

func NewMessageNotification(to, senderName string) Notification {
	return Notification{
		To:      to,
		Kind:    "new_message",
		Subject: "You have a new message",
		Body:    fmt.Sprintf("%s sent you a message on Salone SkillsHub.\n", senderName),
	}
}
