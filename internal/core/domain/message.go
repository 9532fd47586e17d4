package domain

import "time"

// Thread is a conversation between exactly two users.
type Thread struct {
	ID            string    `json:"id"`
	Participants  []int64   `json:"participants"`
	ApplicationID *int64    `json:"application_id,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasParticipant reports whether userID takes part in the thread.
func (t *Thread) HasParticipant(userID int64) bool {
	if t == nil {
		return false
	}
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Message is a single entry of a thread.
type Message struct {
	ID          string     `json:"id"`
	ThreadID    string     `json:"thread_id"`
	SenderID    int64      `json:"sender_id"`
	RecipientID int64      `json:"recipient_id"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
