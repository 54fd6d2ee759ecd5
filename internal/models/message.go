package models

import "time"

type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversationId"`
	UserID         int       `json:"userId"`
	Text           string    `json:"text"`
	Seen           bool      `json:"seen"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MessageWithUser struct {
	Message
	User User `json:"user"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// InboxEvent is pushed to connected websocket clients.
type InboxEvent struct {
	Type       string  `json:"type"`
	ReceiverID int     `json:"receiverId"`
	Message    Message `json:"message"`
}

type DeviceToken struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}
