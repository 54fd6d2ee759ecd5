package models

import "time"

type Conversation struct {
	ID               int       `json:"id"`
	ParticipantOneID int       `json:"participantOneId"`
	ParticipantTwoID int       `json:"participantTwoId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OtherParticipant returns the id of the participant that is not userID.
func (c Conversation) OtherParticipant(userID int) int {
	if c.ParticipantOneID == userID {
		return c.ParticipantTwoID
	}
	return c.ParticipantOneID
}

func (c Conversation) HasParticipant(userID int) bool {
	return c.ParticipantOneID == userID || c.ParticipantTwoID == userID
}

type ConversationView struct {
	Conversation      Conversation      `json:"conversation"`
	OtherUser         User              `json:"otherUser"`
	MessagesWithUsers []MessageWithUser `json:"messagesWithUsers"`
}

// InboxEntry is one row of the inbox sidebar.
type InboxEntry struct {
	Conversation Conversation `json:"conversation"`
	OtherUser    User         `json:"otherUser"`
	LastMessage  *Message     `json:"lastMessage,omitempty"`
}
