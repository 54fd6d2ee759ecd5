// Package notify sends push notifications through Firebase Cloud Messaging.
package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"skillsyncBack/internal/logging"
)

// Sender is implemented by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type TokenStore interface {
	TokensByUser(ctx context.Context, userID int) ([]string, error)
	DeleteToken(ctx context.Context, token string) error
}

// NewMessagingClient initialises the Firebase app from a service account file.
func NewMessagingClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}
	return client, nil
}

type Notifier struct {
	sender Sender
	tokens TokenStore
	logger logging.Logger
}

// NewNotifier returns a notifier. A nil sender turns every call into a no-op.
func NewNotifier(sender Sender, tokens TokenStore, logger logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Notifier{sender: sender, tokens: tokens, logger: logger}
}

// NotifyNewMessage pushes a chat notification to every device of userID.
// Tokens FCM reports as unregistered are removed.
func (n *Notifier) NotifyNewMessage(ctx context.Context, userID int, senderName, text string, conversationID int) error {
	if n == nil || n.sender == nil {
		return nil
	}
	tokens, err := n.tokens.TokensByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch device tokens: %w", err)
	}
	for _, token := range tokens {
		msg := newMessage(token, senderName, preview(text), map[string]string{
			"type":           "message",
			"conversationId": fmt.Sprint(conversationID),
			"sender":         senderName,
		})
		id, err := n.sender.Send(ctx, msg)
		if err != nil {
			if messaging.IsRegistrationTokenNotRegistered(err) {
				if derr := n.tokens.DeleteToken(ctx, token); derr != nil {
					n.logger.Errorf("delete stale token: %v", derr)
				}
				continue
			}
			n.logger.Errorf("fcm send to user %d: %v", userID, err)
			continue
		}
		n.logger.Infof("fcm sent %s to user %d", id, userID)
	}
	return nil
}

func newMessage(token, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: title, Body: body},
					Sound: "default",
				},
			},
		},
	}
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= 120 {
		return text
	}
	return string(r[:117]) + "..."
}
