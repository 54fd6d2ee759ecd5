package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"skillsyncBack/internal/models"
)

// Pusher delivers realtime inbox events to connected clients.
type Pusher interface {
	PushInboxEvent(ctx context.Context, event models.InboxEvent) error
}

type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, userID int, senderName, text string, conversationID int) error
}

type ConversationService struct {
	Users         UserStore
	Conversations ConversationStore
	Messages      MessageStore
	Pusher        Pusher
	Notifier      MessageNotifier
	Logger        Logger
}

func (s *ConversationService) participants(ctx context.Context, identity *models.Identity, otherUsername string) (models.User, models.User, error) {
	me, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.User{}, models.User{}, err
	}
	other, err := s.Users.GetByUsername(ctx, otherUsername)
	if errors.Is(err, models.ErrNoRecord) {
		return models.User{}, models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, models.User{}, err
	}
	if other.ID == me.ID {
		return models.User{}, models.User{}, models.ErrSelfConversation
	}
	return me, other, nil
}

// GetOrCreate returns the conversation between the caller and otherUsername,
// creating it on first contact.
func (s *ConversationService) GetOrCreate(ctx context.Context, identity *models.Identity, otherUsername string) (models.Conversation, error) {
	me, other, err := s.participants(ctx, identity, otherUsername)
	if err != nil {
		return models.Conversation{}, err
	}
	return s.Conversations.GetOrCreate(ctx, me.ID, other.ID)
}

// Get returns the conversation with its messages joined with their authors.
func (s *ConversationService) Get(ctx context.Context, identity *models.Identity, otherUsername string) (models.ConversationView, error) {
	me, other, err := s.participants(ctx, identity, otherUsername)
	if err != nil {
		return models.ConversationView{}, err
	}
	conv, err := s.Conversations.GetByParticipants(ctx, me.ID, other.ID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ConversationView{}, models.ErrConversationNotFound
	}
	if err != nil {
		return models.ConversationView{}, err
	}
	messages, err := s.Messages.ListWithUsers(ctx, conv.ID)
	if err != nil {
		return models.ConversationView{}, err
	}
	return models.ConversationView{Conversation: conv, OtherUser: other, MessagesWithUsers: messages}, nil
}

// List returns the inbox sidebar, most recently active first.
func (s *ConversationService) List(ctx context.Context, identity *models.Identity) ([]models.InboxEntry, error) {
	me, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return nil, err
	}
	convs, err := s.Conversations.ListByUser(ctx, me.ID)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []models.InboxEntry{}, nil
	}

	otherIDs := make([]int, 0, len(convs))
	for _, c := range convs {
		otherIDs = append(otherIDs, c.OtherParticipant(me.ID))
	}
	users, err := s.Users.GetByIDs(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	last := make(map[int]*models.Message, len(convs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultFanOut)
	for _, c := range convs {
		g.Go(func() error {
			m, err := s.Messages.LastMessage(gctx, c.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			last[c.ID] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]models.InboxEntry, 0, len(convs))
	for _, c := range convs {
		other, ok := users[c.OtherParticipant(me.ID)]
		if !ok {
			continue
		}
		entries = append(entries, models.InboxEntry{Conversation: c, OtherUser: other, LastMessage: last[c.ID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return lastActivity(entries[i]).After(lastActivity(entries[j]))
	})
	return entries, nil
}

func lastActivity(e models.InboxEntry) time.Time {
	if e.LastMessage != nil {
		return e.LastMessage.CreatedAt
	}
	return e.Conversation.CreatedAt
}

// Send appends a message from the caller and notifies the other participant.
// Delivery failures are logged; the stored message is still returned.
func (s *ConversationService) Send(ctx context.Context, identity *models.Identity, conversationID int, text string) (models.Message, error) {
	me, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.Message{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, fmt.Errorf("%w: message text is required", models.ErrInvalidInput)
	}
	conv, err := s.Conversations.GetByID(ctx, conversationID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Message{}, models.ErrConversationNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	if !conv.HasParticipant(me.ID) {
		return models.Message{}, models.ErrForbidden
	}

	msg, err := s.Messages.CreateMessage(ctx, models.Message{ConversationID: conv.ID, UserID: me.ID, Text: text})
	if err != nil {
		return models.Message{}, err
	}

	receiver := conv.OtherParticipant(me.ID)
	log := logOrNop(s.Logger)
	if s.Pusher != nil {
		event := models.InboxEvent{Type: "message", ReceiverID: receiver, Message: msg}
		if err := s.Pusher.PushInboxEvent(ctx, event); err != nil {
			log.Errorf("push message %d: %v", msg.ID, err)
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyNewMessage(ctx, receiver, me.Username, msg.Text, conv.ID); err != nil {
			log.Errorf("notify message %d: %v", msg.ID, err)
		}
	}
	return msg, nil
}
