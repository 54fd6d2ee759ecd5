package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsyncBack/internal/models"
)

type fakeConversations struct {
	mu    sync.Mutex
	convs []models.Conversation
}

func (f *fakeConversations) GetByParticipants(ctx context.Context, a, b int) (models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.HasParticipant(a) && c.HasParticipant(b) {
			return c, nil
		}
	}
	return models.Conversation{}, models.ErrNoRecord
}

func (f *fakeConversations) GetByID(ctx context.Context, id int) (models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Conversation{}, models.ErrNoRecord
}

func (f *fakeConversations) GetOrCreate(ctx context.Context, a, b int) (models.Conversation, error) {
	if c, err := f.GetByParticipants(ctx, a, b); err == nil {
		return c, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if a > b {
		a, b = b, a
	}
	c := models.Conversation{ID: len(f.convs) + 1, ParticipantOneID: a, ParticipantTwoID: b, CreatedAt: t0}
	f.convs = append(f.convs, c)
	return c, nil
}

func (f *fakeConversations) ListByUser(ctx context.Context, userID int) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Conversation
	for _, c := range f.convs {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeMessages struct {
	mu       sync.Mutex
	users    *fakeUsers
	messages []models.Message
	clock    time.Time
}

func (f *fakeMessages) CreateMessage(ctx context.Context, m models.Message) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Minute)
	m.ID = len(f.messages) + 1
	m.CreatedAt = f.clock
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessages) ListWithUsers(ctx context.Context, conversationID int) ([]models.MessageWithUser, error) {
	f.mu.Lock()
	msgs := append([]models.Message(nil), f.messages...)
	f.mu.Unlock()
	out := []models.MessageWithUser{}
	for _, m := range msgs {
		if m.ConversationID != conversationID {
			continue
		}
		u, err := f.users.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.MessageWithUser{Message: m, User: u})
	}
	return out, nil
}

func (f *fakeMessages) LastMessage(ctx context.Context, conversationID int) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].ConversationID == conversationID {
			m := f.messages[i]
			return &m, nil
		}
	}
	return nil, nil
}

type recordingPusher struct {
	events []models.InboxEvent
	err    error
}

func (p *recordingPusher) PushInboxEvent(ctx context.Context, event models.InboxEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type notification struct {
	userID int
	sender string
	text   string
}

type recordingNotifier struct {
	sent []notification
}

func (n *recordingNotifier) NotifyNewMessage(ctx context.Context, userID int, senderName, text string, conversationID int) error {
	n.sent = append(n.sent, notification{userID: userID, sender: senderName, text: text})
	return nil
}

func newConversationService(w *world) (*ConversationService, *recordingPusher, *recordingNotifier) {
	pusher := &recordingPusher{}
	notifier := &recordingNotifier{}
	return &ConversationService{
		Users:         w.users,
		Conversations: &fakeConversations{},
		Messages:      &fakeMessages{users: w.users, clock: t0},
		Pusher:        pusher,
		Notifier:      notifier,
	}, pusher, notifier
}

func TestGetOrCreateConversation(t *testing.T) {
	svc, _, _ := newConversationService(newWorld())
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ParticipantOneID)
	assert.Equal(t, 2, first.ParticipantTwoID)

	again, err := svc.GetOrCreate(ctx, ident("tok-alice"), "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.GetOrCreate(ctx, ident("tok-bob"), "bob")
	assert.ErrorIs(t, err, models.ErrSelfConversation)

	_, err = svc.GetOrCreate(ctx, ident("tok-bob"), "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = svc.GetOrCreate(ctx, nil, "alice")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestGetConversation(t *testing.T) {
	svc, _, _ := newConversationService(newWorld())
	ctx := context.Background()

	_, err := svc.Get(ctx, ident("tok-bob"), "alice")
	assert.ErrorIs(t, err, models.ErrConversationNotFound)

	conv, err := svc.GetOrCreate(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)
	_, err = svc.Send(ctx, ident("tok-bob"), conv.ID, "hi there")
	require.NoError(t, err)
	_, err = svc.Send(ctx, ident("tok-alice"), conv.ID, "hello")
	require.NoError(t, err)

	view, err := svc.Get(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.OtherUser.Username)
	require.Len(t, view.MessagesWithUsers, 2)
	assert.Equal(t, "bob", view.MessagesWithUsers[0].User.Username)
	assert.Equal(t, "hello", view.MessagesWithUsers[1].Text)
}

func TestSendMessage(t *testing.T) {
	svc, pusher, notifier := newConversationService(newWorld())
	ctx := context.Background()

	conv, err := svc.GetOrCreate(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)

	msg, err := svc.Send(ctx, ident("tok-bob"), conv.ID, "  can you do a logo?  ")
	require.NoError(t, err)
	assert.Equal(t, "can you do a logo?", msg.Text)
	assert.Equal(t, 2, msg.UserID)

	require.Len(t, pusher.events, 1)
	assert.Equal(t, 1, pusher.events[0].ReceiverID)
	assert.Equal(t, "message", pusher.events[0].Type)
	assert.Equal(t, []notification{{userID: 1, sender: "bob", text: "can you do a logo?"}}, notifier.sent)

	_, err = svc.Send(ctx, ident("tok-carol"), conv.ID, "let me in")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Send(ctx, ident("tok-bob"), 999, "hello?")
	assert.ErrorIs(t, err, models.ErrConversationNotFound)

	_, err = svc.Send(ctx, ident("tok-bob"), conv.ID, "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSendMessage_PushFailureIsNotFatal(t *testing.T) {
	svc, pusher, notifier := newConversationService(newWorld())
	pusher.err = errors.New("hub closed")
	ctx := context.Background()

	conv, err := svc.GetOrCreate(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)
	_, err = svc.Send(ctx, ident("tok-bob"), conv.ID, "ping")
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)
}

func TestListConversations(t *testing.T) {
	svc, _, _ := newConversationService(newWorld())
	ctx := context.Background()

	withAlice, err := svc.GetOrCreate(ctx, ident("tok-bob"), "alice")
	require.NoError(t, err)
	withCarol, err := svc.GetOrCreate(ctx, ident("tok-bob"), "carol")
	require.NoError(t, err)

	_, err = svc.Send(ctx, ident("tok-bob"), withCarol.ID, "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, ident("tok-alice"), withAlice.ID, "second")
	require.NoError(t, err)

	entries, err := svc.List(ctx, ident("tok-bob"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].OtherUser.Username)
	assert.Equal(t, "second", entries[0].LastMessage.Text)
	assert.Equal(t, "carol", entries[1].OtherUser.Username)

	aliceInbox, err := svc.List(ctx, ident("tok-alice"))
	require.NoError(t, err)
	assert.Len(t, aliceInbox, 1)
}
