package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsyncBack/internal/models"
)

func TestListGigs_FavoritesOnly(t *testing.T) {
	var gotQuery string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.FullGig{
			{Gig: models.Gig{ID: 1}, Favorited: true},
			{Gig: models.Gig{ID: 2}},
			{Gig: models.Gig{ID: 3}, Favorited: true},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	all, err := c.ListGigs(context.Background(), ListOptions{Search: "logo"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "search=logo", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)

	favs, err := c.ListGigs(context.Background(), ListOptions{FavoritesOnly: true, Filter: "Logo Design"})
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, 1, favs[0].ID)
	assert.Equal(t, 3, favs[1].ID)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Seller not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetGig(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Seller not found", apiErr.Message)
}

type blockingFavorites struct {
	release chan struct{}
	added   atomic.Int32
	removed atomic.Int32
	fail    error
}

func (b *blockingFavorites) AddFavorite(ctx context.Context, gigID int) error {
	<-b.release
	b.added.Add(1)
	return b.fail
}

func (b *blockingFavorites) RemoveFavorite(ctx context.Context, gigID int) error {
	<-b.release
	b.removed.Add(1)
	return b.fail
}

func TestFavoriteToggle_RejectsWhilePending(t *testing.T) {
	api := &blockingFavorites{release: make(chan struct{})}
	toggle := NewFavoriteToggle(api, 7, false)

	done := make(chan error, 1)
	go func() { done <- toggle.Toggle(context.Background()) }()

	require.Eventually(t, toggle.Pending, time.Second, time.Millisecond)
	assert.ErrorIs(t, toggle.Toggle(context.Background()), ErrTogglePending)
	assert.False(t, toggle.Favorited(), "no optimistic update while pending")

	close(api.release)
	require.NoError(t, <-done)
	assert.False(t, toggle.Pending())
	assert.Equal(t, int32(1), api.added.Load())
}

func TestFavoriteToggle_StateFollowsServer(t *testing.T) {
	api := &blockingFavorites{release: make(chan struct{})}
	close(api.release)
	toggle := NewFavoriteToggle(api, 7, false)

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.False(t, toggle.Favorited(), "unchanged until the server state arrives")
	assert.Equal(t, int32(1), api.added.Load())

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, int32(2), api.added.Load(), "stale state still picks add")
	assert.Zero(t, api.removed.Load())

	toggle.Sync(true)
	assert.True(t, toggle.Favorited())
	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, int32(1), api.removed.Load())
}

func TestFavoriteToggle_FailureIsToast(t *testing.T) {
	api := &blockingFavorites{release: make(chan struct{}), fail: errors.New("503")}
	close(api.release)
	toggle := NewFavoriteToggle(api, 7, true)

	err := toggle.Toggle(context.Background())
	var toast *ToastError
	require.ErrorAs(t, err, &toast)
	assert.Equal(t, ToggleFailedMessage, toast.Message)
	assert.True(t, toggle.Favorited())
	assert.False(t, toggle.Pending())
}

type scriptedAgent struct {
	mu    sync.Mutex
	resp  models.RecommendationsResponse
	err   error
	calls [][]models.ChatMessage
}

func (s *scriptedAgent) Recommend(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, messages)
	return s.resp, s.err
}

func TestChatWidget(t *testing.T) {
	agent := &scriptedAgent{resp: models.RecommendationsResponse{Recommendations: []models.Recommendation{{GigID: "100", SellerName: "alice"}}}}
	w := NewChatWidget(agent)
	ctx := context.Background()

	assert.False(t, w.Send(ctx, "   "))
	assert.Empty(t, agent.calls)

	require.True(t, w.Send(ctx, "I need a logo"))
	assert.Len(t, w.Cards(), 1)
	assert.Equal(t, ChatLine{Sender: SenderBot, Text: MatchesFoundMessage}, w.Lines()[1])

	agent.resp = models.RecommendationsResponse{Recommendations: []models.Recommendation{}}
	require.True(t, w.Send(ctx, "cheaper?"))
	assert.Empty(t, w.Cards())
	assert.Equal(t, NoMatchesMessage, w.Lines()[3].Text)
	assert.Equal(t, []models.ChatMessage{
		{Role: "user", Text: "I need a logo"},
		{Role: "bot", Text: MatchesFoundMessage},
		{Role: "user", Text: "cheaper?"},
	}, agent.calls[1])

	agent.resp = models.RecommendationsResponse{Recommendations: []models.Recommendation{{GigID: "101"}}}
	require.True(t, w.Send(ctx, "again"))
	agent.err = errors.New("connection refused")
	require.True(t, w.Send(ctx, "hello?"))
	assert.Empty(t, w.Cards())
	lines := w.Lines()
	assert.Equal(t, AgentUnreachableMessage, lines[len(lines)-1].Text)
}

func TestChatWidget_IgnoresSendWhileLoading(t *testing.T) {
	release := make(chan struct{})
	w := NewChatWidget(recommendFunc(func(ctx context.Context, _ []models.ChatMessage) (models.RecommendationsResponse, error) {
		<-release
		return models.RecommendationsResponse{}, nil
	}))

	done := make(chan bool, 1)
	go func() { done <- w.Send(context.Background(), "first") }()
	require.Eventually(t, w.Loading, time.Second, time.Millisecond)

	assert.False(t, w.Send(context.Background(), "second"))
	close(release)
	assert.True(t, <-done)
	assert.Len(t, w.Lines(), 2)
}

type recommendFunc func(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error)

func (f recommendFunc) Recommend(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error) {
	return f(ctx, messages)
}

func TestChatWidget_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recommendations":"not-a-list"}`))
	}))
	defer srv.Close()

	widget := NewChatWidget(New(srv.URL))
	require.True(t, widget.Send(context.Background(), "hi"))
	assert.Equal(t, NoMatchesMessage, widget.Lines()[1].Text)

	srv.Close()
	require.True(t, widget.Send(context.Background(), "still there?"))
	assert.Equal(t, AgentUnreachableMessage, widget.Lines()[3].Text)
}

func TestOpenConversation_WaitsForBoth(t *testing.T) {
	var mu sync.Mutex
	created := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			created = true
			_ = json.NewEncoder(w).Encode(models.Conversation{ID: 5, ParticipantOneID: 1, ParticipantTwoID: 2})
		case http.MethodGet:
			if !created {
				http.Error(w, "Conversation not found", http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(models.ConversationView{
				Conversation: models.Conversation{ID: 5},
				OtherUser:    models.User{Username: "alice"},
			})
		}
	}))
	defer srv.Close()

	conv, view, err := New(srv.URL).OpenConversation(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, conv.ID)
	assert.Equal(t, 5, view.Conversation.ID)
	assert.Equal(t, "alice", view.OtherUser.Username)
}

func TestOpenConversation_MutationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "User not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := New(srv.URL).OpenConversation(context.Background(), "ghost")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}
