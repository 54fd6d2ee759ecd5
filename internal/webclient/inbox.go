package webclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"skillsyncBack/internal/models"
)

func (c *Client) GetOrCreateConversation(ctx context.Context, username string) (models.Conversation, error) {
	var conv models.Conversation
	err := c.do(ctx, http.MethodPost, "/conversations/"+url.PathEscape(username), nil, nil, &conv)
	return conv, err
}

func (c *Client) GetConversation(ctx context.Context, username string) (models.ConversationView, error) {
	var view models.ConversationView
	err := c.do(ctx, http.MethodGet, "/conversations/"+url.PathEscape(username), nil, nil, &view)
	return view, err
}

func (c *Client) Inbox(ctx context.Context) ([]models.InboxEntry, error) {
	var entries []models.InboxEntry
	err := c.do(ctx, http.MethodGet, "/conversations", nil, nil, &entries)
	return entries, err
}

func (c *Client) SendMessage(ctx context.Context, conversationID int, text string) (models.Message, error) {
	var msg models.Message
	path := "/conversations/" + strconv.Itoa(conversationID) + "/messages"
	err := c.do(ctx, http.MethodPost, path, nil, models.SendMessageRequest{Text: text}, &msg)
	return msg, err
}

// OpenConversation loads the conversation page: the get-or-create mutation
// and the messages query run concurrently and the page is returned only once
// both have loaded. A query that raced ahead of the first creation is
// retried after the mutation completes.
func (c *Client) OpenConversation(ctx context.Context, username string) (models.Conversation, models.ConversationView, error) {
	var (
		conv      models.Conversation
		view      models.ConversationView
		needQuery bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conv, err = c.GetOrCreateConversation(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		view, err = c.GetConversation(gctx, username)
		if IsStatus(err, http.StatusNotFound) {
			needQuery = true
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Conversation{}, models.ConversationView{}, err
	}
	if needQuery {
		var err error
		if view, err = c.GetConversation(ctx, username); err != nil {
			return models.Conversation{}, models.ConversationView{}, err
		}
	}
	return conv, view, nil
}
