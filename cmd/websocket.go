package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"skillsyncBack/internal/handlers"
	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
)

const (
	readLimit     = 1 << 16
	readDeadline  = 60 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 25 * time.Second

	inboxChannel = "skillsync:inbox"
)

var errHubStopped = errors.New("inbox hub stopped")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsClient struct {
	userID int
	conn   *websocket.Conn
}

// inboxHub delivers inbox events to connected users. All connection state
// is owned by the Run goroutine. With Redis configured, events go through
// pub/sub so every instance delivers to its own sockets.
type inboxHub struct {
	clients    map[int]map[*websocket.Conn]struct{}
	register   chan wsClient
	unregister chan wsClient
	deliver    chan models.InboxEvent
	done       chan struct{}

	rdb    *redis.Client
	logger logging.Logger
}

func newInboxHub(rdb *redis.Client, logger logging.Logger) *inboxHub {
	if logger == nil {
		logger = logging.Nop()
	}
	return &inboxHub{
		clients:    make(map[int]map[*websocket.Conn]struct{}),
		register:   make(chan wsClient),
		unregister: make(chan wsClient),
		deliver:    make(chan models.InboxEvent, 64),
		done:       make(chan struct{}),
		rdb:        rdb,
		logger:     logger,
	}
}

// PushInboxEvent implements services.Pusher.
func (h *inboxHub) PushInboxEvent(ctx context.Context, event models.InboxEvent) error {
	if h.rdb != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return h.rdb.Publish(ctx, inboxChannel, payload).Err()
	}
	return h.enqueue(ctx, event)
}

func (h *inboxHub) enqueue(ctx context.Context, event models.InboxEvent) error {
	select {
	case <-h.done:
		return errHubStopped
	default:
	}
	select {
	case h.deliver <- event:
		return nil
	case <-h.done:
		return errHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run owns the client map until ctx is cancelled, then closes every socket.
func (h *inboxHub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		sub := h.rdb.Subscribe(ctx, inboxChannel)
		defer sub.Close()
		go h.relay(ctx, sub.Channel())
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for conn := range conns {
					_ = conn.Close()
				}
			}
			return

		case c := <-h.register:
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*websocket.Conn]struct{})
			}
			h.clients[c.userID][c.conn] = struct{}{}

		case c := <-h.unregister:
			h.drop(c.userID, c.conn)

		case event := <-h.deliver:
			for conn := range h.clients[event.ReceiverID] {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(event); err != nil {
					h.logger.Errorf("ws send to user %d: %v", event.ReceiverID, err)
					h.drop(event.ReceiverID, conn)
				}
			}

		case <-ticker.C:
			for userID, conns := range h.clients {
				for conn := range conns {
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
						h.drop(userID, conn)
					}
				}
			}
		}
	}
}

func (h *inboxHub) drop(userID int, conn *websocket.Conn) {
	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	_ = conn.Close()
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
}

func (h *inboxHub) relay(ctx context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event models.InboxEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.logger.Errorf("ws relay decode: %v", err)
				continue
			}
			if err := h.enqueue(ctx, event); err != nil {
				return
			}
		}
	}
}

// attach registers conn for userID and reads until the peer goes away.
// Inbound frames are ignored; messages are sent over HTTP.
func (h *inboxHub) attach(conn *websocket.Conn, userID int) {
	c := wsClient{userID: userID, conn: conn}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- c:
				case <-h.done:
				}
				return
			}
		}
	}()
}

func (app *application) serveInbox(w http.ResponseWriter, r *http.Request) {
	identity := handlers.IdentityFrom(r)
	user, err := app.users.GetByToken(r.Context(), identity.TokenIdentifier)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, models.ErrCouldNotAuth.Error(), http.StatusUnauthorized)
			return
		}
		app.serverError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.Errorf("websocket upgrade: %v", err)
		return
	}
	app.hub.attach(conn, user.ID)
}
