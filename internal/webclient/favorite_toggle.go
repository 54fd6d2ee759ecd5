package webclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrTogglePending = errors.New("favorite toggle already in progress")

// ToggleFailedMessage is the toast shown for any failed toggle.
const ToggleFailedMessage = "Something went wrong. Please try again."

// ToastError carries the user-facing message of a failed action.
type ToastError struct {
	Message string
	Err     error
}

func (e *ToastError) Error() string { return e.Message }

func (e *ToastError) Unwrap() error { return e.Err }

type favoriteAPI interface {
	AddFavorite(ctx context.Context, gigID int) error
	RemoveFavorite(ctx context.Context, gigID int) error
}

// FavoriteToggle is the favorite button of one gig card. At most one
// mutation is in flight. The displayed state changes only through Sync, fed
// by the next listing or detail fetch.
type FavoriteToggle struct {
	api     favoriteAPI
	gigID   int
	pending atomic.Bool

	mu        sync.Mutex
	favorited bool
}

func NewFavoriteToggle(api favoriteAPI, gigID int, favorited bool) *FavoriteToggle {
	return &FavoriteToggle{api: api, gigID: gigID, favorited: favorited}
}

func (t *FavoriteToggle) Pending() bool { return t.pending.Load() }

func (t *FavoriteToggle) Favorited() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.favorited
}

// Sync applies a state reported by a fresh listing query.
func (t *FavoriteToggle) Sync(favorited bool) {
	t.mu.Lock()
	t.favorited = favorited
	t.mu.Unlock()
}

// Toggle removes the favorite if the gig is favorited and adds it otherwise.
// A call made while another is pending returns ErrTogglePending. Success
// leaves Favorited untouched until the caller syncs the server's state.
func (t *FavoriteToggle) Toggle(ctx context.Context) error {
	if !t.pending.CompareAndSwap(false, true) {
		return ErrTogglePending
	}
	defer t.pending.Store(false)

	current := t.Favorited()
	var err error
	if current {
		err = t.api.RemoveFavorite(ctx, t.gigID)
	} else {
		err = t.api.AddFavorite(ctx, t.gigID)
	}
	if err != nil {
		return &ToastError{Message: ToggleFailedMessage, Err: err}
	}
	return nil
}
