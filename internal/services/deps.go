package services

import (
	"context"
	"errors"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
)

// Store interfaces are satisfied by the repositories package and stubbed in
// tests.

type UserStore interface {
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByToken(ctx context.Context, tokenIdentifier string) (models.User, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, u models.User) (models.User, error)
	GetLanguages(ctx context.Context, userID int) ([]string, error)
	GetSkills(ctx context.Context, userID int) ([]models.Skill, error)
}

type GigStore interface {
	CreateGig(ctx context.Context, g models.Gig) (models.Gig, error)
	GetGigByID(ctx context.Context, id int) (models.Gig, error)
	ListPublished(ctx context.Context) ([]models.Gig, error)
	SearchPublished(ctx context.Context, text string) ([]models.Gig, error)
	ListBySeller(ctx context.Context, sellerID int) ([]models.Gig, error)
	SetPublished(ctx context.Context, id int, published bool) error
}

type OfferStore interface {
	CreateOffer(ctx context.Context, o models.Offer) (models.Offer, error)
	GetOfferByID(ctx context.Context, id int) (models.Offer, error)
	FirstByGig(ctx context.Context, gigID int) (*models.Offer, error)
	ListByGig(ctx context.Context, gigID int) ([]models.Offer, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, r models.Review) (models.Review, error)
	ListByGig(ctx context.Context, gigID int) ([]models.Review, error)
	ListBySeller(ctx context.Context, sellerID int) ([]models.Review, error)
}

type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID, gigID int) (models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, gigID int) error
	IsFavorited(ctx context.Context, userID, gigID int) (bool, error)
	FavoritedAmong(ctx context.Context, userID int, gigIDs []int) (map[int]bool, error)
}

type MediaStore interface {
	CreateMedia(ctx context.Context, m models.Media) (models.Media, error)
	FirstByGig(ctx context.Context, gigID int) (*models.Media, error)
	ListByGig(ctx context.Context, gigID int) ([]models.Media, error)
}

type CategoryStore interface {
	GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error)
	ListSubcategories(ctx context.Context) ([]models.Subcategory, error)
	GetSubcategoryByName(ctx context.Context, name string) (models.Subcategory, error)
	GetSubcategoryByID(ctx context.Context, id int) (models.Subcategory, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o models.Order) (bool, error)
	ListByGig(ctx context.Context, gigID int) ([]models.Order, error)
}

type ConversationStore interface {
	GetByParticipants(ctx context.Context, a, b int) (models.Conversation, error)
	GetByID(ctx context.Context, id int) (models.Conversation, error)
	GetOrCreate(ctx context.Context, a, b int) (models.Conversation, error)
	ListByUser(ctx context.Context, userID int) ([]models.Conversation, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m models.Message) (models.Message, error)
	ListWithUsers(ctx context.Context, conversationID int) ([]models.MessageWithUser, error)
	LastMessage(ctx context.Context, conversationID int) (*models.Message, error)
}

type DeviceStore interface {
	RegisterToken(ctx context.Context, userID int, token string) error
}

// URLSigner turns a storage id into a readable URL.
type URLSigner interface {
	PresignGet(key string) (string, error)
}

type ObjectUploader interface {
	URLSigner
	Upload(ctx context.Context, key, contentType string, data []byte) error
}

type Logger = logging.Logger

const defaultFanOut = 8

func logOrNop(l Logger) Logger {
	if l == nil {
		return logging.Nop()
	}
	return l
}

// currentUser resolves the caller. A nil identity or an identity without a
// stored user yields nil without error.
func currentUser(ctx context.Context, users UserStore, identity *models.Identity) (*models.User, error) {
	if identity == nil || identity.TokenIdentifier == "" {
		return nil, nil
	}
	u, err := users.GetByToken(ctx, identity.TokenIdentifier)
	if errors.Is(err, models.ErrNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// requireUser is currentUser for mutations: no identity is ErrUnauthorized,
// an identity with no stored user is ErrCouldNotAuth.
func requireUser(ctx context.Context, users UserStore, identity *models.Identity) (models.User, error) {
	if identity == nil || identity.TokenIdentifier == "" {
		return models.User{}, models.ErrUnauthorized
	}
	u, err := currentUser(ctx, users, identity)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, models.ErrCouldNotAuth
	}
	return *u, nil
}
