package models

import (
	"errors"
)

var (
	ErrNoRecord             = errors.New("models: no matching record found")
	ErrUserNotFound         = errors.New("User not found")
	ErrSellerNotFound       = errors.New("Seller not found")
	ErrGigNotFound          = errors.New("Gig not found")
	ErrOfferNotFound        = errors.New("Offer not found")
	ErrImageNotFound        = errors.New("Image not found")
	ErrConversationNotFound = errors.New("Conversation not found")
	ErrUnauthorized         = errors.New("Unauthorized")
	ErrCouldNotAuth         = errors.New("couldn't authenticate user")
	ErrForbidden            = errors.New("Forbidden")
	ErrAlreadyFavorited     = errors.New("Gig already favorited")
	ErrNotFavorited         = errors.New("Favorited gig not found")
	ErrAlreadyReviewed      = errors.New("You have already reviewed this gig")
	ErrOwnGigReview         = errors.New("You cannot review your own gig")
	ErrInvalidScore         = errors.New("review scores must be between 1 and 5")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrStripeSession        = errors.New("Stripe session error")
	ErrPaymentsDisabled     = errors.New("payments are not configured")
	ErrStorageDisabled      = errors.New("file storage is not configured")
	ErrAgentDisabled        = errors.New("recommendation agent is not configured")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
)
