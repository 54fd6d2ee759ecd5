package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.authenticate)
	authMiddleware := standardMiddleware.Append(requireIdentity)
	webhookMiddleware := alice.New(app.recoverPanic, app.logRequest)

	mux := pat.New()

	// Gigs
	mux.Get("/gigs", standardMiddleware.ThenFunc(app.gigHandler.ListGigs))
	mux.Post("/gigs", authMiddleware.ThenFunc(app.gigHandler.CreateGig))
	mux.Get("/gigs/:id", standardMiddleware.ThenFunc(app.gigHandler.GetGig))
	mux.Put("/gigs/:id/publish", authMiddleware.ThenFunc(app.gigHandler.Publish))
	mux.Put("/gigs/:id/unpublish", authMiddleware.ThenFunc(app.gigHandler.Unpublish))
	mux.Post("/gigs/:id/offers", authMiddleware.ThenFunc(app.gigHandler.CreateOffer))
	mux.Post("/gigs/:id/media", authMiddleware.ThenFunc(app.gigHandler.UploadMedia))

	// Reviews
	mux.Post("/gigs/:id/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/gigs/:id/reviews/summary", standardMiddleware.ThenFunc(app.reviewHandler.Summary))

	// Favorites
	mux.Post("/favorites/:gig_id", authMiddleware.ThenFunc(app.favoriteHandler.Add))
	mux.Del("/favorites/:gig_id", authMiddleware.ThenFunc(app.favoriteHandler.Remove))

	// Sellers
	mux.Get("/sellers/me/stats", authMiddleware.ThenFunc(app.sellerHandler.GigStats))
	mux.Get("/sellers/:username/gigs/images", standardMiddleware.ThenFunc(app.sellerHandler.GigsWithImages))
	mux.Get("/sellers/:username/gigs", standardMiddleware.ThenFunc(app.sellerHandler.GigsBySellerName))

	// Users
	mux.Post("/users/store", authMiddleware.ThenFunc(app.userHandler.Store))
	mux.Get("/users/:username/profile", standardMiddleware.ThenFunc(app.sellerHandler.Profile))
	mux.Get("/users/:username/languages", standardMiddleware.ThenFunc(app.userHandler.Languages))
	mux.Get("/users/:username/country", standardMiddleware.ThenFunc(app.userHandler.Country))
	mux.Get("/users/:username/skills", standardMiddleware.ThenFunc(app.userHandler.Skills))
	mux.Get("/users/:username", standardMiddleware.ThenFunc(app.userHandler.GetByUsername))
	mux.Post("/devices", authMiddleware.ThenFunc(app.userHandler.RegisterDevice))

	// Categories
	mux.Get("/categories", standardMiddleware.ThenFunc(app.categoryHandler.List))

	// Inbox
	mux.Get("/conversations", authMiddleware.ThenFunc(app.conversationHandler.List))
	mux.Post("/conversations/:id/messages", authMiddleware.ThenFunc(app.conversationHandler.Send))
	mux.Post("/conversations/:username", authMiddleware.ThenFunc(app.conversationHandler.GetOrCreate))
	mux.Get("/conversations/:username", authMiddleware.ThenFunc(app.conversationHandler.Get))
	mux.Get("/ws", authMiddleware.ThenFunc(app.serveInbox))

	// Checkout
	mux.Post("/checkout", authMiddleware.ThenFunc(app.checkoutHandler.Checkout))
	mux.Post("/stripe/webhook", webhookMiddleware.ThenFunc(app.checkoutHandler.StripeWebhook))

	// Chat agent
	mux.Post("/chat", standardMiddleware.ThenFunc(app.chatHandler.Chat))
	mux.Get("/chat/feed", standardMiddleware.ThenFunc(app.chatHandler.Feed))

	return mux
}
