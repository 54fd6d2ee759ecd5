package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skillsyncBack/internal/agent"
	"skillsyncBack/internal/auth"
	"skillsyncBack/internal/cache"
	"skillsyncBack/internal/config"
	"skillsyncBack/internal/events"
	"skillsyncBack/internal/handlers"
	"skillsyncBack/internal/notify"
	"skillsyncBack/internal/repositories"
	"skillsyncBack/internal/services"
	"skillsyncBack/internal/storage"
)

type application struct {
	logger *zap.SugaredLogger
	tokens *auth.Manager
	users  services.UserStore
	hub    *inboxHub

	gigHandler          *handlers.GigHandler
	sellerHandler       *handlers.SellerHandler
	reviewHandler       *handlers.ReviewHandler
	favoriteHandler     *handlers.FavoriteHandler
	userHandler         *handlers.UserHandler
	categoryHandler     *handlers.CategoryHandler
	conversationHandler *handlers.ConversationHandler
	checkoutHandler     *handlers.CheckoutHandler
	chatHandler         *handlers.ChatHandler
}

// initializeApp wires repositories, services and handlers. Optional
// integrations that are not configured, or fail to connect, stay disabled.
// The returned cleanup closes what was opened.
func initializeApp(ctx context.Context, cfg config.Config, db *sql.DB, logger *zap.SugaredLogger) (*application, func(), error) {
	tokens, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return nil, nil, err
	}
	var closers []func() error

	userRepo := &repositories.UserRepository{DB: db}
	gigRepo := &repositories.GigRepository{DB: db}
	offerRepo := &repositories.OfferRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	favoriteRepo := &repositories.FavoriteRepository{DB: db}
	mediaRepo := &repositories.MediaRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	orderRepo := &repositories.OrderRepository{DB: db}
	conversationRepo := &repositories.ConversationRepository{DB: db}
	messageRepo := &repositories.MessageRepository{DB: db}
	deviceRepo := &repositories.DeviceRepository{DB: db}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			logger.Errorf("redis disabled: %v", err)
		} else {
			closers = append(closers, rdb.Close)
		}
	}

	var uploader services.ObjectUploader
	if cfg.S3.Bucket != "" {
		s3Storage, err := storage.NewS3Storage(storage.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			URLTTL:    cfg.S3.URLTTL,
		})
		if err != nil {
			logger.Errorf("s3 disabled: %v", err)
		} else {
			uploader = s3Storage
		}
	}

	var sender notify.Sender
	if cfg.Firebase.CredentialsFile != "" {
		client, err := notify.NewMessagingClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Errorf("push notifications disabled: %v", err)
		} else {
			sender = client
		}
	}
	notifier := notify.NewNotifier(sender, deviceRepo, logger)

	var publisher services.OrderPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			logger.Errorf("order events disabled: %v", err)
		} else {
			publisher = p
			closers = append(closers, p.Close)
		}
	}

	var stripe *services.StripeClient
	var gateway services.CheckoutGateway
	var prices services.PriceCreator
	if cfg.Stripe.SecretKey != "" {
		stripe, err = services.NewStripeClient(services.StripeConfig{
			SecretKey: cfg.Stripe.SecretKey,
			BaseURL:   cfg.Stripe.BaseURL,
			Currency:  cfg.Stripe.Currency,
			Logger:    logger,
		})
		if err != nil {
			logger.Errorf("payments disabled: %v", err)
		} else {
			gateway, prices = stripe, stripe
		}
	}

	var recommender services.Recommender
	if cfg.Gemini.APIKey != "" {
		r, err := agent.New(ctx, agent.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Gemini.Temperature,
		}, logger)
		if err != nil {
			logger.Errorf("recommendation agent disabled: %v", err)
		} else {
			recommender = r
		}
	}

	var categoryCache services.Cache
	if rdb != nil {
		categoryCache = cache.NewJSONCache(rdb, "categories", cfg.Redis.CacheTTL)
	}

	hub := newInboxHub(rdb, logger)

	gigService := &services.GigService{
		Gigs:       gigRepo,
		Users:      userRepo,
		Offers:     offerRepo,
		Reviews:    reviewRepo,
		Favorites:  favoriteRepo,
		Media:      mediaRepo,
		Categories: categoryRepo,
		Storage:    uploader,
		Prices:     prices,
		Logger:     logger,
	}
	var signer services.URLSigner
	if uploader != nil {
		signer = uploader
	}
	sellerService := &services.SellerService{
		Users:   userRepo,
		Gigs:    gigRepo,
		Offers:  offerRepo,
		Orders:  orderRepo,
		Media:   mediaRepo,
		Reviews: reviewRepo,
		Storage: signer,
		Logger:  logger,
	}
	reviewService := &services.ReviewService{Users: userRepo, Gigs: gigRepo, Reviews: reviewRepo}
	favoriteService := &services.FavoriteService{Users: userRepo, Gigs: gigRepo, Favorites: favoriteRepo}
	userService := &services.UserService{Users: userRepo, Devices: deviceRepo}
	categoryService := &services.CategoryService{Categories: categoryRepo, Cache: categoryCache, Logger: logger}
	conversationService := &services.ConversationService{
		Users:         userRepo,
		Conversations: conversationRepo,
		Messages:      messageRepo,
		Pusher:        hub,
		Notifier:      notifier,
		Logger:        logger,
	}
	checkoutService := &services.CheckoutService{
		Users:         userRepo,
		Gigs:          gigRepo,
		Offers:        offerRepo,
		Orders:        orderRepo,
		Stripe:        gateway,
		Events:        publisher,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
		Logger:        logger,
	}
	recommendationService := &services.RecommendationService{
		Users:      userRepo,
		Gigs:       gigRepo,
		Offers:     offerRepo,
		Reviews:    reviewRepo,
		Categories: categoryRepo,
		Agent:      recommender,
		Logger:     logger,
	}

	app := &application{
		logger: logger,
		tokens: tokens,
		users:  userRepo,
		hub:    hub,

		gigHandler:          &handlers.GigHandler{Service: gigService, Logger: logger},
		sellerHandler:       &handlers.SellerHandler{Service: sellerService, Logger: logger},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService, Logger: logger},
		favoriteHandler:     &handlers.FavoriteHandler{Service: favoriteService, Logger: logger},
		userHandler:         &handlers.UserHandler{Service: userService, Logger: logger},
		categoryHandler:     &handlers.CategoryHandler{Service: categoryService, Logger: logger},
		conversationHandler: &handlers.ConversationHandler{Service: conversationService, Logger: logger},
		checkoutHandler:     &handlers.CheckoutHandler{Service: checkoutService, Logger: logger},
		chatHandler:         &handlers.ChatHandler{Service: recommendationService, Logger: logger},
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Errorf("cleanup: %v", err)
			}
		}
	}
	return app, cleanup, nil
}

func openDB(dsn string, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	return db, nil
}
