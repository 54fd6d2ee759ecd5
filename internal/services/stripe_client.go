package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeConfig struct {
	SecretKey string
	// Defaults to https://api.stripe.com.
	BaseURL  string
	Currency string

	Client *http.Client
	Logger Logger
}

// StripeClient creates the prices and checkout sessions the marketplace uses.
type StripeClient struct {
	api      *client.API
	currency string
	logger   Logger
}

func NewStripeClient(cfg StripeConfig) (*StripeClient, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	logger := logOrNop(cfg.Logger)
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     stripeLogger{logger},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})

	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "usd"
	}
	return &StripeClient{api: api, currency: currency, logger: logger}, nil
}

// stripeLogger routes stripe-go's leveled logging into ours.
type stripeLogger struct{ l Logger }

func (s stripeLogger) Debugf(format string, v ...interface{}) {}
func (s stripeLogger) Infof(format string, v ...interface{})  { s.l.Infof(format, v...) }
func (s stripeLogger) Warnf(format string, v ...interface{})  { s.l.Errorf(format, v...) }
func (s stripeLogger) Errorf(format string, v ...interface{}) { s.l.Errorf(format, v...) }

type CheckoutSessionParams struct {
	// PriceID is used when set; otherwise ProductName and Amount build
	// inline price data.
	PriceID     string
	ProductName string
	Amount      float64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// toMinorUnits converts a decimal amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (CheckoutSession, error) {
	item := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(1)}
	if p.PriceID != "" {
		item.Price = stripe.String(p.PriceID)
	} else {
		item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(c.currency),
			UnitAmount: stripe.Int64(toMinorUnits(p.Amount)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(p.ProductName),
			},
		}
	}
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems:  []*stripe.CheckoutSessionLineItemParams{item},
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, err
	}
	c.logger.Infof("stripe checkout session %s created", session.ID)
	return CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// CreatePrice registers a one-off price with inline product data and returns
// its id.
func (c *StripeClient) CreatePrice(ctx context.Context, productName string, amount float64) (string, error) {
	params := &stripe.PriceParams{
		Currency:   stripe.String(c.currency),
		UnitAmount: stripe.Int64(toMinorUnits(amount)),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(productName),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	price, err := c.api.Prices.New(params)
	if err != nil {
		return "", err
	}
	return price.ID, nil
}
