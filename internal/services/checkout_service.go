package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"skillsyncBack/internal/models"
)

var ErrInvalidSignature = errors.New("invalid stripe signature")

// DefaultSignatureTolerance bounds the age of a webhook timestamp.
const DefaultSignatureTolerance = webhook.DefaultTolerance

// CheckoutGateway is satisfied by *StripeClient.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (CheckoutSession, error)
}

type OrderPublisher interface {
	PublishOrderPaid(ctx context.Context, order models.Order) error
}

type CheckoutService struct {
	Users         UserStore
	Gigs          GigStore
	Offers        OfferStore
	Orders        OrderStore
	Stripe        CheckoutGateway
	Events        OrderPublisher
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Logger        Logger
	// SignatureTolerance defaults to DefaultSignatureTolerance.
	SignatureTolerance time.Duration
}

// Checkout opens a Stripe Checkout Session for an offer and returns the URL
// to redirect the buyer to. A session without a URL is ErrStripeSession.
func (s *CheckoutService) Checkout(ctx context.Context, identity *models.Identity, offerID int) (models.CheckoutResponse, error) {
	buyer, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	if s.Stripe == nil {
		return models.CheckoutResponse{}, models.ErrPaymentsDisabled
	}
	offer, err := s.Offers.GetOfferByID(ctx, offerID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.CheckoutResponse{}, models.ErrOfferNotFound
	}
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	gig, err := s.Gigs.GetGigByID(ctx, offer.GigID)
	if errors.Is(err, models.ErrNoRecord) || (err == nil && !gig.Published) {
		return models.CheckoutResponse{}, models.ErrGigNotFound
	}
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	if gig.SellerID == buyer.ID {
		return models.CheckoutResponse{}, models.ErrForbidden
	}

	session, err := s.Stripe.CreateCheckoutSession(ctx, CheckoutSessionParams{
		PriceID:     offer.StripePriceID,
		ProductName: gig.Title + " (" + offer.Tier + ")",
		Amount:      offer.Price,
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
		Metadata: map[string]string{
			"offerId":  strconv.Itoa(offer.ID),
			"gigId":    strconv.Itoa(gig.ID),
			"buyerId":  strconv.Itoa(buyer.ID),
			"sellerId": strconv.Itoa(gig.SellerID),
		},
	})
	if err != nil {
		logOrNop(s.Logger).Errorf("stripe checkout for offer %d: %v", offer.ID, err)
		return models.CheckoutResponse{}, fmt.Errorf("%w: %v", models.ErrStripeSession, err)
	}
	if session.URL == "" {
		return models.CheckoutResponse{}, models.ErrStripeSession
	}
	return models.CheckoutResponse{URL: session.URL}, nil
}

// HandleWebhook verifies a Stripe event and records a paid order for each
// completed checkout. Redeliveries of the same session are ignored.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.WebhookSecret == "" {
		return ErrInvalidSignature
	}
	tolerance := s.SignatureTolerance
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.WebhookSecret, webhook.ConstructEventOptions{
		Tolerance:                tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	switch {
	case errors.Is(err, webhook.ErrNotSigned), errors.Is(err, webhook.ErrInvalidHeader),
		errors.Is(err, webhook.ErrNoValidSignature), errors.Is(err, webhook.ErrTooOld):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case err != nil:
		return fmt.Errorf("%w: malformed event", models.ErrInvalidInput)
	}
	if string(event.Type) != "checkout.session.completed" {
		return nil
	}
	if event.Data == nil {
		return fmt.Errorf("%w: event %s has no data", models.ErrInvalidInput, event.ID)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("%w: malformed session", models.ErrInvalidInput)
	}
	if session.PaymentStatus != "" && session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil
	}

	order, err := orderFromSession(&session)
	if err != nil {
		return err
	}
	created, err := s.Orders.CreateOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("record order: %w", err)
	}
	if !created {
		return nil
	}
	logOrNop(s.Logger).Infof("order recorded for session %s", session.ID)
	if s.Events != nil {
		if err := s.Events.PublishOrderPaid(ctx, order); err != nil {
			logOrNop(s.Logger).Errorf("publish order.paid %s: %v", session.ID, err)
		}
	}
	return nil
}

func orderFromSession(session *stripe.CheckoutSession) (models.Order, error) {
	ids := make(map[string]int, 4)
	for _, k := range []string{"offerId", "gigId", "buyerId", "sellerId"} {
		v, err := strconv.Atoi(session.Metadata[k])
		if err != nil {
			return models.Order{}, fmt.Errorf("%w: session %s missing %s", models.ErrInvalidInput, session.ID, k)
		}
		ids[k] = v
	}
	return models.Order{
		GigID:           ids["gigId"],
		OfferID:         ids["offerId"],
		BuyerID:         ids["buyerId"],
		SellerID:        ids["sellerId"],
		Amount:          float64(session.AmountTotal) / 100,
		Status:          models.OrderStatusPaid,
		StripeSessionID: session.ID,
	}, nil
}
