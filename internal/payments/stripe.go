// internal/payments/stripe.go
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// Tagged errors; handlers map these to statuses instead of matching message
// substrings.
var (
	ErrNotConfigured = errors.New("payments: not configured")
	ErrUpstream      = errors.New("payments: upstream failure")
)

type CheckoutParams struct {
	Name        string
	AmountCents int64
	Currency    string
	Quantity    int64
	SuccessURL  string
	CancelURL   string
}

// Client wraps the payment provider operations the handlers need.
type Client interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (url string, err error)
	CreateExpressAccount(ctx context.Context, email string) (accountID string, err error)
	CreateLoginLink(ctx context.Context, accountID string) (url string, err error)
}

type stripeClient struct {
	api *client.API
}

// NewStripe returns a Client over the Stripe API. An empty key yields a
// client whose calls fail with ErrNotConfigured.
func NewStripe(secretKey string) Client {
	if secretKey == "" {
		return &stripeClient{}
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeClient{api: api}
}

func (c *stripeClient) CreateCheckoutSession(_ context.Context, p CheckoutParams) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(p.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(p.Currency),
				UnitAmount: stripe.Int64(p.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(p.Name),
				},
			},
		}},
	}
	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", wrap(err)
	}
	return s.URL, nil
}

func (c *stripeClient) CreateExpressAccount(_ context.Context, email string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}
	acct, err := c.api.Accounts.New(&stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	})
	if err != nil {
		return "", wrap(err)
	}
	return acct.ID, nil
}

func (c *stripeClient) CreateLoginLink(_ context.Context, accountID string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}
	link, err := c.api.LoginLinks.New(&stripe.LoginLinkParams{
		Account: stripe.String(accountID),
	})
	if err != nil {
		return "", wrap(err)
	}
	return link.URL, nil
}

// wrap converts a Stripe error into a domain error kind.
func wrap(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		if se.HTTPStatusCode == 404 || se.Code == stripe.ErrorCodeResourceMissing {
			return models.ErrNotFound
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
