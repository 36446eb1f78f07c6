package interviewer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	apiPaymentPath = "/payment"

	checkoutSuccessPath = "/payment/success"
	checkoutCancelPath  = "/pricing"

	// FreePlanID is granted by the backend without a checkout.
	FreePlanID = "free"
)

// Plan is an interview package offered on the pricing page.
type Plan struct {
	ID         string
	Name       string
	Interviews int
	PriceCents int
	Popular    bool
}

// Plans lists the packages in display order.
var Plans = []Plan{
	{ID: FreePlanID, Name: "Free", Interviews: 1},
	{ID: "starter", Name: "Starter", Interviews: 10, PriceCents: 499},
	{ID: "pro", Name: "Pro", Interviews: 50, PriceCents: 999, Popular: true},
	{ID: "unlimited", Name: "Unlimited", Interviews: 999, PriceCents: 1999},
}

// FindPlan returns the plan with the given id or nil.
func FindPlan(id string) *Plan {
	id = strings.ToLower(strings.TrimSpace(id))
	for i := range Plans {
		if Plans[i].ID == id {
			return &Plans[i]
		}
	}
	return nil
}

func (p Plan) Price() string {
	if p.PriceCents == 0 {
		return "free"
	}
	return fmt.Sprintf("$%d.%02d", p.PriceCents/100, p.PriceCents%100)
}

type CheckoutRequest struct {
	ProductID  string `json:"product_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type TokenBalance struct {
	Balance             int `json:"balance"`
	FreeTrialsRemaining int `json:"free_trials_remaining"`
}

// CreateCheckout opens a payment session for productID. The caller is
// expected to send the user to the returned CheckoutURL.
func (c *Client) CreateCheckout(ctx context.Context, productID string) (*CheckoutResponse, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &ValidationError{Problems: []string{"product_id is required"}}
	}

	var resp CheckoutResponse
	err := c.do(ctx, call{
		op:         "create_checkout",
		method:     http.MethodPost,
		path:       apiPaymentPath + "/checkout",
		withDevice: true,
		body: CheckoutRequest{
			ProductID:  productID,
			SuccessURL: c.originURL(checkoutSuccessPath),
			CancelURL:  c.originURL(checkoutCancelPath),
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(resp.CheckoutURL) == "" {
		return nil, errors.New("backend returned an empty checkout url")
	}

	return &resp, nil
}

// GetTokenBalance reports how many interviews this device can still create.
func (c *Client) GetTokenBalance(ctx context.Context) (*TokenBalance, error) {
	var balance TokenBalance
	err := c.do(ctx, call{
		op:         "get_token_balance",
		method:     http.MethodGet,
		path:       apiPaymentPath + "/tokens",
		withDevice: true,
	}, &balance)
	if err != nil {
		return nil, err
	}

	return &balance, nil
}
