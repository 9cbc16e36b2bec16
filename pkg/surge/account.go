package surge

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// Login exchanges an email and password for an API token. The
// password is sent once and never stored; keep the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	auth := Basic{Username: email, Password: password}
	if err := c.doJSON(ctx, auth, http.MethodPost, "token", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Account fetches the authenticated account's profile and plan.
func (c *Client) Account(ctx context.Context, auth Auth) (*Account, error) {
	var res Account
	if err := c.getJSON(ctx, auth, "account", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Nuke permanently deletes the account and every deployment on it.
// There is no undo on the server side.
func (c *Client) Nuke(ctx context.Context, auth Auth) error {
	return c.doJSON(ctx, auth, http.MethodDelete, "account", nil, nil)
}

// Stats fetches account-wide usage statistics. The report's fields
// vary by plan, so the sections are returned raw.
func (c *Client) Stats(ctx context.Context, auth Auth) (map[string]json.RawMessage, error) {
	var res map[string]json.RawMessage
	if err := c.getJSON(ctx, auth, "stats", &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Plans lists the plans the account can move to. With a non-empty
// domain it lists the plans available to that domain instead.
func (c *Client) Plans(ctx context.Context, auth Auth, domain string) (*PlansResult, error) {
	path := "plans"
	if domain != "" {
		if err := errors.ValidateDomain(domain); err != nil {
			return nil, err
		}
		path = domain + "/plans"
	}
	var res PlansResult
	if err := c.getJSON(ctx, auth, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetPlan moves the account to the plan with the given identifier.
func (c *Client) SetPlan(ctx context.Context, auth Auth, planID string) error {
	payload := map[string]string{"id": planID}
	return c.doJSON(ctx, auth, http.MethodPut, "plan", payload, nil)
}

// SetCard attaches a tokenized payment card to the account. The token
// comes from the card processor, never raw card numbers.
func (c *Client) SetCard(ctx context.Context, auth Auth, cardToken string) error {
	payload := map[string]string{"token": cardToken}
	return c.doJSON(ctx, auth, http.MethodPut, "card", payload, nil)
}

// ===== Responses =====

// LoginResult carries the token a successful login mints.
type LoginResult struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Account is the authenticated user's profile.
type Account struct {
	Email           string          `json:"email"`
	ID              string          `json:"id"`
	UUID            string          `json:"uuid"`
	Role            int             `json:"role"`
	UpdatedAt       string          `json:"updated_at"`
	CreatedAt       string          `json:"created_at"`
	EmailVerifiedAt json.RawMessage `json:"email_verified_at,omitempty"`
	PaymentID       json.RawMessage `json:"payment_id,omitempty"`
	Plan            Plan            `json:"plan"`
	Card            json.RawMessage `json:"card,omitempty"`
}

// PlansResult lists the plans an account or domain can use.
type PlansResult struct {
	StripePK string          `json:"stripe_pk"`
	Current  json.RawMessage `json:"current,omitempty"`
	List     []PlanOption    `json:"list"`
	Message  string          `json:"message"`
}

// PlanOption is one selectable plan. Amount is a number some API
// versions send as a string.
type PlanOption struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Amount   json.Number `json:"amount"`
	Friendly string      `json:"friendly"`
	Dummy    bool        `json:"dummy,omitempty"`
	Current  bool        `json:"current"`
	Ext      string      `json:"ext"`
	Perks    []string    `json:"perks"`
	Comped   bool        `json:"comped"`
	Currency string      `json:"currency,omitempty"`
	Interval string      `json:"interval,omitempty"`
}
