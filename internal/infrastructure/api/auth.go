package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
)

const (
	endpointRegister    = "register"
	endpointLogin       = "login"
	endpointLogout      = "logout"
	endpointCurrentUser = "current_user"
)

func (c *Client) Register(ctx context.Context, in domain.Registration) (*ports.AuthResult, error) {
	return c.authenticate(ctx, endpointRegister, "/register", in)
}

func (c *Client) Login(ctx context.Context, in domain.Credentials) (*ports.AuthResult, error) {
	return c.authenticate(ctx, endpointLogin, "/login", in)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, call{endpoint: endpointLogout, method: http.MethodPost, path: "/logout"})
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, endpointCurrentUser, "/user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// authenticate posts credentials and reads either {user, access_token,
// token_type} or a bare user record.
func (c *Client) authenticate(ctx context.Context, endpoint, path string, payload any) (*ports.AuthResult, error) {
	in, err := jsonCall(endpoint, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, in)
	if err != nil {
		return nil, err
	}

	res := &ports.AuthResult{
		AccessToken: gjson.GetBytes(body, "access_token").String(),
		TokenType:   gjson.GetBytes(body, "token_type").String(),
	}
	userJSON := body
	if u := gjson.GetBytes(body, "user"); u.IsObject() {
		userJSON = []byte(u.Raw)
	}

	var user domain.User
	if err := decode(endpoint, userJSON, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, &domain.Error{
			Kind:    domain.KindServer,
			Message: "the server did not return the account",
			Err:     fmt.Errorf("%s: response has no user", endpoint),
		}
	}
	res.User = &user
	return res, nil
}
