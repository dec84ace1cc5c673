package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/apperror"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  *entity.Cashier `json:"user"`
}

type authClient struct {
	*Client
}

// NewAuthGateway checks cashier credentials against the backend.
func NewAuthGateway(c *Client) domainRepo.AuthGateway {
	return &authClient{Client: c}
}

func (c *authClient) Login(ctx context.Context, username, password string) (string, *entity.Cashier, error) {
	var resp loginResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{username, password}, &resp)

	var se *statusError
	if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden || se.Status == http.StatusBadRequest) {
		return "", nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, apperror.NewNetworkError("login failed", err)
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, apperror.ErrInvalidCredentials
	}
	return resp.Token, resp.User, nil
}
