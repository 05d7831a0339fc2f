package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string
	User  *model.StaffMember
}

type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(httpClient *HttpClient) *AuthClient {
	return &AuthClient{httpClient: httpClient}
}

// Login exchanges credentials for a token. The API answers with the token
// next to the staff member's own fields.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := c.httpClient.request(ctx, http.MethodPost, "/api/Auth/login", Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		message := GetErrorMessage(resp)
		if message == "" {
			message = "Login failed"
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
			return nil, apperrors.Unauthorized(message)
		}
		return nil, apperrors.Upstream(message, resp.StatusCode, fmt.Errorf("login: status %d", resp.StatusCode))
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := resp.DecodeJSON(&body); err != nil || body.Token == "" {
		return nil, apperrors.Upstream("", resp.StatusCode, fmt.Errorf("login response carried no token"))
	}
	var user model.StaffMember
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, apperrors.Upstream("", resp.StatusCode, fmt.Errorf("decode login user: %w", err))
	}
	return &LoginResult{Token: body.Token, User: &user}, nil
}

// GetCompanies lists the companies the token's owner belongs to.
func (c *AuthClient) GetCompanies(ctx context.Context) ([]*model.Company, error) {
	var page pageDTO[*model.Company]
	if err := c.httpClient.getJSON(ctx, "/api/staffMember/companies", &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}
