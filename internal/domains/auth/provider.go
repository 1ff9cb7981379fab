package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/author/model"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Provider bọc một identity provider OAuth2
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*model.OAuthProfile, error)
}

type googleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider - redirect URL = API_URL + callback path
func NewGoogleProvider(cfg config.OAuthConfig, apiURL string) Provider {
	return &googleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.CallbackURL(apiURL),
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// googleUserInfo - response của OpenID userinfo endpoint
type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// Exchange đổi code lấy token rồi đọc profile
func (p *googleProvider) Exchange(ctx context.Context, code string) (*model.OAuthProfile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, &ProviderError{Op: "code exchange", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := p.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "userinfo", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ProviderError{Op: "userinfo", Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &ProviderError{Op: "userinfo decode", Err: err}
	}

	return &model.OAuthProfile{
		ProviderID:    info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		DisplayName:   info.Name,
	}, nil
}
