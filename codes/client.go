package codes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/remote"
	"golang.org/x/oauth2"
)

// Client talks to the document authority under /api/codes.
type Client struct {
	api *remote.Requester
}

// NewClient builds a client for settings.BaseURL. Requests carry the ambient
// credential: the bearer token, the session cookie, or both when configured.
func NewClient(ctx context.Context, settings config.Settings) (*Client, error) {
	if strings.TrimSpace(settings.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is not configured")
	}
	httpClient, err := newHTTPClient(ctx, settings)
	if err != nil {
		return nil, err
	}
	return &Client{api: &remote.Requester{
		Name:       "Codes API",
		BaseURL:    strings.TrimRight(settings.BaseURL, "/"),
		HTTPClient: httpClient,
	}}, nil
}

func newHTTPClient(ctx context.Context, settings config.Settings) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if settings.SessionCookie != "" {
		base, err := url.Parse(settings.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		jar.SetCookies(base, []*http.Cookie{{
			Name:  settings.SessionCookieName,
			Value: settings.SessionCookie,
			Path:  "/",
		}})
	}

	if settings.Token == "" {
		return &http.Client{Jar: jar, Timeout: settings.Timeout()}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, ts)
	client.Jar = jar
	client.Timeout = settings.Timeout()
	return client, nil
}

// GetCode fetches the document's metadata. A missing Access field is
// returned as an empty list.
func (c *Client) GetCode(ctx context.Context, id string) (Code, error) {
	var code Code
	if err := c.api.Do(ctx, "load code", http.MethodGet, "/api/codes/"+url.PathEscape(id), nil, &code); err != nil {
		return Code{}, err
	}
	if code.Access == nil {
		code.Access = []string{}
	}
	return code, nil
}

// SaveCode stores content as the document's source.
func (c *Client) SaveCode(ctx context.Context, id, content string) error {
	return c.api.Do(ctx, "save code", http.MethodPut, "/api/codes/save/"+url.PathEscape(id), saveRequest{Content: content}, nil)
}

// GiveAccess shares the document with email.
func (c *Client) GiveAccess(ctx context.Context, id, email string) error {
	return c.api.Do(ctx, "give access", http.MethodPut, "/api/codes/give/"+url.PathEscape(id), accessRequest{Email: email}, nil)
}

// TakeAccess stops sharing the document with email.
func (c *Client) TakeAccess(ctx context.Context, id, email string) error {
	return c.api.Do(ctx, "take access", http.MethodPut, "/api/codes/take/"+url.PathEscape(id), accessRequest{Email: email}, nil)
}
