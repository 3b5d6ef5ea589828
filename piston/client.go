// Package piston is a client for a Piston-compatible code execution service.
package piston

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/remote"
)

// anyVersion asks the service for its newest installed runtime.
const anyVersion = "*"

// Client executes source code remotely.
type Client struct {
	api      *remote.Requester
	versions map[string]string
}

// NewClient builds a client for settings.ExecuteURL. The execution service
// does not receive the document credential.
func NewClient(settings config.Settings) (*Client, error) {
	if strings.TrimSpace(settings.ExecuteURL) == "" {
		return nil, fmt.Errorf("execute URL is not configured")
	}
	versions := make(map[string]string, len(settings.LanguageVersions))
	for lang, v := range settings.LanguageVersions {
		versions[lang] = v
	}
	return &Client{
		api: &remote.Requester{
			Name:       "Runner",
			BaseURL:    strings.TrimRight(settings.ExecuteURL, "/"),
			HTTPClient: &http.Client{Timeout: settings.Timeout()},
		},
		versions: versions,
	}, nil
}

// Execute runs source as language and returns the stage the user should see:
// the compile stage when compilation failed, the run stage otherwise.
func (c *Client) Execute(ctx context.Context, language, source string) (Stage, error) {
	version, ok := c.versions[language]
	if !ok || version == "" {
		version = anyVersion
	}
	req := ExecuteRequest{
		Language: language,
		Version:  version,
		Files:    []File{{Content: source}},
	}

	var resp ExecuteResponse
	if err := c.api.Do(ctx, "execute "+language, http.MethodPost, "/execute", req, &resp); err != nil {
		return Stage{}, err
	}
	if resp.Compile != nil && resp.Compile.Failed() {
		return *resp.Compile, nil
	}
	return resp.Run, nil
}
