// Package remote holds the JSON-over-HTTP plumbing shared by the document
// and execution clients, and the typed error every call fails with.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failed reply is read looking for a message.
const maxErrorBody = 64 << 10

// Requester sends JSON requests to one base URL.
type Requester struct {
	// Name prefixes log lines, e.g. "Codes API".
	Name       string
	BaseURL    string
	HTTPClient *http.Client
}

// Do sends body (if non-nil) as JSON and decodes a successful reply into out
// (if non-nil). Every failure is returned as *Error.
func (r *Requester) Do(ctx context.Context, op, method, path string, body, out any) error {
	requestID := uuid.NewString()
	fail := func(kind Kind, status int, message string, err error) error {
		e := &Error{Op: op, Kind: kind, Status: status, Message: message, RequestID: requestID, Err: err}
		log.Printf("%s: %s %s failed (request %s): %v", r.Name, method, path, requestID, e)
		return e
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(KindNetwork, 0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return fail(KindNetwork, 0, "", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(KindNetwork, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(KindRejected, resp.StatusCode, extractMessage(data), nil)
	}

	log.Printf("%s: %s %s -> %d (request %s)", r.Name, method, path, resp.StatusCode, requestID)
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fail(KindNetwork, 0, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error reply. It
// understands {"message": ...} and {"error": ...} bodies and falls back to a
// short plain-text body.
func extractMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if s, ok := payload.Error.(string); ok {
			return s
		}
		return ""
	}
	text := strings.TrimSpace(string(data))
	if text == "" || strings.HasPrefix(text, "<") || len(text) > 200 {
		return ""
	}
	return text
}
