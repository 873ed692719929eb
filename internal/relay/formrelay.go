package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"bikie/internal/domain"
)

// GenericFailure is shown when the relay gives no reason of its own.
const GenericFailure = "Something went wrong while sending your booking. Please try again."

// Submission is one contact-form message.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client posts submissions to a Web3Forms-style relay. The access key never
// leaves the server.
type Client struct {
	URL       string
	AccessKey string
	HTTP      *http.Client
}

func NewClient(url, accessKey string, timeout time.Duration) *Client {
	return &Client{
		URL:       url,
		AccessKey: accessKey,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Submit sends s as a single multipart POST. There is no retry: a failure is
// returned as domain.UpstreamError carrying the relay's message when it
// provided one.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	body, contentType, err := c.encode(s)
	if err != nil {
		return domain.InternalError{Msg: "failed to encode booking message", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return domain.InternalError{Msg: "failed to build relay request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.UpstreamError{Service: "form relay", Msg: GenericFailure, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return domain.UpstreamError{Service: "form relay", Msg: GenericFailure, Err: err}
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.UpstreamError{
			Service: "form relay",
			Msg:     GenericFailure,
			Err:     fmt.Errorf("status %d: undecodable body: %w", resp.StatusCode, err),
		}
	}
	if !out.Success {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = GenericFailure
		}
		return domain.UpstreamError{Service: "form relay", Msg: msg, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

func (c *Client) encode(s Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"access_key", c.AccessKey},
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"subject", s.Subject},
		{"message", s.Message},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
