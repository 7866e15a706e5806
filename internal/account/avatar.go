package account

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// AvatarClient fetches profile pictures from a Gravatar-compatible
// service.
type AvatarClient struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	size    int
	style   string
}

type AvatarOption func(*AvatarClient)

func WithAvatarTimeout(d time.Duration) AvatarOption {
	return func(c *AvatarClient) { c.timeout = d }
}

func WithAvatarSize(px int) AvatarOption {
	return func(c *AvatarClient) { c.size = px }
}

// WithAvatarStyle sets the fallback image style for addresses without a
// gravatar ("identicon", "retro", "mp", ...).
func WithAvatarStyle(style string) AvatarOption {
	return func(c *AvatarClient) { c.style = style }
}

func NewAvatarClient(baseURL string, opts ...AvatarOption) *AvatarClient {
	c := &AvatarClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 16},
		timeout: 5 * time.Second,
		size:    160,
		style:   "identicon",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the avatar URL for an email address.
func (c *AvatarClient) URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("%s/%s?d=%s&s=%d", c.baseURL, hex.EncodeToString(sum[:]), c.style, c.size)
}

// Fetch downloads the avatar image and returns its bytes and content
// type.
func (c *AvatarClient) Fetch(email string) ([]byte, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.URL(email))

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, "", fmt.Errorf("fetch avatar: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, "", fmt.Errorf("fetch avatar: status %d", resp.StatusCode())
	}
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	ctype := string(resp.Header.ContentType())
	if ctype == "" {
		ctype = "image/png"
	}
	return body, ctype, nil
}
