// Package client talks to the articles JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

type Client struct {
	http.Client
	Addr     string
	Username string
	Password string
}

// New returns a client that does not follow redirects, so a destroy's
// 303 is observable.
func New(addr, username, password string) *Client {
	return &Client{
		Client: http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Addr:     addr,
		Username: username,
		Password: password,
	}
}

type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleParams are the writable fields. Nil fields are not sent, so an
// update leaves them unchanged.
type ArticleParams struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Status *string `json:"status,omitempty"`
}

type APIError struct {
	StatusCode int
	Status     string              `json:"status"`
	Errors     map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Status)
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) List(ctx context.Context) ([]Article, error) {
	var list []Article
	err := c.do(ctx, http.MethodGet, "/articles", nil, false, http.StatusOK, &list)

	return list, err
}

func (c *Client) Get(ctx context.Context, id int64) (*Article, error) {
	var a Article
	if err := c.do(ctx, http.MethodGet, path(id), nil, false, http.StatusOK, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) Create(ctx context.Context, p ArticleParams) (*Article, error) {
	var a Article
	if err := c.do(ctx, http.MethodPost, "/articles", &p, true, http.StatusCreated, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) Update(ctx context.Context, id int64, p ArticleParams) (*Article, error) {
	var a Article
	if err := c.do(ctx, http.MethodPatch, path(id), &p, true, http.StatusOK, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, path(id), nil, true, http.StatusSeeOther, nil)
}

func (c *Client) do(ctx context.Context, method, p string, params *ArticleParams, auth bool, want int, out interface{}) error {
	var body io.Reader
	if params != nil {
		b, err := json.Marshal(map[string]*ArticleParams{"article": params})
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+p, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func path(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}
