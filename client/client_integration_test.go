// client_integration_test.go
//go:build integration

package client

import (
	"context"
	"testing"

	"github.com/SergeyParamoshkin/blog/internal/config"
)

// Runs against a live server, e.g. `go run .` with BLOG_AUTH_* set.
var c = New(
	config.GetEnv("BLOG_CLIENT_ADDR", "http://localhost:3333"),
	config.GetEnv("BLOG_AUTH_USERNAME", ""),
	config.GetEnv("BLOG_AUTH_PASSWORD", ""),
)

func TestPing(t *testing.T) {
	if s, err := c.Ping(context.Background()); err != nil || s != "pong" {
		t.Fail()
	}
}

func TestList(t *testing.T) {
	if _, err := c.List(context.Background()); err != nil {
		t.Fatal(err)
	}
}
