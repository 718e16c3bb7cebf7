package utils

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	assert.NoError(t, PingService(context.Background(), "http://"+ln.Addr().String(), time.Second))

	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	assert.Error(t, PingService(context.Background(), "http://"+addr, 200*time.Millisecond))
	assert.Error(t, PingService(context.Background(), "not a url", time.Second))
	assert.Error(t, PingService(context.Background(), "::bad", time.Second))
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/thing", func(c *fiber.Ctx) error {
		return NotFoundResponse(c, "thing not found")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/thing?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponseStruct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "thing not found", body.Error)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.False(t, body.Ok)
	assert.Equal(t, "/thing?x=1", body.URL)
	assert.Equal(t, "not_found", body.Type)
}
