package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/kakashi/pkg/zerolog"
)

var testLogger = zerolog.NewLogger("test", io.Discard)

func TestServer_AddRoute(t *testing.T) {
	s := NewServer("localhost", "0", testLogger)

	require.NoError(t, s.AddRoute("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	assert.Error(t, s.AddRoute("", func(http.ResponseWriter, *http.Request) {}))
	assert.Error(t, s.AddRoute("/nil", nil))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_Timeouts(t *testing.T) {
	s := NewServer("127.0.0.1", "8080", testLogger)
	assert.Equal(t, "127.0.0.1:8080", s.server.Addr)
	assert.Equal(t, ReadTimeout, s.server.ReadTimeout)
	assert.Equal(t, WriteTimeout, s.server.WriteTimeout)
	assert.Equal(t, IdleTimeout, s.server.IdleTimeout)
}

func TestServer_ShutdownStopsListenAndServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	s := NewServer("127.0.0.1", strconv.Itoa(port), testLogger)
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", s.server.Addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return after Shutdown")
	}
}
