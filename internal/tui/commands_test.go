package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/session"
	"github.com/adlens/adlens/internal/store"
)

func TestLogoutCmdWipesCache(t *testing.T) {
	var revoked bool
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		revoked = true
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := session.NewMemoryTokenStore()
	require.NoError(t, tokens.Save("acc-1", "ref-1"))
	client := api.NewClient(srv.URL, tokens, nil, nil)
	sess := session.New(client, tokens, nil)

	cache, err := store.NewCache("", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.SaveBoards([]domain.Board{{ID: "b1", Name: "Inspo"}}))

	msg := LogoutCmd(sess, cache)()

	assert.IsType(t, LogoutCompleteMsg{}, msg)
	assert.True(t, revoked, "refresh token should be revoked server-side")
	access, refresh := tokens.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	_, ok := cache.GetBoards()
	assert.False(t, ok, "cached data must not survive logout")
}

func TestLogoutCmdNilCache(t *testing.T) {
	tokens := session.NewMemoryTokenStore()
	client := api.NewClient("http://127.0.0.1:0", tokens, nil, nil)
	sess := session.New(client, tokens, nil)

	msg := LogoutCmd(sess, nil)()
	assert.IsType(t, LogoutCompleteMsg{}, msg)
}
