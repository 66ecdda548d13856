package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/pkg/client"
)

func newTestApp(t *testing.T, h http.HandlerFunc) (*app, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	return &app{api: client.New(srv.URL), out: &out}, &out
}

func reply(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "code": 200, "message": "ok", "data": data})
}

func TestRun_Tree(t *testing.T) {
	a, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, []map[string]interface{}{
			{"id": 1, "title": "Work"},
			{"id": 2, "title": "Notes", "parent_id": 1},
		})
	})

	require.NoError(t, a.run(context.Background(), "tree", nil))
	assert.Equal(t, "▾ Work #1\n    Notes #2\n", out.String())
}

func TestRun_Memos(t *testing.T) {
	a, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/memos/search", r.URL.Path)
		reply(w, []map[string]interface{}{{"id": 3, "title": "Go tips", "tags": []string{"go"}}})
	})

	require.NoError(t, a.run(context.Background(), "memos", []string{"go"}))
	assert.Equal(t, "   3 Go tips #go\n", out.String())
}

func TestRun_RejectsBadArguments(t *testing.T) {
	a, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	assert.Error(t, a.run(context.Background(), "show", []string{"abc"}))
	assert.Error(t, a.run(context.Background(), "move", []string{"1", "2"}))
	assert.Error(t, a.run(context.Background(), "watch", nil))
	assert.Error(t, a.run(context.Background(), "frobnicate", nil))
}
