package schemas_test

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/przecze/rooms-of-roaming/internal/cache"
	"github.com/przecze/rooms-of-roaming/internal/dungeon"
	"github.com/przecze/rooms-of-roaming/internal/httpapi"
)

func compile(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	p := filepath.Join("..", "..", "..", "schemas", name)
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

func fetchJSON(t *testing.T, url string) any {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var v any
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return v
}

func TestChunkResponsesMatchSchemas(t *testing.T) {
	cfg := dungeon.DefaultConfig()
	facade := dungeon.NewFacade(dungeon.NewGenerator(cfg), cache.NewChunkCache(16))
	logger := log.New(os.Stderr, "[test] ", 0)
	s := httpapi.NewServer(facade, logger, 1_000_000, nil)
	mux := http.NewServeMux()
	s.Routes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	plainSchema := compile(t, "chunk_response.schema.json")
	debugSchema := compile(t, "chunk_response_debug.schema.json")

	plain := fetchJSON(t, srv.URL+"/api/chunk?cx=3&cy=4")
	if err := plainSchema.Validate(plain); err != nil {
		t.Fatalf("plain response failed schema validation: %v", err)
	}

	debug := fetchJSON(t, srv.URL+"/api/chunk?cx=3&cy=4&debug=true")
	if err := debugSchema.Validate(debug); err != nil {
		t.Fatalf("debug response failed schema validation: %v", err)
	}
}
