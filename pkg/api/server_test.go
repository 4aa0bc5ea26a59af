package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	h := NewRouter(zerolog.Nop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSearchCapturesQueen(t *testing.T) {
	h := NewRouter(zerolog.Nop())
	rec := post(t, h, `{"fen":"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1","depth":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.Move != "e4d5" {
		t.Fatalf("expected e4d5, got %s", res.Move)
	}
	if res.Visited == 0 {
		t.Fatalf("no nodes reported")
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	h := NewRouter(zerolog.Nop())
	cases := []struct {
		body string
		want int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"fen":"garbage","depth":1}`, http.StatusBadRequest},
		{`{"depth":-1}`, http.StatusBadRequest},
		{`{"depth":99}`, http.StatusBadRequest},
		{`{"fen":"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1","depth":1}`, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		if rec := post(t, h, c.body); rec.Code != c.want {
			t.Fatalf("%s: expected %d, got %d", c.body, c.want, rec.Code)
		}
	}
}
