package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/debemdeboas/quote-saver/internal/cache"
	"github.com/debemdeboas/quote-saver/internal/config"
	"github.com/debemdeboas/quote-saver/internal/quotes"
	"github.com/debemdeboas/quote-saver/internal/sse"
	"github.com/debemdeboas/quote-saver/internal/storage"
	"github.com/debemdeboas/quote-saver/internal/util"
)

func newTestServer(t *testing.T, stored ...string) (*Server, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	if len(stored) > 0 {
		raw, _ := json.Marshal(stored)
		store.Save(quotes.DefaultKey, string(raw))
	}

	s, err := NewServer(store, quotes.DefaultKey, config.WebConfig{Title: "Quote Saver", Markdown: true})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s, store
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getIndex(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	return rec
}

func storedQuotes(t *testing.T, store *storage.MemoryStore) []string {
	t.Helper()

	raw, err := store.Load(quotes.DefaultKey)
	if err != nil {
		t.Fatalf("Expected stored quotes, got %v", err)
	}
	list, err := quotes.Decode(raw)
	if err != nil {
		t.Fatalf("Expected valid stored quotes, got %v", err)
	}
	return list
}

func TestIndex(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		s, _ := newTestServer(t)
		rec := getIndex(t, s.Handler())

		body := rec.Body.String()
		if !strings.Contains(body, "No quotes yet.") {
			t.Errorf("Expected empty state, got %s", body)
		}
		if !strings.Contains(body, "Add Quote") {
			t.Errorf("Expected add button, got %s", body)
		}
		if rec.Header().Get(config.HETag) == "" {
			t.Error("Expected ETag header")
		}
		if rec.Header().Get(config.HCType) != config.CTypeHTML {
			t.Errorf("Expected %s, got %s", config.CTypeHTML, rec.Header().Get(config.HCType))
		}
	})

	t.Run("lists stored quotes", func(t *testing.T) {
		s, _ := newTestServer(t, "First", "Second")
		body := getIndex(t, s.Handler()).Body.String()

		if strings.Contains(body, "No quotes yet.") {
			t.Error("Expected no empty state")
		}
		if !strings.Contains(body, "First") || !strings.Contains(body, "Second") {
			t.Errorf("Expected both quotes, got %s", body)
		}
		if !strings.Contains(body, `action="/quotes/1/delete"`) {
			t.Errorf("Expected delete form for index 1, got %s", body)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		s, _ := newTestServer(t)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}

func TestSubmit(t *testing.T) {
	s, store := newTestServer(t)
	h := s.Handler()

	rec := post(t, h, "/quotes", url.Values{config.FormQuote: {"  Carpe diem.  "}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %s", loc)
	}

	got := storedQuotes(t, store)
	if len(got) != 1 || got[0] != "Carpe diem." {
		t.Errorf("Expected [Carpe diem.], got %v", got)
	}
}

func TestSubmitEmptyFlashes(t *testing.T) {
	s, store := newTestServer(t)
	h := s.Handler()

	rec := post(t, h, "/quotes", url.Values{config.FormQuote: {"   "}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", rec.Code)
	}
	if _, err := store.Load(quotes.DefaultKey); err != storage.ErrNotFound {
		t.Errorf("Expected nothing saved, got %v", err)
	}

	body := getIndex(t, h).Body.String()
	if !strings.Contains(body, "Quote cannot be empty!") {
		t.Errorf("Expected flash message, got %s", body)
	}

	// The flash is shown once.
	body = getIndex(t, h).Body.String()
	if strings.Contains(body, "Quote cannot be empty!") {
		t.Error("Expected flash to be consumed")
	}
}

func TestEditFlow(t *testing.T) {
	s, store := newTestServer(t, "A", "B", "C")
	h := s.Handler()

	rec := post(t, h, "/quotes/1/edit", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", rec.Code)
	}

	body := getIndex(t, h).Body.String()
	if !strings.Contains(body, "Update Quote #2") {
		t.Errorf("Expected update button for quote #2, got %s", body)
	}
	if !strings.Contains(body, `value="B"`) {
		t.Errorf("Expected input prefilled with B, got %s", body)
	}
	if !strings.Contains(body, "quote-item editing") {
		t.Errorf("Expected editing item highlighted, got %s", body)
	}

	post(t, h, "/quotes", url.Values{config.FormQuote: {"B2"}})

	got := storedQuotes(t, store)
	want := []string{"A", "B2", "C"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, got)
	}

	body = getIndex(t, h).Body.String()
	if !strings.Contains(body, "Add Quote") {
		t.Errorf("Expected add mode after update, got %s", body)
	}
}

func TestDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		s, store := newTestServer(t, "A", "B", "C")
		rec := post(t, s.Handler(), "/quotes/0/delete", url.Values{config.FormConfirmed: {"true"}})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("Expected status 303, got %d", rec.Code)
		}

		got := storedQuotes(t, store)
		if strings.Join(got, ",") != "B,C" {
			t.Errorf("Expected [B C], got %v", got)
		}
	})

	t.Run("not confirmed", func(t *testing.T) {
		s, store := newTestServer(t, "A", "B")
		post(t, s.Handler(), "/quotes/0/delete", nil)

		got := storedQuotes(t, store)
		if strings.Join(got, ",") != "A,B" {
			t.Errorf("Expected [A B], got %v", got)
		}
	})

	t.Run("stale index", func(t *testing.T) {
		s, _ := newTestServer(t, "A")
		rec := post(t, s.Handler(), "/quotes/5/delete", url.Values{config.FormConfirmed: {"true"}})
		if rec.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", rec.Code)
		}
	})

	t.Run("bad index", func(t *testing.T) {
		s, _ := newTestServer(t, "A")
		rec := post(t, s.Handler(), "/quotes/x/delete", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestClear(t *testing.T) {
	s, store := newTestServer(t, "A", "B")
	h := s.Handler()
	getIndex(t, h)
	if _, ok := cache.GetRenderedQuote(util.ContentHashString("A")); !ok {
		t.Fatal("Expected rendered quote to be cached")
	}

	post(t, h, "/quotes/clear", nil)
	if got := storedQuotes(t, store); len(got) != 2 {
		t.Errorf("Expected unconfirmed clear to keep 2 quotes, got %v", got)
	}

	post(t, h, "/quotes/clear", url.Values{config.FormConfirmed: {"true"}})
	raw, _ := store.Load(quotes.DefaultKey)
	if raw != "[]" {
		t.Errorf("Expected [], got %s", raw)
	}
	if _, ok := cache.GetRenderedQuote(util.ContentHashString("A")); ok {
		t.Error("Expected rendered quote cache to be cleared")
	}

	body := getIndex(t, h).Body.String()
	if !strings.Contains(body, "No quotes yet.") {
		t.Errorf("Expected empty state, got %s", body)
	}
}

func TestRenderBroadcasts(t *testing.T) {
	s, _ := newTestServer(t)

	c := sse.NewClient()
	s.clients.Add(c)
	defer s.clients.Delete(c)

	post(t, s.Handler(), "/quotes", url.Values{config.FormQuote: {"Hello"}})

	select {
	case msg := <-c.Msg:
		if msg != msgRefresh {
			t.Errorf("Expected %s, got %s", msgRefresh, msg)
		}
	default:
		t.Error("Expected a refresh message")
	}
}

func TestSecureHeaders(t *testing.T) {
	s, _ := newTestServer(t)
	rec := getIndex(t, s.Handler())

	if rec.Header().Get("X-Frame-Options") != "deny" {
		t.Errorf("Expected X-Frame-Options deny, got %s", rec.Header().Get("X-Frame-Options"))
	}
}

func TestRenderQuote(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		got := string(renderQuote("Be **bold**", true))
		if got != "Be <strong>bold</strong>" {
			t.Errorf("Expected inline markdown, got %s", got)
		}
	})

	t.Run("raw html dropped", func(t *testing.T) {
		got := string(renderQuote("<script>alert(1)</script> hi", true))
		if strings.Contains(got, "<script>") {
			t.Errorf("Expected script tag dropped, got %s", got)
		}
	})

	t.Run("plain", func(t *testing.T) {
		got := string(renderQuote("a < b **c**", false))
		if got != "a &lt; b **c**" {
			t.Errorf("Expected escaped text, got %s", got)
		}
	})
}
