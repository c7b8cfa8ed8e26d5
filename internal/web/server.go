// Package web serves the quote list as an HTML page.
//
// Every engine call goes through one mutex, so requests are applied strictly
// one at a time in arrival order.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/quote-saver/internal/cache"
	"github.com/debemdeboas/quote-saver/internal/config"
	"github.com/debemdeboas/quote-saver/internal/quotes"
	"github.com/debemdeboas/quote-saver/internal/sse"
	"github.com/debemdeboas/quote-saver/internal/util"
)

//go:embed templates/*
var content embed.FS

const (
	templateIndex = "index.html"
	msgRefresh    = "refresh"
)

var webLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	webLogger = l
}

type Server struct { // implements quotes.View
	mu      sync.Mutex
	engine  *quotes.Engine
	clients *sse.Clients
	tmpl    *template.Template
	cfg     config.WebConfig

	// Input box and affordance state, mirrored from engine signals.
	input     string
	mode      quotes.Mode
	editIndex int
	flash     string
}

// NewServer builds the page server and loads the list from store.
func NewServer(store quotes.Persister, key string, cfg config.WebConfig) (*Server, error) {
	tmpl, err := template.ParseFS(content, "templates/"+templateIndex)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		clients:   sse.NewClients(),
		tmpl:      tmpl,
		cfg:       cfg,
		mode:      quotes.ModeAdd,
		editIndex: -1,
	}
	s.engine = quotes.NewEngine(store, quotes.WithKey(key), quotes.WithView(s))
	s.engine.Initialize()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.HandleFunc("POST /quotes", s.serveSubmit)
	mux.HandleFunc("POST /quotes/clear", s.serveClear)
	mux.HandleFunc("POST /quotes/{index}/edit", s.serveEdit)
	mux.HandleFunc("POST /quotes/{index}/delete", s.serveDelete)
	mux.HandleFunc("GET /events", s.serveEvents)
	return secureHeaders(mux)
}

func secureHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		h.ServeHTTP(w, r)
	})
}

// ListenAndServe serves the page on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	webLogger.Info().Str("addr", addr).Msg("Serving quotes")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) Render(quotes.Snapshot) {
	s.clients.Broadcast(msgRefresh)
}

func (s *Server) EnterUpdateMode(index int, text string) {
	s.mode = quotes.ModeUpdate
	s.editIndex = index
	s.input = text
}

func (s *Server) EnterAddMode() {
	s.mode = quotes.ModeAdd
	s.editIndex = -1
	s.input = ""
}

type quoteItem struct {
	Index   int
	HTML    template.HTML
	Editing bool
}

type pageData struct {
	Title       string
	Count       int
	Empty       bool
	Quotes      []quoteItem
	Mode        string
	Input       string
	EditNumber  int
	Flash       string
	ClearPrompt string
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.engine.Snapshot()
	data := pageData{
		Title:       s.cfg.Title,
		Count:       snap.Count(),
		Empty:       snap.Empty(),
		Mode:        s.mode.String(),
		Input:       s.input,
		EditNumber:  s.editIndex + 1,
		Flash:       s.flash,
		ClearPrompt: fmt.Sprintf("Are you sure you want to delete all %d quotes? This cannot be undone!", snap.Count()),
	}
	s.flash = ""
	s.mu.Unlock()

	for i, q := range snap.Quotes {
		data.Quotes = append(data.Quotes, quoteItem{
			Index:   i,
			HTML:    renderQuote(q, s.cfg.Markdown),
			Editing: i == snap.Editing,
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, templateIndex, data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set(config.HETag, util.ContentHash(buf.Bytes()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) serveSubmit(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue(config.FormQuote)

	s.mu.Lock()
	err := s.engine.Submit(text)
	if errors.Is(err, quotes.ErrEmptyQuote) {
		s.flash = "Quote cannot be empty!"
	}
	s.mu.Unlock()

	s.finish(w, r, err)
}

func (s *Server) serveEdit(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	_, err := s.engine.RequestEdit(index)
	s.mu.Unlock()

	// Edit mode is not persisted; other tabs still need to see it.
	if err == nil {
		s.clients.Broadcast(msgRefresh)
	}
	s.finish(w, r, err)
}

func (s *Server) serveDelete(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.engine.RequestDelete(index, formConfirm(r))
	s.mu.Unlock()

	s.finish(w, r, err)
}

func (s *Server) serveClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.engine.ClearAll(formConfirm(r))
	if err == nil && s.engine.Len() == 0 {
		cache.ClearRenderedQuoteCache()
	}
	s.mu.Unlock()

	s.finish(w, r, err)
}

func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeEventStream)
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set(config.HConnection, "keep-alive")

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := sse.NewClient()
	s.clients.Add(client)
	webLogger.Debug().Int("clients", s.clients.Len()).Msg("SSE client connected")
	defer func() {
		s.clients.Delete(client)
		webLogger.Debug().Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}

// finish maps an engine error to a response and otherwise redirects back to
// the page.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil, errors.Is(err, quotes.ErrEmptyQuote):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, quotes.ErrOutOfRange):
		webLogger.Warn().Err(err).Msg("Stale quote index")
		http.Error(w, "The quote list changed, reload the page.", http.StatusConflict)
	default:
		webLogger.Error().Err(err).Msg("Failed to save quotes")
		http.Error(w, "Failed to save quotes", http.StatusInternalServerError)
	}
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid quote index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

// formConfirm treats the page's confirmed field as the user's answer.
func formConfirm(r *http.Request) quotes.Confirm {
	return func(string) bool {
		return r.FormValue(config.FormConfirmed) == "true"
	}
}
