// Package quotes holds the quote list and the rules for mutating it.
//
// The engine owns the ordered list and the edit marker. Every mutation rewrites the
// whole list to the persistence surface and then asks the view to render.
// The engine is not safe for concurrent use; callers serialize access.
package quotes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/quote-saver/internal/storage"
)

// DefaultKey is the storage key the list lives under.
const DefaultKey = "quotes"

var engineLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	engineLogger = l
}

// Persister is the slice of a storage.Store the engine needs.
type Persister interface {
	Load(key string) (string, error)
	Save(key, value string) error
}

type Engine struct {
	store Persister
	view  View
	key   string

	quotes  []string
	editing int
}

type Option func(*Engine)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

// WithView attaches the presentation surface. Without one, view signals are dropped.
func WithView(v View) Option {
	return func(e *Engine) {
		if v != nil {
			e.view = v
		}
	}
}

func NewEngine(store Persister, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		view:    nopView{},
		key:     DefaultKey,
		quotes:  []string{},
		editing: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the list from storage. A missing key, a failing store or a
// malformed value all leave the list empty.
func (e *Engine) Initialize() {
	e.quotes = []string{}
	e.editing = -1

	value, err := e.store.Load(e.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		engineLogger.Debug().Str("key", e.key).Msg("No stored quotes, starting empty")
	case err != nil:
		engineLogger.Warn().Err(err).Str("key", e.key).Msg("Failed to load quotes, starting empty")
	default:
		list, err := Decode(value)
		if err != nil {
			engineLogger.Warn().Err(err).Str("key", e.key).Msg("Stored quotes are malformed, starting empty")
		} else {
			e.quotes = list
		}
	}

	engineLogger.Info().Int("count", len(e.quotes)).Msg("Quotes loaded")
	e.view.Render(e.Snapshot())
}

// Submit appends text, or replaces the entry being edited.
func (e *Engine) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyQuote
	}

	switch {
	case e.editing >= len(e.quotes):
		// The marker slid past the end after earlier deletions.
		engineLogger.Warn().Int("index", e.editing).Int("count", len(e.quotes)).Msg("Edit marker past end, appending")
		e.quotes = append(e.quotes, text)
		e.editing = -1
	case e.editing >= 0:
		engineLogger.Debug().Int("index", e.editing).Msg("Updating quote")
		e.quotes[e.editing] = text
		e.editing = -1
	default:
		engineLogger.Debug().Int("index", len(e.quotes)).Msg("Adding quote")
		e.quotes = append(e.quotes, text)
	}

	err := e.persist()
	e.view.EnterAddMode()
	e.view.Render(e.Snapshot())
	return err
}

// RequestEdit marks index for editing and returns its current text.
func (e *Engine) RequestEdit(index int) (string, error) {
	if err := e.checkIndex("edit", index); err != nil {
		return "", err
	}

	e.editing = index
	text := e.quotes[index]
	e.view.EnterUpdateMode(index, text)
	return text, nil
}

// RequestDelete removes index once confirm approves. Deleting the entry being edited
// drops back to add mode. Deleting an earlier entry leaves the edit marker where it was,
// so it then points at the entry that moved into that slot.
func (e *Engine) RequestDelete(index int, confirm Confirm) error {
	if err := e.checkIndex("delete", index); err != nil {
		return err
	}
	if !confirm.ask("Are you sure you want to delete this quote?") {
		return nil
	}

	engineLogger.Debug().Int("index", index).Msg("Deleting quote")
	e.quotes = append(e.quotes[:index], e.quotes[index+1:]...)

	if e.editing == index {
		e.editing = -1
		e.view.EnterAddMode()
	}

	err := e.persist()
	e.view.Render(e.Snapshot())
	return err
}

// ClearAll empties the list once confirm approves. It does nothing, and asks
// nothing, when the list is already empty.
func (e *Engine) ClearAll(confirm Confirm) error {
	if len(e.quotes) == 0 {
		return nil
	}
	prompt := fmt.Sprintf("Are you sure you want to delete all %d quotes? This cannot be undone!", len(e.quotes))
	if !confirm.ask(prompt) {
		return nil
	}

	engineLogger.Debug().Int("count", len(e.quotes)).Msg("Clearing quotes")
	e.quotes = []string{}
	e.editing = -1

	err := e.persist()
	e.view.EnterAddMode()
	e.view.Render(e.Snapshot())
	return err
}

func (e *Engine) Quotes() []string {
	out := make([]string, len(e.quotes))
	copy(out, e.quotes)
	return out
}

func (e *Engine) Len() int {
	return len(e.quotes)
}

// Editing returns the edit marker.
func (e *Engine) Editing() (int, bool) {
	return e.editing, e.editing >= 0
}

func (e *Engine) Mode() Mode {
	return e.Snapshot().Mode()
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Quotes: e.Quotes(), Editing: e.editing}
}

func (e *Engine) checkIndex(op string, index int) error {
	if index < 0 || index >= len(e.quotes) {
		return &RangeError{Op: op, Index: index, Len: len(e.quotes)}
	}
	return nil
}

func (e *Engine) persist() error {
	value, err := Encode(e.quotes)
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	if err := e.store.Save(e.key, value); err != nil {
		engineLogger.Error().Err(err).Str("key", e.key).Msg("Failed to save quotes")
		return fmt.Errorf("save quotes: %w", err)
	}
	return nil
}
