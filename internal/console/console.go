// Package console is the interactive terminal surface for the quote list.
//
// A typed line is submitted as a quote. Lines starting with a slash are
// commands; quote numbers on screen start at 1.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/quote-saver/internal/quotes"
	"github.com/debemdeboas/quote-saver/internal/theme"
)

var consoleLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	consoleLogger = l
}

const helpText = `Type a quote and press Enter to save it.
  /edit N     load quote N for editing; the next line replaces it
  /delete N   delete quote N
  /clear      delete all quotes
  /list       show the list again
  /help       show this help
  /quit       exit
Start a quote with // to save it with a leading /.`

type Console struct { // implements quotes.View
	in     *bufio.Scanner
	out    io.Writer
	styles theme.Styles

	mode      quotes.Mode
	editIndex int
}

func New(in io.Reader, out io.Writer, styles theme.Styles) *Console {
	return &Console{
		in:        bufio.NewScanner(in),
		out:       out,
		styles:    styles,
		mode:      quotes.ModeAdd,
		editIndex: -1,
	}
}

func (c *Console) Render(s quotes.Snapshot) {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render("Quotes"))
	b.WriteString(" ")
	b.WriteString(c.styles.Count.Render(fmt.Sprintf("(%d)", s.Count())))
	b.WriteString("\n")

	if s.Empty() {
		b.WriteString(c.styles.Empty.Render("No quotes yet. Type one below to add it."))
		b.WriteString("\n")
		fmt.Fprint(c.out, b.String())
		return
	}

	for i, q := range s.Quotes {
		b.WriteString(c.styles.Index.Render(strconv.Itoa(i+1) + "."))
		if i == s.Editing {
			b.WriteString(c.styles.Editing.Render("✎ " + q))
		} else {
			b.WriteString(c.styles.Quote.Render(q))
		}
		b.WriteString("\n")
	}
	b.WriteString(c.styles.Help.Render("/edit N, /delete N, /clear all, /help"))
	b.WriteString("\n")

	fmt.Fprint(c.out, b.String())
}

func (c *Console) EnterUpdateMode(index int, text string) {
	c.mode = quotes.ModeUpdate
	c.editIndex = index
	fmt.Fprintf(c.out, "%s\n  %s\n",
		c.styles.PromptUpdate.Render(fmt.Sprintf("Editing quote #%d:", index+1)),
		text)
}

func (c *Console) EnterAddMode() {
	c.mode = quotes.ModeAdd
	c.editIndex = -1
}

// Confirm asks a yes/no question on the terminal. Anything but y or yes,
// including end of input, is a no.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", c.styles.Warning.Render(prompt))
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *Console) prompt() string {
	if c.mode == quotes.ModeUpdate {
		return c.styles.PromptUpdate.Render(fmt.Sprintf("Update quote #%d> ", c.editIndex+1))
	}
	return c.styles.Prompt.Render("Add quote> ")
}

func (c *Console) warn(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Run loads the list and processes input until /quit or end of input.
func (c *Console) Run(e *quotes.Engine) error {
	e.Initialize()

	for {
		fmt.Fprint(c.out, c.prompt())
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			break
		}

		line := c.in.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") {
			// Escaped slash: a quote that starts with "/".
			c.report(e.Submit(trimmed[1:]))
			continue
		}
		if strings.HasPrefix(trimmed, "/") {
			if quit := c.command(e, trimmed); quit {
				return nil
			}
			continue
		}

		c.report(e.Submit(line))
	}

	return c.in.Err()
}

func (c *Console) command(e *quotes.Engine, line string) (quit bool) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/?":
		fmt.Fprintln(c.out, c.styles.Help.Render(helpText))
	case "/list", "/ls":
		c.Render(e.Snapshot())
	case "/edit", "/e":
		if index, ok := c.index(args); ok {
			_, err := e.RequestEdit(index)
			c.report(err)
		}
	case "/delete", "/del", "/d":
		if index, ok := c.index(args); ok {
			c.report(e.RequestDelete(index, c.Confirm))
		}
	case "/clear":
		c.report(e.ClearAll(c.Confirm))
	default:
		c.warn("Unknown command %s. Type /help for the list of commands.", name)
	}
	return false
}

// index parses a 1-based quote number into an engine index.
func (c *Console) index(args []string) (int, bool) {
	if len(args) != 1 {
		c.warn("Expected one quote number.")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		c.warn("Expected a quote number, got %q.", args[0])
		return 0, false
	}
	return n - 1, true
}

func (c *Console) report(err error) {
	var rangeErr *quotes.RangeError
	switch {
	case err == nil:
	case errors.Is(err, quotes.ErrEmptyQuote):
		c.warn("Quote cannot be empty!")
	case errors.As(err, &rangeErr):
		c.warn("There is no quote #%d.", rangeErr.Index+1)
	default:
		consoleLogger.Error().Err(err).Msg("Operation failed")
		c.warn("Could not save quotes: %v", err)
	}
}
