package app

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/render"
)

// ErrNotTerminal is returned by Run when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// minHeight leaves one text row above the status line.
const minHeight = 2

// Run takes over the terminal, edits until the user quits, then restores the
// terminal. The size is queried once; cfg.Width, cfg.Height and cfg.Terminal
// are filled in here.
func Run(cfg Config, in, out *os.File) error {
	inFd, outFd := int(in.Fd()), int(out.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(outFd) {
		return ErrNotTerminal
	}

	width, height, err := term.GetSize(outFd)
	if err != nil {
		return fmt.Errorf("querying terminal size: %w", err)
	}
	if height < minHeight || width < 1 {
		return fmt.Errorf("terminal too small: %dx%d", width, height)
	}

	state, err := term.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() { _ = term.Restore(inFd, state) }()

	terminal := render.NewTerminal(out)
	if err := terminal.Setup(); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	defer func() { _ = terminal.Restore() }()

	cfg.Width, cfg.Height, cfg.Terminal = width, height, terminal
	log.Info(log.CatEditor, "starting editor", "path", cfg.Path, "width", width, "height", height)

	model := New(cfg)
	defer func() {
		if err := model.Close(); err != nil {
			log.ErrorErr(log.CatEditor, "closing editor", err)
		}
	}()

	p := tea.NewProgram(model,
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutRenderer(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
