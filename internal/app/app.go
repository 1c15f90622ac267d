// Package app contains the root Bubble Tea model for the editor.
//
// Bubble Tea decodes terminal input and serializes every message through
// Update; it does not paint. Each decoded key or mouse press becomes an
// editor.Event, is handled to completion by the editor, and the resulting
// redraw intent is presented and flushed before the next message is read.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/modal/internal/editor"
	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/positions"
	"github.com/zjrosen/modal/internal/pubsub"
	"github.com/zjrosen/modal/internal/render"
	"github.com/zjrosen/modal/internal/styles"
	"github.com/zjrosen/modal/internal/tracing"
	"github.com/zjrosen/modal/internal/watcher"
)

// PositionStore remembers the cursor position per file.
type PositionStore interface {
	Lookup(ctx context.Context, path string) (positions.Position, bool)
	Record(ctx context.Context, path string, row, col int) error
}

// Config holds everything the model needs. Optional collaborators may be nil.
type Config struct {
	// Path is the resolved path of the edited file.
	Path string
	// Text is the file content read at startup.
	Text string
	// Message is shown on the status line of the first paint.
	Message string
	// Width and Height are the terminal size, queried once.
	Width  int
	Height int

	Store    editor.FileStore
	Terminal *render.Terminal

	Positions PositionStore
	Watcher   *watcher.Watcher
	Tracer    trace.Tracer
}

// errMsg carries a fatal error into Update.
type errMsg struct {
	err error
}

// Model is the root application state.
type Model struct {
	ed        *editor.Editor
	renderer  *render.Renderer
	store     *tracedStore
	tracer    trace.Tracer
	positions PositionStore

	ctx    context.Context
	cancel context.CancelFunc

	// File watcher (nil when disabled)
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Change]

	err error
}

// New creates the model. The watcher, if any, must already be started.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	store := &tracedStore{store: cfg.Store, tracer: cfg.Tracer, ctx: ctx}
	m := Model{
		ed:            editor.New(cfg.Path, cfg.Text, cfg.Width, cfg.Height, store),
		renderer:      render.New(cfg.Terminal),
		store:         store,
		tracer:        cfg.Tracer,
		positions:     cfg.Positions,
		ctx:           ctx,
		cancel:        cancel,
		watcherHandle: cfg.Watcher,
	}
	if cfg.Message != "" {
		m.ed.SetMessage(cfg.Message)
	}
	if cfg.Watcher != nil {
		m.watcherListener = pubsub.NewContinuousListener(ctx, cfg.Watcher.Broker())
	}
	return m
}

// Init implements tea.Model. The first paint happens here, before any input
// is read, so a restored cursor position is in place for the first key.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if err := m.start(); err != nil {
		cmds = append(cmds, func() tea.Msg { return errMsg{err: err} })
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) start() error {
	intent := render.Full()
	if m.positions != nil {
		if p, ok := m.positions.Lookup(m.ctx, m.ed.Path()); ok {
			intent = m.ed.RestorePosition(p.Row, p.Col)
			log.Debug(log.CatEditor, "restored position", "path", m.ed.Path(), "row", p.Row, "col", p.Col)
		}
	}
	return m.present(m.ctx, intent, 0)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		log.ErrorErr(log.CatRender, "present failed", msg.err)
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.dispatch(translateKey(msg))

	case tea.MouseMsg:
		return m.dispatch(translateMouse(msg))

	case tea.WindowSizeMsg:
		// The geometry is fixed at startup.
		log.Debug(log.CatRender, "ignoring resize", "width", msg.Width, "height", msg.Height)
		return m, nil

	case pubsub.Event[watcher.Change]:
		if err := m.handleChange(msg); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.watcherListener == nil {
			return m, nil
		}
		return m, m.watcherListener.Listen()
	}

	return m, nil
}

// View implements tea.Model. The editor paints the terminal itself.
func (m Model) View() string {
	return ""
}

// Editor returns the editor driven by the model.
func (m Model) Editor() *editor.Editor {
	return m.ed
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

// dispatch feeds events to the editor one at a time, presenting after each.
func (m Model) dispatch(events []editor.Event) (tea.Model, tea.Cmd) {
	for _, ev := range events {
		quit, err := m.handleEvent(ev)
		if err != nil {
			log.ErrorErr(log.CatRender, "present failed", err)
			m.err = err
			return m, tea.Quit
		}
		if quit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handleEvent(ev editor.Event) (bool, error) {
	var quit bool
	before := m.ed.Mode().Kind()

	err := tracing.Run(m.ctx, m.tracer, tracing.SpanHandleEvent, func(ctx context.Context) error {
		m.store.ctx = ctx
		res := m.ed.Handle(ev)
		m.store.ctx = m.ctx

		row, col := m.ed.Position()
		after := m.ed.Mode().Kind()
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(
			attribute.String(tracing.AttrCommand, res.Command),
			attribute.String(tracing.AttrModeAfter, after.String()),
			attribute.Int(tracing.AttrCursorRow, row),
			attribute.Int(tracing.AttrCursorCol, col),
		)
		if after != before {
			span.AddEvent(tracing.EventModeChanged)
		}

		if res.Saved || res.Quit {
			m.recordPosition(ctx)
		}
		if res.Quit {
			span.AddEvent(tracing.EventQuit)
			log.Info(log.CatEditor, "quit", "path", m.ed.Path(), "modified", m.ed.Modified())
			quit = true
		}
		return m.present(ctx, res.Intent, res.Scroll)
	},
		attribute.String(tracing.AttrEventKey, ev.String()),
		attribute.String(tracing.AttrModeBefore, before.String()),
	)
	return quit, err
}

// handleChange reports a modification of the edited file by another process.
// Writes made by the editor itself are recognised and stay silent.
func (m *Model) handleChange(ev pubsub.Event[watcher.Change]) error {
	return tracing.Run(m.ctx, m.tracer, tracing.SpanWatchChange, func(ctx context.Context) error {
		span := trace.SpanFromContext(ctx)
		path := m.ed.Path()

		if ev.Type == pubsub.RemovedEvent {
			log.Warn(log.CatWatcher, "file removed", "path", path)
			m.ed.SetMessage(fmt.Sprintf("%q removed from disk", path))
			return m.present(ctx, render.None(), 0)
		}

		m.store.ctx = ctx
		disk, err := m.store.Read(path)
		m.store.ctx = m.ctx
		if err != nil {
			log.ErrorErr(log.CatWatcher, "reading changed file", err, "path", path)
			return nil
		}

		external := m.ed.ExternalChange(disk)
		span.SetAttributes(attribute.Bool(tracing.AttrExternalMod, external))
		if !external {
			return nil
		}

		log.Info(log.CatWatcher, "file changed on disk", "path", path, "size", ev.Payload.Size)
		hint := ":e to reload"
		if m.ed.Modified() {
			hint = ":e! to discard changes and reload"
		}
		m.ed.SetMessage(fmt.Sprintf("%q changed on disk (%s)", path, hint))
		return m.present(ctx, render.None(), 0)
	}, attribute.String(tracing.AttrChangeType, string(ev.Type)))
}

func (m *Model) recordPosition(ctx context.Context) {
	if m.positions == nil {
		return
	}
	row, col := m.ed.Position()
	if err := m.positions.Record(ctx, m.ed.Path(), row, col); err != nil {
		log.ErrorErr(log.CatStore, "recording position failed", err, "path", m.ed.Path())
	}
}

func (m *Model) present(ctx context.Context, intent render.Intent, scroll int) error {
	return tracing.Run(ctx, m.tracer, tracing.SpanPresent, func(context.Context) error {
		return m.renderer.Present(m.ed.Buffer(), m.ed.Viewport(), render.Frame{
			Intent:      intent,
			Scroll:      scroll,
			Status:      m.ed.Status(),
			StatusStyle: statusStyle(m.ed.Mode().Kind()),
		})
	},
		attribute.String(tracing.AttrRedraw, intent.Kind.String()),
		attribute.Int(tracing.AttrScroll, scroll),
	)
}

func statusStyle(k editor.ModeKind) lipgloss.Style {
	switch k {
	case editor.ModeInsert:
		return styles.InsertStatusStyle
	case editor.ModeCommand:
		return styles.CommandStatusStyle
	default:
		return styles.NormalStatusStyle
	}
}
