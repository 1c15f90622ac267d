package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/modal/internal/log"
)

// exCommand is a command-line command. run sets the next mode itself; its
// bang argument is set when the name was followed by '!', which is only
// accepted when bang is true.
type exCommand struct {
	run  func(e *Editor, bang bool)
	bang bool
}

var exCommands = map[string]exCommand{
	"w":    {run: (*Editor).exWrite},
	"q":    {run: (*Editor).exQuit},
	"wq":   {run: (*Editor).exWriteQuit},
	"e":    {run: (*Editor).exReload, bang: true},
	"diff": {run: (*Editor).exDiff},
}

// runCommandLine executes text typed after ':'. An empty line just returns to
// normal mode. An unknown command is reported and the command line is reset
// so another command can be typed.
func (e *Editor) runCommandLine(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		e.setMode(Normal())
		return
	}

	name, bang := strings.CutSuffix(text, "!")
	cmd, ok := exCommands[name]
	if !ok || (bang && !cmd.bang) {
		log.Debug(log.CatMode, "unknown command", "text", text)
		e.message = fmt.Sprintf("Not an editor command: %s (Esc or Ctrl-C to cancel)", text)
		e.setMode(CommandMode(""))
		return
	}

	log.Debug(log.CatMode, "command", "name", name, "bang", bang)
	cmd.run(e, bang)
}

func (e *Editor) exWrite(bool) {
	e.save()
	e.setMode(Normal())
}

func (e *Editor) exQuit(bool) {
	e.res.Quit = true
	e.setMode(Normal())
}

// exWriteQuit quits only if the save succeeded.
func (e *Editor) exWriteQuit(bool) {
	if e.save() {
		e.res.Quit = true
	}
	e.setMode(Normal())
}

// exReload replaces the buffer with the file on disk. Without bang it refuses
// to drop unsaved edits.
func (e *Editor) exReload(bang bool) {
	e.setMode(Normal())
	if e.modified && !bang {
		e.message = "No write since last change (add ! to override)"
		return
	}

	text, err := e.store.Read(e.path)
	if err != nil {
		log.ErrorErr(log.CatFile, "reload failed", err, "path", e.path)
		e.message = "Reload failed! reason: " + err.Error()
		return
	}
	e.redraw(e.Reload(text))
	e.message = fmt.Sprintf("%q reloaded, %d lines", e.path, e.buf.LineCount())
}

// exDiff summarises how the buffer differs from the file on disk.
func (e *Editor) exDiff(bool) {
	e.setMode(Normal())
	summary, err := e.store.DiffSummary(e.path, e.buf.Text())
	if err != nil {
		log.ErrorErr(log.CatFile, "diff failed", err, "path", e.path)
		e.message = "Diff failed! reason: " + err.Error()
		return
	}
	e.message = summary
}
