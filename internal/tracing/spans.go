package tracing

// Span attribute keys.
const (
	AttrSessionID = "session.id"

	AttrFilePath  = "file.path"
	AttrFileBytes = "file.bytes"
	AttrFileLines = "file.lines"

	AttrEventKey    = "editor.event"
	AttrModeBefore  = "editor.mode.before"
	AttrModeAfter   = "editor.mode.after"
	AttrCommand     = "editor.command"
	AttrCursorRow   = "editor.cursor.row"
	AttrCursorCol   = "editor.cursor.col"
	AttrRedraw      = "render.intent"
	AttrScroll      = "render.scroll"
	AttrChangeType  = "watch.change"
	AttrExternalMod = "watch.external"
)

// Span names.
const (
	SpanHandleEvent = "editor.handle"
	SpanPresent     = "render.present"
	SpanFileRead    = "file.read"
	SpanFileWrite   = "file.write"
	SpanFileDiff    = "file.diff"
	SpanWatchChange = "watch.change"
)

// Event names for span events.
const (
	EventModeChanged = "mode.changed"
	EventQuit        = "editor.quit"
)
