package state

import "time"

// Severity classifies a log message.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Message is one log line.
type Message struct {
	Severity Severity
	Text     string
	Time     time.Time
}

// OutputLog is the append-only message pane. Appending scrolls to the
// newest entry; manual scrolling holds until the next append.
type OutputLog struct {
	messages []Message
	scroll   int
	height   int
	now      func() time.Time
}

// NewOutputLog returns an empty log with a one-line window.
func NewOutputLog() *OutputLog {
	return &OutputLog{height: 1, now: time.Now}
}

func (l *OutputLog) Add(sev Severity, text string) {
	l.messages = append(l.messages, Message{Severity: sev, Text: text, Time: l.now()})
	l.ScrollToBottom()
}

func (l *OutputLog) Info(text string)  { l.Add(Info, text) }
func (l *OutputLog) Warn(text string)  { l.Add(Warning, text) }
func (l *OutputLog) Error(text string) { l.Add(Error, text) }

// Messages returns every entry, oldest first.
func (l *OutputLog) Messages() []Message {
	dup := make([]Message, len(l.messages))
	copy(dup, l.messages)
	return dup
}

func (l *OutputLog) Len() int {
	return len(l.messages)
}

// Last returns the newest entry.
func (l *OutputLog) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Clear removes every entry.
func (l *OutputLog) Clear() {
	l.messages = nil
	l.scroll = 0
}

// SetWindowHeight takes the outer pane height; two rows go to the border.
func (l *OutputLog) SetWindowHeight(h int) {
	inner := h - 2
	if inner < 1 {
		inner = 1
	}
	l.height = inner
	l.clamp()
}

// Height is the number of visible rows.
func (l *OutputLog) Height() int {
	return l.height
}

// Scroll is the index of the first visible entry.
func (l *OutputLog) Scroll() int {
	return l.scroll
}

func (l *OutputLog) ScrollUp(n int) {
	l.scroll -= n
	l.clamp()
}

func (l *OutputLog) ScrollDown(n int) {
	l.scroll += n
	l.clamp()
}

func (l *OutputLog) ScrollToBottom() {
	l.scroll = l.maxScroll()
}

// AtBottom reports whether the newest entry is visible.
func (l *OutputLog) AtBottom() bool {
	return l.scroll >= l.maxScroll()
}

// Visible returns the entries inside the window.
func (l *OutputLog) Visible() []Message {
	end := l.scroll + l.height
	if end > len(l.messages) {
		end = len(l.messages)
	}
	if l.scroll >= end {
		return nil
	}
	return l.messages[l.scroll:end]
}

func (l *OutputLog) maxScroll() int {
	m := len(l.messages) - l.height
	if m < 0 {
		return 0
	}
	return m
}

func (l *OutputLog) clamp() {
	if max := l.maxScroll(); l.scroll > max {
		l.scroll = max
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
}
