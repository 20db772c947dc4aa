package console

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier surfaces short-lived success and failure messages to the operator.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// WriterNotifier prints notifications to a terminal and mirrors them into the log.
type WriterNotifier struct {
	out    io.Writer
	logger *zap.Logger
	mu     sync.Mutex
}

func NewWriterNotifier(out io.Writer, logger *zap.Logger) *WriterNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriterNotifier{out: out, logger: logger}
}

func (n *WriterNotifier) Success(title, message string) {
	n.print("✓", title, message)
	n.logger.Info(title, zap.String("message", message))
}

func (n *WriterNotifier) Error(title, message string) {
	n.print("✗", title, message)
	n.logger.Warn(title, zap.String("message", message))
}

func (n *WriterNotifier) print(mark, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if message == "" {
		fmt.Fprintf(n.out, "%s %s\n", mark, title)
		return
	}
	fmt.Fprintf(n.out, "%s %s: %s\n", mark, title, message)
}

// Notification is one recorded toast.
type Notification struct {
	Kind    string
	Title   string
	Message string
}

// Recorder keeps notifications in memory. The gateway returns them with the page.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(title, message string) {
	r.add(Notification{Kind: "success", Title: title, Message: message})
}

func (r *Recorder) Error(title, message string) {
	r.add(Notification{Kind: "error", Title: title, Message: message})
}

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
