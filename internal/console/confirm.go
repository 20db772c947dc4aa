package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotConfirmed is returned when the operator declines a destructive action.
var ErrNotConfirmed = errors.New("action not confirmed")

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// PromptConfirmer reads a y/N answer from in.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *PromptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// refuseAll declines every prompt. It is the default until a Confirmer is wired.
type refuseAll struct{}

func (refuseAll) Confirm(string) bool { return false }

// AlwaysConfirm approves everything; used for --yes.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(string) bool { return true }
