package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

// ErrNoHandler is returned when a row action has no callback wired.
var ErrNoHandler = errors.New("no handler for action")

// Action is a row-level operation a table delegates to its parent.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Column renders one cell from a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// RowAction handles one row action.
type RowAction[T any] func(ctx context.Context, row T) error

// Table renders entities and routes row actions to parent callbacks.
type Table[T models.Entity] struct {
	Columns  []Column[T]
	Color    bool
	handlers map[Action]RowAction[T]
}

func NewTable[T models.Entity](columns ...Column[T]) *Table[T] {
	return &Table[T]{Columns: columns, handlers: map[Action]RowAction[T]{}}
}

// On registers the callback for action.
func (t *Table[T]) On(action Action, fn RowAction[T]) *Table[T] {
	t.handlers[action] = fn
	return t
}

// Trigger runs the callback for action on the row with id. ctx is handed to
// the callback so the caller can cancel it.
func (t *Table[T]) Trigger(ctx context.Context, action Action, rows []T, id int64) error {
	fn, ok := t.handlers[action]
	if !ok || fn == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, action)
	}
	for _, row := range rows {
		if row.EntityID() == id {
			return fn(ctx, row)
		}
	}
	return fmt.Errorf("no row with id %d", id)
}

// Render writes one aligned line per row.
func (t *Table[T]) Render(w io.Writer, rows []T) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = col.Value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Cells returns the rendered cell values, one slice per row.
func (t *Table[T]) Cells(rows []T) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = col.Value(row)
		}
		out = append(out, cells)
	}
	return out
}

// Badge is a short coloured label derived from a row's own fields.
type Badge struct {
	Label string
	Color string
}

var ansi = map[string]string{
	"red":    "\033[31m",
	"green":  "\033[32m",
	"yellow": "\033[33m",
	"blue":   "\033[34m",
	"gray":   "\033[90m",
}

// Render returns the label, wrapped in an ANSI colour when color is set.
func (b Badge) Render(color bool) string {
	code, ok := ansi[b.Color]
	if !color || !ok {
		return b.Label
	}
	return code + b.Label + "\033[0m"
}

func StockBadge(p models.Product) Badge {
	status := p.Status()
	switch status {
	case models.StockOut:
		return Badge{Label: string(status), Color: "red"}
	case models.StockLow:
		return Badge{Label: string(status), Color: "yellow"}
	default:
		return Badge{Label: string(status), Color: "green"}
	}
}

func UnitBadge(u models.Unit) Badge {
	switch u.Status {
	case models.UnitOccupied:
		return Badge{Label: "Occupied", Color: "blue"}
	case models.UnitMaintenance:
		return Badge{Label: "Maintenance", Color: "yellow"}
	case models.UnitAvailable:
		return Badge{Label: "Available", Color: "green"}
	default:
		return Badge{Label: "Unknown", Color: "gray"}
	}
}

func RoleBadge(u models.User) Badge {
	label := u.Role
	if label == "" {
		label = "user"
	}
	return Badge{Label: title(label), Color: models.RoleColor(u.Role)}
}
