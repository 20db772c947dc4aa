package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// ErrDialogClosed is returned by Submit when no form is open.
var ErrDialogClosed = errors.New("dialog is not open")

// Saver is the persistence surface a dialog writes through.
type Saver[T models.Entity] interface {
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id int64, payload T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Choice is one option of a reference dropdown.
type Choice struct {
	ID    int64
	Label string
}

// ChoiceLoader fetches the options of one reference dropdown.
type ChoiceLoader func(ctx context.Context) ([]Choice, error)

// ChoicesFrom adapts a list call into a ChoiceLoader.
func ChoicesFrom[E models.Entity](list func(ctx context.Context, query map[string]string) ([]E, error)) ChoiceLoader {
	return func(ctx context.Context) ([]Choice, error) {
		items, err := list(ctx, nil)
		if err != nil {
			return nil, err
		}
		choices := make([]Choice, 0, len(items))
		for _, item := range items {
			choices = append(choices, Choice{ID: item.EntityID(), Label: item.DisplayName()})
		}
		return choices, nil
	}
}

type reference struct {
	name string
	load ChoiceLoader
}

// Mode tells whether the open form creates or edits.
type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

// Dialog is the create/edit form for one entity type. It is not safe for
// concurrent use; each operator session owns its own dialog.
type Dialog[T models.Entity] struct {
	noun       string
	saver      Saver[T]
	notifier   Notifier
	confirmer  Confirmer
	validate   *validator.Validate
	logger     *zap.Logger
	onSuccess  func(T)
	references []reference

	open    bool
	mode    Mode
	form    T
	editID  int64
	choices map[string][]Choice
}

// DialogOption customises a Dialog.
type DialogOption[T models.Entity] func(*Dialog[T])

func WithReference[T models.Entity](name string, load ChoiceLoader) DialogOption[T] {
	return func(d *Dialog[T]) { d.references = append(d.references, reference{name: name, load: load}) }
}

func WithOnSuccess[T models.Entity](fn func(T)) DialogOption[T] {
	return func(d *Dialog[T]) { d.onSuccess = fn }
}

func WithConfirmer[T models.Entity](c Confirmer) DialogOption[T] {
	return func(d *Dialog[T]) { d.confirmer = c }
}

func WithDialogLogger[T models.Entity](logger *zap.Logger) DialogOption[T] {
	return func(d *Dialog[T]) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDialog builds a dialog for the entity called noun ("seller", "room").
func NewDialog[T models.Entity](noun string, saver Saver[T], notifier Notifier, opts ...DialogOption[T]) *Dialog[T] {
	d := &Dialog[T]{
		noun:      noun,
		saver:     saver,
		notifier:  notifier,
		confirmer: refuseAll{},
		validate:  validator.New(),
		logger:    zap.NewNop(),
		choices:   map[string][]Choice{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dialog[T]) IsOpen() bool { return d.open }
func (d *Dialog[T]) Mode() Mode   { return d.mode }
func (d *Dialog[T]) Form() T      { return d.form }

// SetForm replaces the form values. The id being edited is kept.
func (d *Dialog[T]) SetForm(form T) { d.form = form }

// Choices returns the loaded options of a reference dropdown.
func (d *Dialog[T]) Choices(name string) []Choice { return d.choices[name] }

// OpenCreate opens an empty form.
func (d *Dialog[T]) OpenCreate(ctx context.Context) error {
	var zero T
	d.form, d.editID, d.mode, d.open = zero, 0, ModeCreate, true
	return d.loadReferences(ctx)
}

// OpenEdit opens the form prefilled with entity.
func (d *Dialog[T]) OpenEdit(ctx context.Context, entity T) error {
	d.form, d.editID, d.mode, d.open = entity, entity.EntityID(), ModeEdit, true
	return d.loadReferences(ctx)
}

// Close discards the form.
func (d *Dialog[T]) Close() {
	var zero T
	d.form, d.editID, d.mode, d.open = zero, 0, 0, false
}

// loadReferences fetches every dropdown concurrently. The form stays open
// with empty dropdowns when a loader fails.
func (d *Dialog[T]) loadReferences(ctx context.Context) error {
	if len(d.references) == 0 {
		return nil
	}

	results := make([][]Choice, len(d.references))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range d.references {
		g.Go(func() error {
			choices, err := ref.load(gctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", ref.name, err)
			}
			results[i] = choices
			return nil
		})
	}
	err := g.Wait()

	d.choices = make(map[string][]Choice, len(d.references))
	for i, ref := range d.references {
		d.choices[ref.name] = results[i]
	}
	if err != nil {
		d.logger.Warn("load dialog references", zap.String("entity", d.noun), zap.Error(err))
		d.notifier.Error("Error", fmt.Sprintf("Failed to load options for %s", d.noun))
	}
	return err
}

// Submit validates and saves the form. On success the form is reset and
// closed and the success callback runs once with the saved entity.
func (d *Dialog[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	if !d.open {
		return zero, ErrDialogClosed
	}

	if err := d.validate.Struct(d.form); err != nil {
		d.notifier.Error("Validation failed", validationMessage(err))
		return zero, fmt.Errorf("validate %s: %w", d.noun, err)
	}

	var (
		saved T
		err   error
		verb  = "created"
	)
	if d.mode == ModeEdit {
		verb = "updated"
		saved, err = d.saver.Update(ctx, d.editID, d.form)
	} else {
		saved, err = d.saver.Create(ctx, d.form)
	}
	if err != nil {
		d.logger.Error("save "+d.noun, zap.String("mode", verb), zap.Error(err))
		d.notifier.Error("Error", d.failureMessage(err, "save"))
		return zero, err
	}

	d.notifier.Success("Success", fmt.Sprintf("%s %s successfully", title(d.noun), verb))
	d.Close()
	if d.onSuccess != nil {
		d.onSuccess(saved)
	}
	return saved, nil
}

// Delete removes entity after the operator confirms.
func (d *Dialog[T]) Delete(ctx context.Context, entity T) error {
	if !d.confirmer.Confirm(fmt.Sprintf("Delete %s %q?", d.noun, entity.DisplayName())) {
		return ErrNotConfirmed
	}
	if err := d.saver.Delete(ctx, entity.EntityID()); err != nil {
		d.logger.Error("delete "+d.noun, zap.Int64("id", entity.EntityID()), zap.Error(err))
		d.notifier.Error("Error", d.failureMessage(err, "delete"))
		return err
	}
	d.notifier.Success("Success", fmt.Sprintf("%s deleted successfully", title(d.noun)))
	if d.onSuccess != nil {
		d.onSuccess(entity)
	}
	return nil
}

func (d *Dialog[T]) failureMessage(err error, action string) string {
	if msg, ok := inventory.ServerMessage(err); ok {
		return msg
	}
	return fmt.Sprintf("Failed to %s %s", action, d.noun)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func title(noun string) string {
	if noun == "" {
		return noun
	}
	return strings.ToUpper(noun[:1]) + noun[1:]
}
