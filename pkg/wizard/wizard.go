package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/task"
	"github.com/pkg/errors"
)

var (
	ErrClosed   = errors.New("wizard is closed")
	ErrInvalid  = errors.New("validation failed")
	ErrNotReady = errors.New("wizard is not editing")
)

type State string

const (
	StateTemplateSelection State = "templateSelection"
	StateEditing           State = "editing"
	StateSubmitting        State = "submitting"
	StateClosed            State = "closed"
)

// Section is one validated page of a wizard. Validate must be pure.
type Section[T any] interface {
	Label() string
	Validate(cmd T) structs.Errors
}

// Action is a named change to the command held by a wizard.
type Action[T any] interface {
	Name() string
	Reduce(cmd *T) error
}

type action[T any] struct {
	name string
	fn   func(*T) error
}

func (a action[T]) Name() string {
	return a.name
}

func (a action[T]) Reduce(cmd *T) error {
	return a.fn(cmd)
}

// Do builds an Action from a function.
func Do[T any](name string, fn func(*T) error) Action[T] {
	return action[T]{name: name, fn: fn}
}

// SubmitFunc issues the write for a finished command.
type SubmitFunc[T any] func(ctx context.Context, p structs.Provider, cmd T) (*structs.Task, error)

type Options[T any] struct {
	Title    string
	Sections []Section[T]

	// Copy returns a deep copy of a command. Actions reduce a copy that only
	// replaces the held command once the action succeeds.
	Copy func(T) T

	// Pipeline wizards close with the command instead of submitting it.
	Pipeline bool

	RequiresTemplateSelection bool

	Provider   structs.Provider
	Submit     SubmitFunc[T]
	OnComplete func(*structs.Task)

	Interval time.Duration
	Timeout  time.Duration
	Logger   *logger.Logger
}

// Wizard holds the state of one wizard instance.
type Wizard[T any] struct {
	opts Options[T]

	command T
	errors  structs.Errors
	lock    sync.Mutex
	monitor *task.Monitor
	page    int
	result  *T
	state   State
}

func New[T any](cmd T, opts Options[T]) *Wizard[T] {
	if opts.Copy == nil {
		opts.Copy = func(v T) T { return v }
	}

	if opts.Logger == nil {
		opts.Logger = logger.New("ns=wizard")
	}

	w := &Wizard[T]{
		opts:    opts,
		command: opts.Copy(cmd),
		errors:  structs.Errors{},
		state:   StateEditing,
	}

	if opts.RequiresTemplateSelection {
		w.state = StateTemplateSelection
	}

	return w
}

// Command returns a copy of the current command.
func (w *Wizard[T]) Command() T {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.opts.Copy(w.command)
}

func (w *Wizard[T]) Errors() structs.Errors {
	w.lock.Lock()
	defer w.lock.Unlock()

	return structs.Errors{}.Merge(w.errors)
}

func (w *Wizard[T]) Monitor() *task.Monitor {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.monitor
}

func (w *Wizard[T]) Page() int {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.page
}

// Pages returns the section labels in order.
func (w *Wizard[T]) Pages() []string {
	labels := make([]string, len(w.opts.Sections))

	for i, s := range w.opts.Sections {
		labels[i] = s.Label()
	}

	return labels
}

// Result returns the command a pipeline wizard closed with.
func (w *Wizard[T]) Result() (T, bool) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.result == nil {
		var zero T
		return zero, false
	}

	return w.opts.Copy(*w.result), true
}

func (w *Wizard[T]) State() State {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.state
}

func (w *Wizard[T]) Title() string {
	return w.opts.Title
}

// Dispatch applies an action to a copy of the command and keeps the copy if
// the action succeeds.
func (w *Wizard[T]) Dispatch(a Action[T]) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.state != StateEditing {
		return errors.Wrap(ErrNotReady, a.Name())
	}

	next := w.opts.Copy(w.command)

	if err := a.Reduce(&next); err != nil {
		return errors.Wrap(err, a.Name())
	}

	w.command = next

	if len(w.errors) > 0 {
		w.errors = w.validate(w.page, w.command)
	}

	return nil
}

// SelectTemplate leaves template selection, optionally replacing the command
// with the chosen template.
func (w *Wizard[T]) SelectTemplate(cmd *T) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.state != StateTemplateSelection {
		return ErrNotReady
	}

	if cmd != nil {
		w.command = w.opts.Copy(*cmd)
	}

	w.state = StateEditing

	return nil
}

// Next validates the current page and moves forward when it is valid.
func (w *Wizard[T]) Next() (structs.Errors, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.state != StateEditing {
		return nil, ErrNotReady
	}

	w.errors = w.validate(w.page, w.command)

	if !w.errors.Empty() {
		return w.errors, ErrInvalid
	}

	if w.page < len(w.opts.Sections)-1 {
		w.page++
	}

	return w.errors, nil
}

func (w *Wizard[T]) Back() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.state == StateEditing && w.page > 0 {
		w.page--
		w.errors = structs.Errors{}
	}
}

// Dismiss closes the wizard without submitting.
func (w *Wizard[T]) Dismiss() {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.state = StateClosed
}

// Submit validates every page. Pipeline wizards then close with the command;
// the others run the submit function through a task monitor and close when the
// task succeeds or return to editing when it fails.
func (w *Wizard[T]) Submit(ctx context.Context) (structs.Errors, error) {
	w.lock.Lock()

	if w.state == StateClosed {
		w.lock.Unlock()
		return nil, ErrClosed
	}

	if w.state != StateEditing {
		w.lock.Unlock()
		return nil, ErrNotReady
	}

	errs := structs.Errors{}

	for i := range w.opts.Sections {
		e := w.validate(i, w.command)

		if !e.Empty() && errs.Empty() {
			w.page = i
		}

		errs.Merge(e)
	}

	w.errors = errs

	if !errs.Empty() {
		w.lock.Unlock()
		return errs, ErrInvalid
	}

	cmd := w.opts.Copy(w.command)

	if w.opts.Pipeline {
		w.result = &cmd
		w.state = StateClosed
		w.lock.Unlock()
		return errs, nil
	}

	if w.opts.Submit == nil {
		w.lock.Unlock()
		return errs, errors.Errorf("no submit function: %s", w.opts.Title)
	}

	m := task.New(w.opts.Provider, w.opts.Title)
	m.Logger = w.opts.Logger
	m.OnComplete = w.opts.OnComplete

	if w.opts.Interval > 0 {
		m.Interval = w.opts.Interval
	}

	if w.opts.Timeout > 0 {
		m.Timeout = w.opts.Timeout
	}

	w.monitor = m
	w.state = StateSubmitting
	w.lock.Unlock()

	err := m.Submit(ctx, func(ctx context.Context) (*structs.Task, error) {
		return w.opts.Submit(ctx, w.opts.Provider, cmd)
	})

	w.lock.Lock()
	defer w.lock.Unlock()

	if w.state == StateClosed {
		return errs, err
	}

	if err != nil {
		w.state = StateEditing
		return errs, err
	}

	w.state = StateClosed

	return errs, nil
}

func (w *Wizard[T]) validate(page int, cmd T) structs.Errors {
	if page < 0 || page >= len(w.opts.Sections) {
		return structs.Errors{}
	}

	errs := w.opts.Sections[page].Validate(cmd)
	if errs == nil {
		return structs.Errors{}
	}

	return errs
}
