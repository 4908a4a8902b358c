package structs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Errors maps a field path such as instanceTemplate.resourcesSpec.memory to a
// validation message. An empty map means the value is valid.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, ok := e[field]; ok {
		return
	}

	e[field] = message
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Merge copies every error from other that is not already set.
func (e Errors) Merge(other Errors) Errors {
	for k, v := range other {
		e.Add(k, v)
	}

	return e
}

// Fields returns the failing field paths in sorted order.
func (e Errors) Fields() []string {
	fs := make([]string, 0, len(e))

	for k := range e {
		fs = append(fs, k)
	}

	sort.Strings(fs)

	return fs
}

func (e Errors) String() string {
	lines := []string{}

	for _, f := range e.Fields() {
		lines = append(lines, fmt.Sprintf("%s: %s", f, e[f]))
	}

	return strings.Join(lines, "\n")
}

type NotFoundError struct {
	Kind string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

func ErrNotFound(kind, name string) error {
	return errors.WithStack(NotFoundError{Kind: kind, Name: name})
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(NotFoundError)
	return ok
}
