package task

import (
	"context"
	"sync"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
)

const (
	DefaultInterval = 2 * time.Second
	DefaultRetries  = 3
	DefaultTimeout  = 30 * time.Minute
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateRunning    State = "running"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// SubmitFunc issues the write that starts a task.
type SubmitFunc func(ctx context.Context) (*structs.Task, error)

// Monitor submits one task and follows it until it reaches a terminal status.
type Monitor struct {
	Provider   structs.Provider
	Title      string
	Interval   time.Duration
	Retries    int
	Timeout    time.Duration
	OnComplete func(*structs.Task)
	OnFail     func(*structs.Task, error)
	OnUpdate   func(*structs.Task)
	Logger     *logger.Logger

	err   error
	lock  sync.Mutex
	state State
	task  *structs.Task
}

func New(p structs.Provider, title string) *Monitor {
	return &Monitor{
		Provider: p,
		Title:    title,
		Interval: DefaultInterval,
		Retries:  DefaultRetries,
		Timeout:  DefaultTimeout,
		Logger:   logger.New("ns=task"),
	}
}

// Submit runs fn once and polls the resulting task until it is terminal. A
// monitor can only be submitted once.
func (m *Monitor) Submit(ctx context.Context, fn SubmitFunc) error {
	m.lock.Lock()
	if m.state != "" && m.state != StateIdle {
		m.lock.Unlock()
		return errors.Errorf("task already submitted: %s", m.Title)
	}
	m.state = StateSubmitting
	m.lock.Unlock()

	log := m.logger().At("submit").Namespace("title=%q", m.Title).Start()

	t, err := fn(ctx)
	if err != nil {
		m.fail(nil, err)
		return log.Error(err)
	}

	if t == nil || t.Id == "" {
		err := errors.Errorf("no task returned")
		m.fail(t, err)
		return log.Error(err)
	}

	m.update(StateRunning, t)

	log.Logf("id=%s", t.Id)

	if err := m.poll(ctx, t.Id); err != nil {
		return log.Error(err)
	}

	log.Success()

	return nil
}

func (m *Monitor) Error() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.err
}

func (m *Monitor) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.state == "" {
		return StateIdle
	}

	return m.state
}

func (m *Monitor) Task() *structs.Task {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.task
}

func (m *Monitor) poll(ctx context.Context, id string) error {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var last *structs.Task

	err := helpers.WaitContext(ctx, interval, m.Timeout, 1, func() (bool, error) {
		var t *structs.Task

		// transient read failures do not fail the task
		err := helpers.RetryContext(ctx, m.Retries, interval, func() error {
			tt, err := m.Provider.WithContext(ctx).TaskGet(id)
			if err != nil {
				m.logger().At("poll").Logf("id=%s retry=true error=%q", id, err)
				return err
			}
			t = tt
			return nil
		})
		if err != nil {
			return false, err
		}

		last = t

		m.update(StateRunning, t)

		return t.IsTerminal(), nil
	})
	if err != nil {
		m.fail(last, err)
		return err
	}

	if last.IsFailed() {
		err := errors.Errorf("task failed: %s", helpers.CoalesceString(last.Failure(), string(last.Status)))
		m.fail(last, err)
		return err
	}

	m.update(StateSucceeded, last)

	if m.OnComplete != nil {
		m.OnComplete(last)
	}

	return nil
}

func (m *Monitor) fail(t *structs.Task, err error) {
	m.lock.Lock()
	m.state = StateFailed
	m.err = err
	if t != nil {
		m.task = t
	}
	m.lock.Unlock()

	if m.OnFail != nil {
		m.OnFail(t, err)
	}
}

func (m *Monitor) logger() *logger.Logger {
	if m.Logger == nil {
		return logger.New("ns=task")
	}

	return m.Logger
}

func (m *Monitor) update(state State, t *structs.Task) {
	m.lock.Lock()
	m.state = state
	m.task = t
	m.lock.Unlock()

	if m.OnUpdate != nil {
		m.OnUpdate(t)
	}
}
