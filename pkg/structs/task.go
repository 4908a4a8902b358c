package structs

import "strings"

const (
	TaskStatusNotStarted = "NOT_STARTED"
	TaskStatusRunning    = "RUNNING"
	TaskStatusSucceeded  = "SUCCEEDED"
	TaskStatusTerminal   = "TERMINAL"
	TaskStatusCanceled   = "CANCELED"
	TaskStatusStopped    = "STOPPED"
)

type TaskStep struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartTime int64  `json:"startTime,omitempty"`
	EndTime   int64  `json:"endTime,omitempty"`
}

type TaskVariable struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

type Task struct {
	Id          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	Application string         `json:"application,omitempty"`
	Status      string         `json:"status"`
	StartTime   int64          `json:"startTime,omitempty"`
	EndTime     int64          `json:"endTime,omitempty"`
	Steps       []TaskStep     `json:"steps,omitempty"`
	Variables   []TaskVariable `json:"variables,omitempty"`
	Execution   *TaskExecution `json:"execution,omitempty"`
}

type TaskExecution struct {
	Stages []TaskStage `json:"stages,omitempty"`
}

type TaskStage struct {
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
}

// TaskJob is one operation inside a task submission. Fields other than type
// are flattened into the job object on the wire.
type TaskJob map[string]interface{}

type TaskCreate struct {
	Application string    `json:"application"`
	Description string    `json:"description"`
	Job         []TaskJob `json:"job"`
}

type TaskRef struct {
	Ref string `json:"ref"`
}

// Id returns the task id from a task reference such as /tasks/01ABC.
func (r TaskRef) Id() string {
	return r.Ref[strings.LastIndex(r.Ref, "/")+1:]
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusSucceeded
}

func (t *Task) IsFailed() bool {
	if t == nil {
		return false
	}

	switch t.Status {
	case TaskStatusTerminal, TaskStatusCanceled, TaskStatusStopped:
		return true
	}

	return false
}

func (t *Task) IsTerminal() bool {
	return t.IsCompleted() || t.IsFailed()
}

// Failure returns the exception message a failed task reports, if any.
func (t *Task) Failure() string {
	if t == nil {
		return ""
	}

	for _, v := range t.Variables {
		if v.Key != "exception" {
			continue
		}

		if m, ok := v.Value.(map[string]interface{}); ok {
			if d, ok := m["details"].(map[string]interface{}); ok {
				if e, ok := d["error"].(string); ok {
					return e
				}
			}
		}

		if s, ok := v.Value.(string); ok {
			return s
		}
	}

	return ""
}

// HasRunningStage reports whether the task is still running a stage of the
// given type.
func (t *Task) HasRunningStage(stageType string) bool {
	if t == nil || t.Execution == nil || t.IsTerminal() {
		return false
	}

	for _, s := range t.Execution.Stages {
		if s.Type == stageType {
			return true
		}
	}

	return false
}
