// Package workflow runs batches of caption and post jobs defined in YAML
package workflow

import (
	"sync"
	"time"

	"github.com/gnzdotmx/captionflow/internal/mod"
)

// DefaultConcurrency bounds how many steps run at once when the file does not say
const DefaultConcurrency = 4

// Workflow is a named batch of independent generation steps
type Workflow struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Output      string                 `yaml:"output,omitempty"`
	Concurrency int                    `yaml:"concurrency,omitempty"`
	Defaults    map[string]interface{} `yaml:"defaults,omitempty"`
	Steps       []Step                 `yaml:"steps"`

	registry *mod.ModuleRegistry
}

// Step is one module invocation
type Step struct {
	Name       string                 `yaml:"name"`
	Module     string                 `yaml:"module"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// WorkflowState is the saved record of a workflow run
type WorkflowState struct {
	mu sync.RWMutex

	ID        string                `yaml:"id"`
	Name      string                `yaml:"name"`
	OutputDir string                `yaml:"outputDir"`
	StartTime time.Time             `yaml:"startTime"`
	EndTime   time.Time             `yaml:"endTime,omitempty"`
	Status    WorkflowStatus        `yaml:"status"`
	Steps     map[string]*StepState `yaml:"steps"`
	History   []WorkflowEvent       `yaml:"history"`
}

// StepState is the outcome of one step
type StepState struct {
	Module     string                 `yaml:"module"`
	Status     StepStatus             `yaml:"status"`
	Attempts   int                    `yaml:"attempts"`
	Outputs    map[string]string      `yaml:"outputs,omitempty"`
	Statistics map[string]interface{} `yaml:"statistics,omitempty"`
	Error      string                 `yaml:"error,omitempty"`
}

// WorkflowEvent represents an event that occurred during workflow execution
type WorkflowEvent struct {
	ID        string                 `yaml:"id"`
	Timestamp time.Time              `yaml:"timestamp"`
	Step      string                 `yaml:"step"`
	Type      string                 `yaml:"type"`
	Message   string                 `yaml:"message"`
	Data      map[string]interface{} `yaml:"data,omitempty"`
}

// StepStatus represents the current status of a step
type StepStatus string

const (
	StepStatusPending  StepStatus = "pending"
	StepStatusRunning  StepStatus = "running"
	StepStatusComplete StepStatus = "complete"
	StepStatusFailed   StepStatus = "failed"
)

// WorkflowStatus represents the current status of the workflow
type WorkflowStatus string

const (
	WorkflowStatusPending  WorkflowStatus = "pending"
	WorkflowStatusRunning  WorkflowStatus = "running"
	WorkflowStatusComplete WorkflowStatus = "complete"
	WorkflowStatusFailed   WorkflowStatus = "failed"
)

// Event types recorded in the history
const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventFailed    = "failed"
)
