package workflow

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gnzdotmx/captionflow/internal/mod"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// NewWorkflowState creates a pending state for steps
func NewWorkflowState(name, outputDir string, steps []Step) *WorkflowState {
	s := &WorkflowState{
		ID:        uuid.New().String(),
		Name:      name,
		OutputDir: outputDir,
		StartTime: time.Now(),
		Status:    WorkflowStatusPending,
		Steps:     make(map[string]*StepState, len(steps)),
		History:   make([]WorkflowEvent, 0),
	}
	for _, step := range steps {
		s.Steps[step.Name] = &StepState{Module: step.Module, Status: StepStatusPending}
	}
	return s
}

// AddEvent adds an event to the workflow history in a thread-safe manner
func (s *WorkflowState) AddEvent(step, eventType, message string, data map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, WorkflowEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Step:      step,
		Type:      eventType,
		Message:   message,
		Data:      data,
	})
}

// MarkRunning flags a step as running and counts the attempt
func (s *WorkflowState) MarkRunning(step, module string) {
	s.mu.Lock()
	st := s.step(step, module)
	st.Status = StepStatusRunning
	st.Attempts++
	st.Error = ""
	s.mu.Unlock()

	s.AddEvent(step, EventStarted, fmt.Sprintf("Started executing %s", step), nil)
}

// RecordResult marks a step complete with the module's result
func (s *WorkflowState) RecordResult(step, module string, result mod.ModuleResult) {
	s.mu.Lock()
	st := s.step(step, module)
	st.Status = StepStatusComplete
	st.Outputs = result.Outputs
	st.Statistics = result.Statistics
	s.mu.Unlock()

	s.AddEvent(step, EventCompleted, fmt.Sprintf("Completed executing %s", step), result.Statistics)
}

// RecordFailure marks a step failed
func (s *WorkflowState) RecordFailure(step, module string, err error) {
	s.mu.Lock()
	st := s.step(step, module)
	st.Status = StepStatusFailed
	st.Error = err.Error()
	s.mu.Unlock()

	s.AddEvent(step, EventFailed, fmt.Sprintf("Failed executing %s: %v", step, err), map[string]interface{}{
		"error": err.Error(),
	})
}

// StepStatus returns the status of a step, pending when unknown
func (s *WorkflowState) StepStatus(step string) StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.Steps[step]; ok {
		return st.Status
	}
	return StepStatusPending
}

// Incomplete returns the sorted names of steps that did not complete
func (s *WorkflowState) Incomplete() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name, st := range s.Steps {
		if st.Status != StepStatusComplete {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Finish sets the final status from the step outcomes
func (s *WorkflowState) Finish() {
	failed := len(s.Incomplete()) > 0

	s.mu.Lock()
	defer s.mu.Unlock()
	s.EndTime = time.Now()
	s.Status = WorkflowStatusComplete
	if failed {
		s.Status = WorkflowStatusFailed
	}
}

// step must be called with the lock held
func (s *WorkflowState) step(name, module string) *StepState {
	st, ok := s.Steps[name]
	if !ok {
		st = &StepState{Module: module}
		s.Steps[name] = st
	}
	return st
}

// Save writes the state as YAML
func (s *WorkflowState) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := utils.WriteYAMLFile(path, s); err != nil {
		return fmt.Errorf("failed to save workflow state: %w", err)
	}
	return nil
}

// LoadWorkflowState reads a state saved by Save
func LoadWorkflowState(path string) (*WorkflowState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow state: %w", err)
	}

	s := &WorkflowState{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse workflow state: %w", err)
	}
	if s.Steps == nil {
		s.Steps = make(map[string]*StepState)
	}
	return s, nil
}
