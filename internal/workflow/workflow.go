package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnzdotmx/captionflow/internal/mod"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ErrStepsFailed is returned when at least one step of a run failed
var ErrStepsFailed = errors.New("workflow steps failed")

// LoadFromFile loads a workflow from a YAML file and checks it against registry
func LoadFromFile(path string, registry *mod.ModuleRegistry) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}
	return Parse(data, registry)
}

// Parse decodes a workflow definition and checks it against registry
func Parse(data []byte, registry *mod.ModuleRegistry) (*Workflow, error) {
	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse workflow file: %w", err)
	}
	w.registry = registry

	if err := w.check(); err != nil {
		return nil, err
	}
	return &w, nil
}

func (w *Workflow) check() error {
	if err := utils.RequireField("name", w.Name); err != nil {
		return err
	}
	if len(w.Steps) == 0 {
		return &utils.ValidationError{Field: "steps", Message: "workflow has no steps"}
	}
	if w.Concurrency < 0 {
		return &utils.ValidationError{Field: "concurrency", Message: "must not be negative"}
	}

	seen := make(map[string]bool, len(w.Steps))
	for i, step := range w.Steps {
		if strings.TrimSpace(step.Name) == "" {
			return &utils.ValidationError{Field: fmt.Sprintf("steps[%d].name", i), Message: "step name is required"}
		}
		if seen[step.Name] {
			return &utils.ValidationError{Field: "steps", Message: fmt.Sprintf("duplicate step name %q", step.Name)}
		}
		seen[step.Name] = true

		if _, err := w.registry.Get(step.Module); err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
	}
	return nil
}

// SanitizedName is the workflow name usable as a file name
func (w *Workflow) SanitizedName() string {
	return strings.ReplaceAll(strings.TrimSpace(w.Name), " ", "_")
}

// StatePath returns where the run state of this workflow lives in outputDir
func (w *Workflow) StatePath(outputDir string) string {
	return filepath.Join(outputDir, w.SanitizedName()+".state.yaml")
}

// Execute runs every step into outputDir and saves the run state there
func (w *Workflow) Execute(ctx context.Context, outputDir string) (*WorkflowState, error) {
	state := NewWorkflowState(w.Name, outputDir, w.Steps)
	return state, w.run(ctx, state, w.Steps)
}

// ExecuteRetry reruns the steps that did not complete in the run saved in outputDir
func (w *Workflow) ExecuteRetry(ctx context.Context, outputDir string) (*WorkflowState, error) {
	state, err := LoadWorkflowState(w.StatePath(outputDir))
	if err != nil {
		return nil, err
	}
	state.OutputDir = outputDir

	var pending []Step
	for _, step := range w.Steps {
		if state.StepStatus(step.Name) != StepStatusComplete {
			pending = append(pending, step)
		}
	}
	if len(pending) == 0 {
		utils.LogInfo("All steps of %s already completed", w.Name)
		return state, nil
	}

	utils.LogInfo("Retrying %d step(s) of %s", len(pending), w.Name)
	return state, w.run(ctx, state, pending)
}

func (w *Workflow) run(ctx context.Context, state *WorkflowState, steps []Step) error {
	if err := os.MkdirAll(state.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Reject bad parameters before any provider is called
	for _, step := range steps {
		step := step
		module, _ := w.registry.Get(step.Module)
		if err := module.Validate(w.params(step, state.OutputDir)); err != nil {
			return fmt.Errorf("invalid parameters for step %s: %w", step.Name, err)
		}
	}

	state.mu.Lock()
	state.Status = WorkflowStatusRunning
	state.mu.Unlock()

	limit := w.Concurrency
	if limit == 0 {
		limit = DefaultConcurrency
	}

	// Steps are independent; a failed step never cancels its siblings
	var g errgroup.Group
	g.SetLimit(limit)
	for _, step := range steps {
		step := step
		g.Go(func() error {
			w.runStep(ctx, state, step)
			return nil
		})
	}
	_ = g.Wait()

	state.Finish()
	if err := state.Save(w.StatePath(state.OutputDir)); err != nil {
		return err
	}

	if failed := state.Incomplete(); len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrStepsFailed, strings.Join(failed, ", "))
	}
	return nil
}

func (w *Workflow) runStep(ctx context.Context, state *WorkflowState, step Step) {
	module, err := w.registry.Get(step.Module)
	if err != nil {
		state.RecordFailure(step.Name, step.Module, err)
		return
	}

	state.MarkRunning(step.Name, step.Module)
	utils.LogVerbose("Step %s: running %s", step.Name, step.Module)

	if err := ctx.Err(); err != nil {
		state.RecordFailure(step.Name, step.Module, err)
		return
	}

	result, err := module.Execute(ctx, w.params(step, state.OutputDir))
	if err != nil {
		utils.LogError("Step %s failed: %v", step.Name, err)
		state.RecordFailure(step.Name, step.Module, err)
		return
	}
	state.RecordResult(step.Name, step.Module, result)
}

// params merges the workflow defaults with the step parameters, resolves
// ${output} and points the module at outputDir
func (w *Workflow) params(step Step, outputDir string) map[string]interface{} {
	params := make(map[string]interface{}, len(w.Defaults)+len(step.Parameters)+1)
	for k, v := range w.Defaults {
		params[k] = v
	}
	for k, v := range step.Parameters {
		params[k] = v
	}
	for k, v := range params {
		if s, ok := v.(string); ok {
			params[k] = utils.ResolveOutputPath(s, outputDir)
		}
	}
	params["output"] = outputDir
	if _, ok := params["outputFileName"]; !ok {
		params["outputFileName"] = step.Name
	}
	return params
}
