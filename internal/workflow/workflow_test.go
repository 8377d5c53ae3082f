package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnzdotmx/captionflow/internal/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule writes nothing and fails for topics listed in failTopics
type fakeModule struct {
	mu         sync.Mutex
	failTopics map[string]bool
	calls      []map[string]interface{}
	running    int32
	maxRunning int32
	delay      time.Duration
}

func (f *fakeModule) Name() string { return "caption" }

func (f *fakeModule) GetIO() mod.ModuleIO {
	return mod.ModuleIO{
		RequiredInputs: []mod.ModuleInput{{Name: "output", Type: string(mod.InputTypeDirectory)}},
		ProducedOutputs: []mod.ModuleOutput{
			{Name: "captions", Patterns: []string{".yaml"}, Type: string(mod.OutputTypeFile)},
		},
	}
}

func (f *fakeModule) Validate(params map[string]interface{}) error {
	if params["platform"] == "myspace" {
		return errors.New("platform: unsupported")
	}
	return nil
}

func (f *fakeModule) Execute(ctx context.Context, params map[string]interface{}) (mod.ModuleResult, error) {
	n := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		m := atomic.LoadInt32(&f.maxRunning)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxRunning, m, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.calls = append(f.calls, params)
	fail := f.failTopics[fmt.Sprint(params["topic"])]
	f.mu.Unlock()

	if fail {
		return mod.ModuleResult{}, errors.New("all AI providers failed")
	}
	path := filepath.Join(params["output"].(string), params["outputFileName"].(string)+".yaml")
	return mod.ModuleResult{
		Outputs:    map[string]string{"captions": path},
		Statistics: map[string]interface{}{"provider": "openai"},
	}, nil
}

func newRegistry(t *testing.T, m mod.Module) *mod.ModuleRegistry {
	r := mod.NewModuleRegistry()
	require.NoError(t, r.Register(m))
	return r
}

const batch = `
name: Coffee launch
concurrency: 2
defaults:
  platform: instagram
  language: Spanish
steps:
  - name: morning
    module: caption
    parameters:
      topic: morning coffee
  - name: evening
    module: caption
    parameters:
      topic: evening decaf
      platform: tiktok
  - name: beans
    module: caption
    parameters:
      topic: bean origins
      outputFileName: origins
      note: ${output}/notes.txt
`

func TestExecute(t *testing.T) {
	fake := &fakeModule{delay: 20 * time.Millisecond}
	wf, err := Parse([]byte(batch), newRegistry(t, fake))
	require.NoError(t, err)
	outputDir := t.TempDir()

	state, err := wf.Execute(context.Background(), outputDir)

	require.NoError(t, err)
	assert.Equal(t, WorkflowStatusComplete, state.Status)
	assert.Len(t, fake.calls, 3)
	assert.LessOrEqual(t, atomic.LoadInt32(&fake.maxRunning), int32(2))
	assert.Empty(t, state.Incomplete())

	byTopic := map[string]map[string]interface{}{}
	for _, c := range fake.calls {
		byTopic[c["topic"].(string)] = c
	}
	assert.Equal(t, "instagram", byTopic["morning coffee"]["platform"])
	assert.Equal(t, "Spanish", byTopic["morning coffee"]["language"])
	assert.Equal(t, "tiktok", byTopic["evening decaf"]["platform"])
	assert.Equal(t, "morning", byTopic["morning coffee"]["outputFileName"])
	assert.Equal(t, "origins", byTopic["bean origins"]["outputFileName"])
	assert.Equal(t, outputDir+"/notes.txt", byTopic["bean origins"]["note"])
	assert.Equal(t, outputDir, byTopic["bean origins"]["output"])

	assert.Equal(t, filepath.Join(outputDir, "origins.yaml"), state.Steps["beans"].Outputs["captions"])
	assert.Equal(t, 1, state.Steps["beans"].Attempts)

	saved, err := LoadWorkflowState(wf.StatePath(outputDir))
	require.NoError(t, err)
	assert.Equal(t, state.ID, saved.ID)
	assert.Equal(t, WorkflowStatusComplete, saved.Status)
	assert.Len(t, saved.History, 6)
	for _, e := range saved.History {
		assert.NotEmpty(t, e.ID)
	}
}

func TestExecute_FailedStepDoesNotStopOthers(t *testing.T) {
	fake := &fakeModule{failTopics: map[string]bool{"evening decaf": true}}
	wf, err := Parse([]byte(batch), newRegistry(t, fake))
	require.NoError(t, err)
	outputDir := t.TempDir()

	state, err := wf.Execute(context.Background(), outputDir)

	require.ErrorIs(t, err, ErrStepsFailed)
	assert.Contains(t, err.Error(), "evening")
	assert.Len(t, fake.calls, 3)
	assert.Equal(t, WorkflowStatusFailed, state.Status)
	assert.Equal(t, []string{"evening"}, state.Incomplete())
	assert.Equal(t, StepStatusFailed, state.Steps["evening"].Status)
	assert.Contains(t, state.Steps["evening"].Error, "all AI providers failed")
	assert.Equal(t, StepStatusComplete, state.StepStatus("morning"))

	// retry only reruns the failed step
	fake.failTopics = nil
	fake.calls = nil
	retried, err := wf.ExecuteRetry(context.Background(), outputDir)

	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "evening decaf", fake.calls[0]["topic"])
	assert.Equal(t, WorkflowStatusComplete, retried.Status)
	assert.Equal(t, 2, retried.Steps["evening"].Attempts)
	assert.Equal(t, state.ID, retried.ID)

	// nothing left to do
	fake.calls = nil
	_, err = wf.ExecuteRetry(context.Background(), outputDir)
	require.NoError(t, err)
	assert.Empty(t, fake.calls)
}

func TestExecuteRetry_NoState(t *testing.T) {
	wf, err := Parse([]byte(batch), newRegistry(t, &fakeModule{}))
	require.NoError(t, err)

	_, err = wf.ExecuteRetry(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "failed to read workflow state")
}

func TestExecute_InvalidParametersRunNothing(t *testing.T) {
	fake := &fakeModule{}
	wf, err := Parse([]byte(`
name: bad
steps:
  - name: one
    module: caption
    parameters: {topic: a}
  - name: two
    module: caption
    parameters: {topic: b, platform: myspace}
`), newRegistry(t, fake))
	require.NoError(t, err)

	_, err = wf.Execute(context.Background(), t.TempDir())

	assert.ErrorContains(t, err, "invalid parameters for step two")
	assert.Empty(t, fake.calls)
}

func TestExecute_CanceledContext(t *testing.T) {
	fake := &fakeModule{}
	wf, err := Parse([]byte(batch), newRegistry(t, fake))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := wf.Execute(ctx, t.TempDir())

	require.ErrorIs(t, err, ErrStepsFailed)
	assert.Empty(t, fake.calls)
	assert.Len(t, state.Incomplete(), 3)
}

func TestParse_Errors(t *testing.T) {
	registry := newRegistry(t, &fakeModule{})
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "malformed", yaml: "name: [", wantErr: "failed to parse workflow file"},
		{name: "no name", yaml: "steps: [{name: a, module: caption}]", wantErr: "name"},
		{name: "no steps", yaml: "name: x", wantErr: "no steps"},
		{name: "unnamed step", yaml: "name: x\nsteps: [{module: caption}]", wantErr: "step name is required"},
		{name: "duplicate", yaml: "name: x\nsteps: [{name: a, module: caption}, {name: a, module: caption}]", wantErr: "duplicate"},
		{name: "unknown module", yaml: "name: x\nsteps: [{name: a, module: upload}]", wantErr: "module upload not found"},
		{name: "negative concurrency", yaml: "name: x\nconcurrency: -1\nsteps: [{name: a, module: caption}]", wantErr: "concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), registry)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0644))

	wf, err := LoadFromFile(path, newRegistry(t, &fakeModule{}))
	require.NoError(t, err)
	assert.Equal(t, "Coffee_launch", wf.SanitizedName())
	assert.Equal(t, filepath.Join("out", "Coffee_launch.state.yaml"), wf.StatePath("out"))
	assert.Len(t, wf.Steps, 3)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"), mod.NewModuleRegistry())
	assert.ErrorContains(t, err, "failed to read workflow file")
}
