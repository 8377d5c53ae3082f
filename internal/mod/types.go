package mod

import "fmt"

// ModuleIO declares the parameters a module reads and the artifacts it writes
type ModuleIO struct {
	RequiredInputs  []ModuleInput
	OptionalInputs  []ModuleInput
	ProducedOutputs []ModuleOutput
}

// ModuleInput describes one parameter
type ModuleInput struct {
	Name        string
	Description string
	Patterns    []string
	Type        string
}

// ModuleOutput describes one produced artifact
type ModuleOutput struct {
	Name        string
	Description string
	Patterns    []string
	Type        string
}

// ModuleResult contains the results of a module execution
type ModuleResult struct {
	Outputs    map[string]string      `yaml:"outputs,omitempty"`
	Metadata   map[string]interface{} `yaml:"metadata,omitempty"`
	Statistics map[string]interface{} `yaml:"statistics,omitempty"`
}

// InputType defines the valid types of module inputs
type InputType string

const (
	InputTypeFile      InputType = "file"
	InputTypeDirectory InputType = "directory"
	InputTypeData      InputType = "data"
)

// OutputType defines the valid types of module outputs
type OutputType string

const (
	OutputTypeFile      OutputType = "file"
	OutputTypeDirectory OutputType = "directory"
	OutputTypeData      OutputType = "data"
)

// ValidateIO validates a module's I/O specification
func ValidateIO(io ModuleIO) error {
	for i, input := range io.RequiredInputs {
		if err := validateInput("required", i, input); err != nil {
			return err
		}
	}
	for i, input := range io.OptionalInputs {
		if err := validateInput("optional", i, input); err != nil {
			return err
		}
	}

	for i, output := range io.ProducedOutputs {
		if output.Name == "" {
			return fmt.Errorf("output %d has empty name", i)
		}
		switch OutputType(output.Type) {
		case OutputTypeFile, OutputTypeDirectory, OutputTypeData:
		default:
			return fmt.Errorf("output %s has invalid type: %q", output.Name, output.Type)
		}
		if len(output.Patterns) == 0 {
			return fmt.Errorf("output %s has no patterns defined", output.Name)
		}
	}
	return nil
}

func validateInput(kind string, i int, input ModuleInput) error {
	if input.Name == "" {
		return fmt.Errorf("%s input %d has empty name", kind, i)
	}
	switch InputType(input.Type) {
	case InputTypeFile, InputTypeDirectory, InputTypeData:
		return nil
	default:
		return fmt.Errorf("%s input %s has invalid type: %q", kind, input.Name, input.Type)
	}
}
