// Package snscontent provides the caption and post workflow modules. Each
// resolves a topic, runs the generator and writes the results as YAML.
package snscontent

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/generator"
	"github.com/gnzdotmx/captionflow/internal/mod"
	"github.com/gnzdotmx/captionflow/internal/topic"
	"github.com/gnzdotmx/captionflow/internal/utils"
)

const (
	// CaptionModule is the registry name of the caption module
	CaptionModule = "caption"
	// PostModule is the registry name of the post module
	PostModule = "post"

	// DefaultCaptionCount is used when neither the step nor the module sets a count
	DefaultCaptionCount = 3
)

// Module generates captions or posts for one topic
type Module struct {
	kind         content.Kind
	gen          generator.Servicer
	resolver     *topic.Resolver
	captionCount int
}

// Params contains the parameters of one caption or post step
type Params struct {
	topic.Source

	Platform        string `json:"platform"`
	Tone            string `json:"tone"`
	Language        string `json:"language"`
	Length          string `json:"length"`
	Count           int    `json:"count"`           // captions only
	IncludeHashtags *bool  `json:"includeHashtags"` // default: true
	IncludeCTA      *bool  `json:"includeCTA"`      // default: true
	Brand           string `json:"brand"`
	Audience        string `json:"audience"`
	Output          string `json:"output"`         // output directory
	OutputFileName  string `json:"outputFileName"` // without extension
}

// Document is the YAML file written by Execute
type Document struct {
	Module      string          `yaml:"module"`
	Topic       string          `yaml:"topic"`
	Origin      string          `yaml:"origin"`
	Options     content.Options `yaml:"options"`
	GeneratedAt time.Time       `yaml:"generatedAt"`

	generator.Output `yaml:",inline"`
}

// NewCaption creates the caption module. A count below one means
// DefaultCaptionCount.
func NewCaption(gen generator.Servicer, resolver *topic.Resolver, count int) *Module {
	if count < 1 {
		count = DefaultCaptionCount
	}
	return newModule(content.KindCaption, gen, resolver, count)
}

// NewPost creates the post module
func NewPost(gen generator.Servicer, resolver *topic.Resolver) *Module {
	return newModule(content.KindPost, gen, resolver, 0)
}

func newModule(kind content.Kind, gen generator.Servicer, resolver *topic.Resolver, count int) *Module {
	if resolver == nil {
		resolver = topic.NewResolver()
	}
	return &Module{kind: kind, gen: gen, resolver: resolver, captionCount: count}
}

// Name returns the module name
func (m *Module) Name() string {
	if m.kind == content.KindPost {
		return PostModule
	}
	return CaptionModule
}

// Validate checks the step parameters without resolving the topic
func (m *Module) Validate(params map[string]interface{}) error {
	p, err := m.parse(params)
	if err != nil {
		return err
	}
	return m.validate(p)
}

func (m *Module) parse(params map[string]interface{}) (Params, error) {
	var p Params
	if err := mod.ParseParams(params, &p); err != nil {
		return Params{}, err
	}
	if m.kind == content.KindCaption && p.Count == 0 {
		p.Count = m.captionCount
	}
	return p, nil
}

func (m *Module) validate(p Params) error {
	if err := p.Source.Validate(); err != nil {
		return err
	}
	if err := utils.RequireField("output", p.Output); err != nil {
		return err
	}
	if m.kind == content.KindCaption {
		if err := utils.ValidateRange("count", p.Count, 1, generator.MaxCaptions); err != nil {
			return err
		}
	}
	// The topic itself is checked once it is resolved
	return p.options(p.describeSource()).WithDefaults().Validate(m.kind)
}

// Execute resolves the topic, generates and writes <outputFileName|module>.yaml
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (mod.ModuleResult, error) {
	p, err := m.parse(params)
	if err != nil {
		return mod.ModuleResult{}, err
	}
	if err := m.validate(p); err != nil {
		return mod.ModuleResult{}, err
	}
	if m.gen == nil {
		return mod.ModuleResult{}, fmt.Errorf("%s module has no generator", m.Name())
	}

	t, err := m.resolver.Resolve(ctx, p.Source)
	if err != nil {
		return mod.ModuleResult{}, fmt.Errorf("failed to resolve topic: %w", err)
	}
	utils.LogVerbose("Resolved topic from %s: %s", t.Origin, t.Text)

	opts := p.options(t.Text).WithDefaults()

	var out generator.Output
	if m.kind == content.KindPost {
		out, err = m.gen.Posts(ctx, opts)
	} else {
		out, err = m.gen.Captions(ctx, opts, p.Count)
	}
	if err != nil {
		return mod.ModuleResult{}, err
	}

	name := p.OutputFileName
	if name == "" {
		name = m.Name()
	}
	outputPath := filepath.Join(p.Output, name+".yaml")

	doc := Document{
		Module:      m.Name(),
		Topic:       t.Text,
		Origin:      t.Origin,
		Options:     opts,
		GeneratedAt: time.Now().UTC(),
		Output:      out,
	}
	if err := utils.WriteYAMLFile(outputPath, doc); err != nil {
		return mod.ModuleResult{}, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	utils.LogSuccess("Generated %d %ss with %s -> %s", len(out.Results), m.kind, out.Provider, outputPath)

	return mod.ModuleResult{
		Outputs: map[string]string{
			m.outputName(): outputPath,
		},
		Metadata: map[string]interface{}{
			"output": out,
		},
		Statistics: map[string]interface{}{
			"requestId":    out.RequestID,
			"provider":     out.Provider,
			"strategy":     out.Strategy,
			"fallbackUsed": out.FallbackUsed,
			"results":      len(out.Results),
		},
	}, nil
}

func (m *Module) outputName() string {
	return string(m.kind) + "s"
}

// GetIO returns the module's input/output specification
func (m *Module) GetIO() mod.ModuleIO {
	optional := []mod.ModuleInput{
		{Name: "topic", Description: "Topic text", Type: string(mod.InputTypeData)},
		{Name: "topicFile", Description: "Text file holding the topic", Patterns: []string{".txt", ".md"}, Type: string(mod.InputTypeFile)},
		{Name: "url", Description: "Web page describing the topic", Type: string(mod.InputTypeData)},
		{Name: "youtubeVideo", Description: "YouTube video ID or URL", Type: string(mod.InputTypeData)},
		{Name: "tone", Description: "Writing tone", Type: string(mod.InputTypeData)},
		{Name: "language", Description: "Output language", Type: string(mod.InputTypeData)},
		{Name: "length", Description: "short, medium or long", Type: string(mod.InputTypeData)},
		{Name: "includeHashtags", Description: "Add hashtags", Type: string(mod.InputTypeData)},
		{Name: "includeCTA", Description: "Add a call to action", Type: string(mod.InputTypeData)},
		{Name: "outputFileName", Description: "Custom output file name", Type: string(mod.InputTypeData)},
	}
	if m.kind == content.KindCaption {
		optional = append(optional, mod.ModuleInput{Name: "count", Description: "Number of captions", Type: string(mod.InputTypeData)})
	} else {
		optional = append(optional,
			mod.ModuleInput{Name: "brand", Description: "Brand voice", Type: string(mod.InputTypeData)},
			mod.ModuleInput{Name: "audience", Description: "Target audience", Type: string(mod.InputTypeData)},
		)
	}

	return mod.ModuleIO{
		RequiredInputs: []mod.ModuleInput{
			{Name: "platform", Description: "Target platform", Type: string(mod.InputTypeData)},
			{Name: "output", Description: "Path to output directory", Type: string(mod.InputTypeDirectory)},
		},
		OptionalInputs: optional,
		ProducedOutputs: []mod.ModuleOutput{
			{
				Name:        m.outputName(),
				Description: "Generated " + string(m.kind) + "s",
				Patterns:    []string{".yaml"},
				Type:        string(mod.OutputTypeFile),
			},
		},
	}
}

func (p Params) options(topicText string) content.Options {
	return content.Options{
		Topic:           topicText,
		Platform:        content.Platform(p.Platform),
		Tone:            p.Tone,
		Language:        p.Language,
		Length:          content.Length(strings.ToLower(p.Length)),
		IncludeHashtags: p.IncludeHashtags == nil || *p.IncludeHashtags,
		IncludeCTA:      p.IncludeCTA == nil || *p.IncludeCTA,
		Brand:           p.Brand,
		Audience:        p.Audience,
	}
}

func (p Params) describeSource() string {
	for _, v := range []string{p.Text, p.File, p.URL, p.YouTube} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Ensure both modules satisfy mod.Module
var _ mod.Module = (*Module)(nil)
