// Package fallback generates template based captions and posts without any
// remote provider.
package fallback

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

const (
	defaultBrand    = "our team"
	defaultAudience = "our community"
	maxKeywords     = 5
	maxPoolTags     = 4
)

// Templates is the tone keyed template table
type Templates struct {
	DefaultTone      string              `yaml:"defaultTone"`
	Tones            map[string][]string `yaml:"tones"`
	CTAs             map[string][]string `yaml:"ctas"`
	PlatformHashtags map[string][]string `yaml:"platformHashtags"`
}

// LoadTemplates parses a template table from YAML
func LoadTemplates(data []byte) (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse fallback templates: %w", err)
	}
	if len(t.Tones[t.DefaultTone]) == 0 {
		return nil, fmt.Errorf("fallback templates: default tone %q has no templates", t.DefaultTone)
	}
	if len(t.CTAs["default"]) == 0 {
		return nil, fmt.Errorf("fallback templates: no default CTAs")
	}
	return &t, nil
}

// DefaultTemplates returns the built in template table
func DefaultTemplates() *Templates {
	t, err := LoadTemplates(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return t
}

// Generator produces results from templates. The only randomness is the
// platform hashtag shuffle, drawn from an injectable source.
type Generator struct {
	templates *Templates

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a Generator
type Option func(*Generator)

// WithRand sets the random source used for the hashtag shuffle
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithTemplates replaces the built in template table
func WithTemplates(t *Templates) Option {
	return func(g *Generator) {
		if t != nil {
			g.templates = t
		}
	}
}

// New creates a fallback generator
func New(opts ...Option) *Generator {
	g := &Generator{
		templates: DefaultTemplates(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count results for opts, cycling through the templates
// of the requested tone. It fails only on a blank topic or platform.
func (g *Generator) Generate(opts content.Options, count int) ([]content.Result, error) {
	if err := utils.RequireField("topic", opts.Topic); err != nil {
		return nil, err
	}
	if err := utils.RequireField("platform", string(opts.Platform)); err != nil {
		return nil, err
	}
	if count < 1 {
		count = 1
	}

	platform := strings.ToLower(string(opts.Platform))
	templates := g.templates.Tones[strings.ToLower(opts.Tone)]
	if len(templates) == 0 {
		templates = g.templates.Tones[g.templates.DefaultTone]
	}
	ctas := g.templates.CTAs[platform]
	if len(ctas) == 0 {
		ctas = g.templates.CTAs["default"]
	}

	replacer := strings.NewReplacer(
		"{topic}", strings.TrimSpace(opts.Topic),
		"{brand}", orDefault(opts.Brand, defaultBrand),
		"{audience}", orDefault(opts.Audience, defaultAudience),
	)

	results := make([]content.Result, 0, count)
	for i := 0; i < count; i++ {
		text := replacer.Replace(templates[i%len(templates)])

		var hashtags []string
		if opts.IncludeHashtags {
			hashtags = append(Keywords(opts.Topic), g.shuffledPool(platform)...)
		}

		var cta string
		if opts.IncludeCTA {
			cta = ctas[i%len(ctas)]
		}

		results = append(results, content.NewResult(text, hashtags, cta))
	}
	return results, nil
}

// shuffledPool returns a shuffled slice of the platform hashtag pool
func (g *Generator) shuffledPool(platform string) []string {
	pool := append([]string(nil), g.templates.PlatformHashtags[platform]...)

	g.mu.Lock()
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	g.mu.Unlock()

	if len(pool) > maxPoolTags {
		pool = pool[:maxPoolTags]
	}
	return pool
}

// Keywords extracts hashtag candidates from a topic: lowercased alphanumeric
// words longer than three characters, deduplicated.
func Keywords(topic string) []string {
	words := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{})
	var out []string
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
