package content

import (
	"regexp"
	"strings"
)

// MaxHashtags caps every hashtag list a Result can carry
const MaxHashtags = 10

// inlineHashtag matches a run of #tags that starts a line or follows
// whitespace, a comma or an opening bracket. "page#section" is left alone;
// "#coffee#morning" is one run of two tags.
var inlineHashtag = regexp.MustCompile(`(^|[\s,(\["'])((?:#[\p{L}\p{N}_]+)+)`)

// HashtagSet collects hashtags without the leading '#', drops literal
// duplicates and keeps insertion order. It stops accepting at MaxHashtags.
type HashtagSet struct {
	seen  map[string]struct{}
	items []string
}

// NewHashtagSet creates an empty set
func NewHashtagSet() *HashtagSet {
	return &HashtagSet{seen: make(map[string]struct{})}
}

// Add inserts each tag, normalizing away '#' and surrounding punctuation.
// Tags run together ("#coffee#morning") are split apart.
func (s *HashtagSet) Add(tags ...string) {
	for _, tag := range tags {
		for _, part := range strings.Split(tag, "#") {
			s.add(part)
		}
	}
}

func (s *HashtagSet) add(tag string) {
	tag = strings.TrimRight(strings.TrimSpace(tag), ".,;:!?")
	if tag == "" || len(s.items) >= MaxHashtags {
		return
	}
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.items = append(s.items, tag)
}

// AddLine adds every whitespace or comma separated token of a HASHTAGS line
func (s *HashtagSet) AddLine(line string) {
	s.Add(strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})...)
}

// Len returns the number of collected hashtags
func (s *HashtagSet) Len() int { return len(s.items) }

// Items returns a copy of the collected hashtags; never nil
func (s *HashtagSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// ExtractInline returns every #tag found in text, without the '#'
func ExtractInline(text string) []string {
	matches := inlineHashtag.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		for _, tag := range strings.Split(m[2], "#") {
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// StripInline removes #tags from text and collapses the leftover spacing on
// each line.
func StripInline(text string) string {
	stripped := inlineHashtag.ReplaceAllString(text, "${1}")
	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// IsHashtagLine reports whether a line consists only of #tags
func IsHashtagLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") || len(f) < 2 {
			return false
		}
	}
	return true
}
