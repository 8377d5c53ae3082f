package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gnzdotmx/captionflow/internal/content"
)

var (
	delimiterLine = regexp.MustCompile(`^[ \t]*(?:-{3,}|\*{3,}|={3,})[ \t]*$`)
	delimiterRe   = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|={3,})[ \t]*$`)
	hashtagLabel  = regexp.MustCompile(`(?i)^[*_]*\s*hash\s*tags?\s*[*_]*\s*:[*_]*\s*(.*)$`)
	ctaLabel      = regexp.MustCompile(`(?i)^[*_]*\s*(?:cta|call to action)\s*[*_]*\s*:[*_]*\s*(.*)$`)
	leadingLabel  = regexp.MustCompile(`(?i)^[*_#]*\s*(?:caption|post|option)\s*#?\d*\s*[*_]*\s*:[*_]*\s*`)
	anyLabel      = regexp.MustCompile(`(?im)^[ \t]*[*_#]*[ \t]*(?:caption|post|option|hash\s*tags?|cta|call to action)(?:[ \t]*#?\d+)?[ \t]*[*_]*:[*_]*`)
	headingPrefix = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blankLine     = regexp.MustCompile(`\n[ \t]*\n`)
	extraBlanks   = regexp.MustCompile(`\n{3,}`)
	markerLabel   = regexp.MustCompile(`(?i)\b(?:caption|post|hashtags|cta)\s*:`)
	instructional = regexp.MustCompile(`(?i)\b(?:captions?|options?)\b`)
)

// markerPattern matches a marker word at the start of a line, tolerating
// markdown emphasis and a numeric suffix ("**Caption 2:**").
func markerPattern(marker string) *regexp.Regexp {
	word := strings.TrimSuffix(strings.TrimSpace(marker), ":")
	return regexp.MustCompile(`(?im)^[ \t]*[*_#]*[ \t]*` + regexp.QuoteMeta(word) + `(?:[ \t]*#?\d+)?[ \t]*[*_]*:[*_]*`)
}

// extractBlock pulls text, hashtags and CTA out of one labeled block.
// Hashtags from label lines come first, inline ones after.
func extractBlock(block string) content.Result {
	set := content.NewHashtagSet()
	var cta string
	var lines []string

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			lines = append(lines, "")
		case delimiterLine.MatchString(trimmed):
		case hashtagLabel.MatchString(trimmed):
			set.AddLine(hashtagLabel.FindStringSubmatch(trimmed)[1])
		case ctaLabel.MatchString(trimmed):
			cta = cleanLine(ctaLabel.FindStringSubmatch(trimmed)[1])
		case content.IsHashtagLine(trimmed):
			set.AddLine(trimmed)
		default:
			if text := cleanLine(leadingLabel.ReplaceAllString(trimmed, "")); text != "" {
				lines = append(lines, text)
			}
		}
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	set.Add(content.ExtractInline(text)...)
	text = extraBlanks.ReplaceAllString(content.StripInline(text), "\n\n")

	return content.NewResult(text, set.Items(), cta)
}

// cleanLine drops markdown emphasis and wrapping quotes
func cleanLine(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	line = strings.TrimSpace(line)
	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		line = strings.TrimSpace(line[1 : len(line)-1])
	}
	return line
}

// isPreamble reports a single introductory line such as "Here are three captions:"
func isPreamble(text string) bool {
	text = strings.TrimSpace(text)
	return !strings.Contains(text, "\n") && strings.HasSuffix(text, ":")
}

func hasWordRune(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// firstSentences returns text cut after the n-th sentence terminator
func firstSentences(text string, n int) string {
	runes := []rune(text)
	count := 0
	for i, r := range runes {
		if !isTerminator(r) {
			continue
		}
		if i+1 < len(runes) && isTerminator(runes[i+1]) {
			continue
		}
		count++
		if count == n {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}
	return strings.TrimSpace(text)
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
