package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/content"
)

var listItem = regexp.MustCompile(`^\s*(?:[*\-•]|\d{1,2}[.)])\s+(.+)$`)

// StructuredMarker parses output that follows the requested template. It
// matches only when marker appears at the start of a line; each marker
// opens a new block and anything before the first one is ignored.
func StructuredMarker(raw, marker string) []content.Result {
	re := markerPattern(marker)
	locs := re.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	results := make([]content.Result, 0, len(locs))
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		results = append(results, extractBlock(raw[loc[1]:end]))
	}
	return results
}

// LegacyDelimiter parses blocks separated by ---, *** or === lines
func LegacyDelimiter(raw string) []content.Result {
	if !delimiterRe.MatchString(raw) {
		return nil
	}

	var results []content.Result
	for _, block := range delimiterRe.Split(raw, -1) {
		if strings.TrimSpace(block) == "" || isPreamble(block) {
			continue
		}
		results = append(results, extractBlock(block))
	}
	return results
}

// ListItems treats every bullet or numbered line as one result
func ListItems(raw string) []content.Result {
	var results []content.Result
	for _, line := range strings.Split(raw, "\n") {
		m := listItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		item := leadingLabel.ReplaceAllString(cleanLine(m[1]), "")
		tags := content.ExtractInline(item)
		text := cleanLine(content.StripInline(item))
		if isTrivial(text) || !hasWordRune(text) {
			continue
		}
		results = append(results, content.NewResult(text, tags, ""))
	}
	return results
}

// Paragraphs splits on blank lines and keeps paragraphs that do not look
// like markup or instructions echoed back by the model. A paragraph made
// only of hashtags is attached to the paragraph before it.
func Paragraphs(raw string) []content.Result {
	if !blankLine.MatchString(raw) {
		return nil
	}

	paragraphs := blankLine.Split(strings.TrimSpace(raw), -1)
	if len(paragraphs) > MaxParagraphs {
		paragraphs = paragraphs[:MaxParagraphs]
	}

	var results []content.Result
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if content.IsHashtagLine(p) {
			if n := len(results); n > 0 {
				last := results[n-1]
				results[n-1] = content.NewResult(last.Text, append(last.Hashtags, content.ExtractInline(p)...), last.CTA)
			}
			continue
		}

		if hasMarkup(p) || instructional.MatchString(p) || isPreamble(p) {
			continue
		}

		text := content.StripInline(p)
		if isTrivial(text) {
			continue
		}
		results = append(results, content.NewResult(text, content.ExtractInline(p), ""))
	}
	return results
}

func hasMarkup(p string) bool {
	for _, m := range []string{"**", "##", "```", "---"} {
		if strings.Contains(p, m) {
			return true
		}
	}
	return markerLabel.MatchString(p)
}

// RawSalvage is the terminal strategy. It strips every known marker,
// collects hashtags from anywhere, collapses whitespace and keeps the first
// sentences. It yields exactly one result for any non-blank raw text of at
// most MaxRawLength runes.
func RawSalvage(raw, cta string) []content.Result {
	if strings.TrimSpace(raw) == "" || utf8.RuneCountInString(raw) > MaxRawLength {
		return nil
	}

	cleaned := anyLabel.ReplaceAllString(raw, " ")
	cleaned = delimiterRe.ReplaceAllString(cleaned, " ")
	cleaned = headingPrefix.ReplaceAllString(cleaned, "")
	cleaned = strings.NewReplacer("**", "", "```", "").Replace(cleaned)

	tags := content.ExtractInline(cleaned)
	text := strings.Join(strings.Fields(content.StripInline(cleaned)), " ")
	if text == "" {
		// Nothing but hashtags or labels: keep what is there
		text = strings.Join(strings.Fields(cleaned), " ")
	}
	if text == "" {
		text = strings.Join(strings.Fields(raw), " ")
	}

	return []content.Result{content.NewResult(firstSentences(text, MaxSentences), tags, cta)}
}
