package parser

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_StructuredScenario(t *testing.T) {
	raw := "CAPTION:\nLoving this morning coffee ritual! #coffee #morning\n"

	out, err := ForCaptions(false).Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "structured", out.Strategy)
	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, "Loving this morning coffee ritual!", r.Text)
	assert.Equal(t, []string{"coffee", "morning"}, r.Hashtags)
	assert.Equal(t, "", r.CTA)
	assert.Equal(t, utf8.RuneCountInString(r.Text), r.CharacterCount)
}

func TestStructuredMarker(t *testing.T) {
	raw := `Sure! Here are your captions.

CAPTION:
Fresh beans, slow mornings and a cup that actually tastes like something. #coffee
HASHTAGS: #morning #coffee #ritual
CTA: Tell us your go-to brew below!

**Caption 2:**
Weekend mode: on. The grinder is already humming.
HASHTAGS: #weekend
CTA: Tag a friend who needs this`

	results := StructuredMarker(raw, "CAPTION:")

	require.Len(t, results, 2)
	assert.Equal(t, "Fresh beans, slow mornings and a cup that actually tastes like something.", results[0].Text)
	assert.Equal(t, []string{"morning", "coffee", "ritual"}, results[0].Hashtags)
	assert.Equal(t, "Tell us your go-to brew below!", results[0].CTA)
	assert.Equal(t, "Weekend mode: on. The grinder is already humming.", results[1].Text)
	assert.Equal(t, []string{"weekend"}, results[1].Hashtags)
	assert.Equal(t, "Tag a friend who needs this", results[1].CTA)
}

func TestStructuredMarker_CaseInsensitivePostMarker(t *testing.T) {
	results := StructuredMarker("post: Big news from the roastery today, new beans!\nhashtags: #news", "POST:")

	require.Len(t, results, 1)
	assert.Equal(t, "Big news from the roastery today, new beans!", results[0].Text)
	assert.Equal(t, []string{"news"}, results[0].Hashtags)
}

func TestStructuredMarker_NoMarker(t *testing.T) {
	assert.Nil(t, StructuredMarker("Just text about coffee and captions", "CAPTION:"))
}

func TestLegacyDelimiter(t *testing.T) {
	raw := `Here are three options:
---
Option 1: Rainy days call for a second espresso.
Hashtags: #rain #espresso
CTA: What's your rainy day drink?
---
Caption 2: Nothing beats the first sip.
#firstsip #coffee
***
Short`

	results := LegacyDelimiter(raw)

	require.Len(t, results, 3)
	assert.Equal(t, "Rainy days call for a second espresso.", results[0].Text)
	assert.Equal(t, []string{"rain", "espresso"}, results[0].Hashtags)
	assert.Equal(t, "What's your rainy day drink?", results[0].CTA)
	assert.Equal(t, "Nothing beats the first sip.", results[1].Text)
	assert.Equal(t, []string{"firstsip", "coffee"}, results[1].Hashtags)
	assert.Equal(t, "Short", results[2].Text)

	assert.Nil(t, LegacyDelimiter("no delimiter lines here"))
}

func TestListItems(t *testing.T) {
	raw := `1. Start your day with a perfect pour over #coffee #morning
2) **Nothing says weekend like latte art**
- ☕☕☕🔥
* tiny
• Cold brew season is officially open #coldbrew`

	results := ListItems(raw)

	require.Len(t, results, 3)
	assert.Equal(t, "Start your day with a perfect pour over", results[0].Text)
	assert.Equal(t, []string{"coffee", "morning"}, results[0].Hashtags)
	assert.Equal(t, "Nothing says weekend like latte art", results[1].Text)
	assert.Equal(t, "Cold brew season is officially open", results[2].Text)
	assert.Equal(t, []string{"coldbrew"}, results[2].Hashtags)
}

func TestParagraphs(t *testing.T) {
	raw := `Here is a caption for you

Morning light, warm mug, quiet house. This is the good part of the day.

#morning #coffee

## Notes

Second paragraph about roasting beans at home with friends.`

	results := Paragraphs(raw)

	require.Len(t, results, 2)
	assert.Equal(t, "Morning light, warm mug, quiet house. This is the good part of the day.", results[0].Text)
	assert.Equal(t, []string{"morning", "coffee"}, results[0].Hashtags)
	assert.Equal(t, "Second paragraph about roasting beans at home with friends.", results[1].Text)

	assert.Nil(t, Paragraphs("one single line with no break"))
}

func TestParagraphs_Cap(t *testing.T) {
	var paras []string
	for i := 0; i < 15; i++ {
		paras = append(paras, "A perfectly normal paragraph of text number "+string(rune('a'+i)))
	}

	results := Paragraphs(strings.Join(paras, "\n\n"))

	assert.Len(t, results, MaxParagraphs)
}

func TestRawSalvage(t *testing.T) {
	raw := "**CAPTION:** First sentence here. Second one! Third? Fourth is dropped. #coffee #tea"

	results := RawSalvage(raw, DefaultCTA)

	require.Len(t, results, 1)
	assert.Equal(t, "First sentence here. Second one! Third?", results[0].Text)
	assert.Equal(t, []string{"coffee", "tea"}, results[0].Hashtags)
	assert.Equal(t, DefaultCTA, results[0].CTA)
}

func TestRawSalvage_Bounds(t *testing.T) {
	assert.Nil(t, RawSalvage("   \n ", ""))
	assert.Nil(t, RawSalvage(strings.Repeat("a", MaxRawLength+1), ""))

	onlyTags := RawSalvage("#coffee #tea", "")
	require.Len(t, onlyTags, 1)
	assert.NotEmpty(t, onlyTags[0].Text)

	for _, raw := range []string{"x", "CAPTION:", "---", "hello", strings.Repeat("word ", 400)} {
		assert.Len(t, RawSalvage(raw, ""), 1, "raw %q", raw)
	}
}

func TestChain_UnformattedParagraphFallsToSalvage(t *testing.T) {
	raw := "Sunrise hikes make every Monday better!!"
	require.Equal(t, 40, utf8.RuneCountInString(raw))

	out, err := ForCaptions(false).Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "raw_salvage", out.Strategy)
	require.Len(t, out.Results, 1)
	assert.Equal(t, raw, out.Results[0].Text)
	assert.Equal(t, 40, out.Results[0].CharacterCount)
	assert.Equal(t, "", out.Results[0].CTA)
}

func TestChain_HashtagsNeverKeepSigil(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		strategy string
		first    []string
	}{
		{
			name:     "structured hashtags line",
			raw:      "CAPTION:\nLoving this morning coffee ritual!\nHASHTAGS: #coffee#morning #brew\n",
			strategy: "structured",
			first:    []string{"coffee", "morning", "brew"},
		},
		{
			name:     "structured bare hashtag line",
			raw:      "CAPTION:\nLoving this morning coffee ritual!\n#coffee#morning #brew\n",
			strategy: "structured",
			first:    []string{"coffee", "morning", "brew"},
		},
		{
			name:     "legacy delimiter",
			raw:      "Rainy days call for a second espresso.\nHashtags: #rain#espresso\n---\nNothing beats the first sip of the day.\n#firstsip#coffee",
			strategy: "legacy_delimiter",
			first:    []string{"rain", "espresso"},
		},
		{
			name:     "list items",
			raw:      "1. Start your day with a perfect pour over #coffee#morning\n2. Cold brew season is officially open #cold#brew",
			strategy: "list_items",
			first:    []string{"coffee", "morning"},
		},
		{
			name:     "paragraphs",
			raw:      "Morning light, warm mug, quiet house today.\n\n#morning#coffee\n\nSecond paragraph about roasting beans at home.",
			strategy: "paragraphs",
			first:    []string{"morning", "coffee"},
		},
		{
			name:     "raw salvage",
			raw:      "Sunrise hikes make every Monday better! #hike#monday",
			strategy: "raw_salvage",
			first:    []string{"hike", "monday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ForCaptions(false).Parse(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.strategy, out.Strategy)
			require.NotEmpty(t, out.Results)
			assert.Equal(t, tt.first, out.Results[0].Hashtags)
			for _, r := range out.Results {
				assert.LessOrEqual(t, len(r.Hashtags), content.MaxHashtags)
				assert.NotContains(t, r.Text, "#")
				for _, tag := range r.Hashtags {
					assert.NotEmpty(t, tag)
					assert.NotContains(t, tag, "#")
				}
			}
		})
	}
}

func TestChain_Order(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		strategy string
	}{
		{name: "list wins over paragraphs", raw: "- First bullet item text\n\n- Second bullet item text", strategy: "list_items"},
		{name: "legacy wins over list", raw: "- bullet item text here\n---\n- another bullet text", strategy: "legacy_delimiter"},
		{name: "paragraphs", raw: "Plain paragraph number one.\n\nPlain paragraph number two.", strategy: "paragraphs"},
		{name: "trivial structured falls through", raw: "A longer paragraph that carries the text.\n\nPOST: hi", strategy: "paragraphs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ForPosts(false).Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, out.Strategy)
		})
	}
}

func TestChain_ParseErrors(t *testing.T) {
	c := ForCaptions(true)

	_, err := c.Parse("  ")
	assert.True(t, errors.Is(err, content.ErrParse))

	_, err = c.Parse(strings.Repeat("z", MaxRawLength+5))
	assert.ErrorIs(t, err, content.ErrParse)
	assert.Contains(t, err.Error(), "could not parse AI response")
}

func TestChain_Strategies(t *testing.T) {
	assert.Equal(t, []string{"structured", "legacy_delimiter", "list_items", "paragraphs", "raw_salvage"}, ForCaptions(false).Strategies())
}

func TestReadabilityAlwaysClamped(t *testing.T) {
	inputs := []string{
		"word",
		strings.Repeat("word ", 300),
		"A. B. C. D. E. F.",
		"CAPTION:\n" + strings.Repeat("long ", 50),
	}
	for _, raw := range inputs {
		out, err := ForCaptions(false).Parse(raw)
		require.NoError(t, err)
		for _, r := range out.Results {
			assert.GreaterOrEqual(t, r.Readability, 0.0)
			assert.LessOrEqual(t, r.Readability, 100.0)
			assert.Equal(t, utf8.RuneCountInString(r.Text), r.CharacterCount)
		}
	}
}
