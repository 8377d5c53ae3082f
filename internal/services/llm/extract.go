package llm

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when a response body is not JSON
var ErrMalformedResponse = errors.New("provider returned a malformed response")

// ExtractText pulls the generated text out of a response body. It accepts
// the chat completion shape, the Gemini candidates shape and the text
// generation array shape, whichever is present.
func ExtractText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrMalformedResponse
	}

	if r := gjson.GetBytes(body, "choices.0.message.content"); r.Exists() {
		return nonEmpty(r.String())
	}

	if r := gjson.GetBytes(body, "candidates.0.content.parts.#.text"); r.Exists() {
		var parts []string
		for _, p := range r.Array() {
			parts = append(parts, p.String())
		}
		return nonEmpty(strings.Join(parts, ""))
	}

	if r := gjson.GetBytes(body, "choices.0.text"); r.Exists() {
		return nonEmpty(r.String())
	}

	if r := gjson.GetBytes(body, "0.generated_text"); r.Exists() {
		return nonEmpty(r.String())
	}

	return "", ErrEmptyResponse
}

// ExtractErrorMessage returns the provider error message from a failed response body
func ExtractErrorMessage(body []byte) string {
	for _, path := range []string{"error.message", "error", "message"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func nonEmpty(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
