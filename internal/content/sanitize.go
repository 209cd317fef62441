// Package content validates and sanitizes block-structured comment bodies:
// ordered lists of {type, value} records mixing rich-text HTML and code
// snippets. Untrusted markup goes through a blocklist stripping pass; this is
// deliberately not a full HTML sanitizer, all tags outside the blocklist pass
// through unchanged.
package content

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/blogcore-dev/blogcore/internal/domain"
)

const (
	// MaxCommentLength caps the whole document's stripped text length.
	MaxCommentLength = 5000
	// MaxCodeBlockLength caps a single code block's content.
	MaxCodeBlockLength = 10000
)

var (
	scriptRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	eventAttrRe = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*["']?[^"'>\s]+["']?`)
	iframeRe    = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
	styleRe     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
)

// SanitizeHTML strips dangerous markup from a rich-text fragment. Passes run
// in a fixed order: script elements, inline event-handler attributes, iframe
// elements, style elements. Everything else passes through.
func SanitizeHTML(html string) string {
	out := scriptRe.ReplaceAllString(html, "")
	out = eventAttrRe.ReplaceAllString(out, "")
	out = iframeRe.ReplaceAllString(out, "")
	out = styleRe.ReplaceAllString(out, "")
	return out
}

// StripTags removes all markup, leaving text content only. Used for length
// accounting and search/excerpt text.
func StripTags(html string) string {
	return tagRe.ReplaceAllString(html, "")
}

// TextLength is the document's rendered text length in characters:
// tag-stripped for rich-text blocks, raw content for code blocks.
func TextLength(doc domain.Document) int {
	total := 0
	for _, block := range doc {
		switch block.Type {
		case domain.BlockRichText:
			total += utf8.RuneCountInString(StripTags(block.HTML))
		case domain.BlockCode:
			total += utf8.RuneCountInString(block.Code.Code)
		}
	}
	return total
}

// Text renders the document as plain text, blocks joined by newlines.
func Text(doc domain.Document) string {
	var out string
	for i, block := range doc {
		if i > 0 {
			out += "\n"
		}
		switch block.Type {
		case domain.BlockRichText:
			out += StripTags(block.HTML)
		case domain.BlockCode:
			out += block.Code.Code
		}
	}
	return out
}

// rawBlock mirrors the loose inbound record shape before validation.
type rawBlock struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// SanitizeDocument parses a raw block list, sanitizes each block, and
// validates the result. A malformed block records one positional error and is
// dropped; remaining blocks still process. Whole-document checks (non-empty,
// total length ceiling) run after per-block sanitization. An empty error list
// means the document is valid.
func SanitizeDocument(raw json.RawMessage) (domain.Document, []string) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, []string{"invalid comment format"}
	}

	var doc domain.Document
	var errs []string

	for i, element := range elements {
		var block rawBlock
		if err := json.Unmarshal(element, &block); err != nil {
			errs = append(errs, fmt.Sprintf("block %d is not an object", i))
			continue
		}

		switch block.Type {
		case string(domain.BlockRichText):
			// Unmarshal into a string is a no-op on JSON null, so a null or
			// absent value needs an explicit check.
			var html string
			if isNull(block.Value) || json.Unmarshal(block.Value, &html) != nil {
				errs = append(errs, fmt.Sprintf("block %d rich_text value must be a string", i))
				continue
			}
			doc = append(doc, domain.ContentBlock{
				Type: domain.BlockRichText,
				HTML: SanitizeHTML(html),
			})

		case string(domain.BlockCode):
			code, err := parseCodeValue(block.Value, i)
			if err != "" {
				errs = append(errs, err)
				continue
			}
			doc = append(doc, domain.ContentBlock{Type: domain.BlockCode, Code: code})

		default:
			errs = append(errs, fmt.Sprintf("block %d has unknown type: %s", i, block.Type))
		}
	}

	// Document-level validation runs over the sanitized whole, not per block.
	totalLength := TextLength(doc)
	if totalLength == 0 {
		errs = append(errs, "comment cannot be empty")
	} else if totalLength > MaxCommentLength {
		errs = append(errs, fmt.Sprintf("comment exceeds maximum length of %d characters", MaxCommentLength))
	}

	return doc, errs
}

// parseCodeValue validates a code block payload: an object carrying the code
// in a "content" or "code" string field (non-empty "content" wins) plus an
// optional "language". Returns an error message instead of an error value so
// callers collect positional strings.
func parseCodeValue(value json.RawMessage, position int) (domain.CodeValue, string) {
	var payload struct {
		Content  json.RawMessage `json:"content"`
		Code     json.RawMessage `json:"code"`
		Language json.RawMessage `json:"language"`
	}
	if isNull(value) || json.Unmarshal(value, &payload) != nil {
		return domain.CodeValue{}, fmt.Sprintf("block %d code value must be an object", position)
	}

	chosen := payload.Content
	var content string
	if chosen != nil {
		if err := json.Unmarshal(chosen, &content); err != nil {
			return domain.CodeValue{}, fmt.Sprintf("block %d code content must be a string", position)
		}
	}
	if content == "" && payload.Code != nil {
		if err := json.Unmarshal(payload.Code, &content); err != nil {
			return domain.CodeValue{}, fmt.Sprintf("block %d code content must be a string", position)
		}
	}

	if utf8.RuneCountInString(content) > MaxCodeBlockLength {
		return domain.CodeValue{}, fmt.Sprintf("block %d code content exceeds %d characters", position, MaxCodeBlockLength)
	}

	// Non-string language degrades to empty rather than failing the block.
	var language string
	if payload.Language != nil {
		_ = json.Unmarshal(payload.Language, &language)
	}

	return domain.CodeValue{Code: content, Language: language}, ""
}
