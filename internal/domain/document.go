package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type BlockType string

const (
	BlockRichText BlockType = "rich_text"
	BlockCode     BlockType = "code"
)

type CodeValue struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// ContentBlock is a closed tagged union. Type selects which payload field is
// meaningful: HTML for rich_text blocks, Code for code blocks. Loose inbound
// records are parsed and validated by the content package; a ContentBlock is
// always well-formed.
type ContentBlock struct {
	Type BlockType
	HTML string
	Code CodeValue
}

// Document is an ordered sequence of content blocks forming one comment or
// post body.
type Document []ContentBlock

type wireBlock struct {
	Type  BlockType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	var value any
	switch b.Type {
	case BlockRichText:
		value = b.HTML
	case BlockCode:
		value = b.Code
	default:
		return nil, fmt.Errorf("unknown block type: %s", b.Type)
	}
	return json.Marshal(struct {
		Type  BlockType `json:"type"`
		Value any       `json:"value"`
	}{b.Type, value})
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case BlockRichText:
		var html string
		if err := json.Unmarshal(w.Value, &html); err != nil {
			return fmt.Errorf("rich_text value: %w", err)
		}
		*b = ContentBlock{Type: BlockRichText, HTML: html}
	case BlockCode:
		var code CodeValue
		if err := json.Unmarshal(w.Value, &code); err != nil {
			return fmt.Errorf("code value: %w", err)
		}
		*b = ContentBlock{Type: BlockCode, Code: code}
	default:
		return fmt.Errorf("unknown block type: %s", w.Type)
	}
	return nil
}

// Value implements driver.Valuer so a Document can be stored in a jsonb column.
func (d Document) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading a Document back from jsonb.
func (d *Document) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}
}
