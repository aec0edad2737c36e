package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Load reads the JSON document at path and normalizes it into a Collection.
// Unreadable paths yield an *AccessError; anything that is not a supported
// prompt document shape yields a *FormatError.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AccessError{Path: path, Op: "read", Err: err}
	}
	c, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Parse normalizes an in-memory JSON document into a Collection.
func Parse(data []byte) (*Collection, error) {
	return parse("", data)
}

// parse dispatches on the top-level JSON value exactly once; every supported
// shape funnels into the same canonical Collection.
//
// Supported shapes:
//  1. object: category -> array of strings or entry objects
//  2. object: category -> object of sub-category -> array (flattened to "a.b")
//  3. array of entry objects, each carrying its own "category"
func parse(path string, data []byte) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, &FormatError{Path: path, Index: -1, Reason: "invalid JSON", Err: err}
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, &FormatError{
			Path:   path,
			Index:  -1,
			Reason: fmt.Sprintf("top-level value is %s, want object or array", tokenKind(tok)),
		}
	}

	c := NewCollection()
	switch delim {
	case '{':
		if err := parseCategoryMap(path, dec, c); err != nil {
			return nil, err
		}
	case '[':
		if err := parseEntryArray(path, dec, c); err != nil {
			return nil, err
		}
	}

	// Consume the closing delimiter, then require a clean end of input.
	if _, err := dec.Token(); err != nil {
		return nil, &FormatError{Path: path, Index: -1, Reason: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &FormatError{Path: path, Index: -1, Reason: "trailing data after top-level value"}
	}
	return c, nil
}

// parseCategoryMap walks the top-level object with the token decoder so that
// category order is taken from the document, not from a Go map.
func parseCategoryMap(path string, dec *json.Decoder, c *Collection) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return &FormatError{Path: path, Index: -1, Reason: "invalid JSON", Err: err}
		}
		category, ok := tok.(string)
		if !ok || category == "" {
			return &FormatError{Path: path, Index: -1, Reason: "empty category name"}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return &FormatError{Path: path, Category: category, Index: -1, Reason: "invalid JSON", Err: err}
		}

		switch firstByte(raw) {
		case '[':
			if err := addEntryList(path, category, raw, c); err != nil {
				return err
			}
		case '{':
			if err := parseSubMap(path, category, raw, c); err != nil {
				return err
			}
		default:
			return &FormatError{
				Path:     path,
				Category: category,
				Index:    -1,
				Reason:   "category value must be an array or a nested object",
			}
		}
	}
	return nil
}

// parseSubMap flattens one level of nesting: {"a": {"b": [...]}} becomes
// category "a.b". Deeper nesting is not a supported shape.
func parseSubMap(path, parent string, raw json.RawMessage, c *Collection) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace, already classified
		return &FormatError{Path: path, Category: parent, Index: -1, Reason: "invalid JSON", Err: err}
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return &FormatError{Path: path, Category: parent, Index: -1, Reason: "invalid JSON", Err: err}
		}
		sub, ok := tok.(string)
		if !ok || sub == "" {
			return &FormatError{Path: path, Category: parent, Index: -1, Reason: "empty category name"}
		}
		category := parent + "." + sub

		var inner json.RawMessage
		if err := dec.Decode(&inner); err != nil {
			return &FormatError{Path: path, Category: category, Index: -1, Reason: "invalid JSON", Err: err}
		}
		if firstByte(inner) != '[' {
			return &FormatError{
				Path:     path,
				Category: category,
				Index:    -1,
				Reason:   "nested category value must be an array",
			}
		}
		if err := addEntryList(path, category, inner, c); err != nil {
			return err
		}
	}
	return nil
}

// entryObject is the accepted wire form of one entry. Text and Prompt are
// pointers so a present-but-empty text can be told apart from a missing one.
type entryObject struct {
	Text     *string `json:"text"`
	Prompt   *string `json:"prompt"`
	Category string  `json:"category"`
	Source   string  `json:"source"`
}

func (o entryObject) text() (string, bool) {
	if o.Text != nil {
		return *o.Text, true
	}
	if o.Prompt != nil {
		return *o.Prompt, true
	}
	return "", false
}

// addEntryList appends one category's array of entries, each either a bare
// string or an entry object.
func addEntryList(path, category string, raw json.RawMessage, c *Collection) error {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return &FormatError{Path: path, Category: category, Index: -1, Reason: "invalid JSON", Err: err}
	}
	c.ensure(category)
	for i, item := range items {
		switch firstByte(item) {
		case '"':
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				return &FormatError{Path: path, Category: category, Index: i, Reason: "invalid JSON", Err: err}
			}
			c.add(category, Entry{Text: text})
		case '{':
			var obj entryObject
			if err := json.Unmarshal(item, &obj); err != nil {
				return &FormatError{Path: path, Category: category, Index: i, Reason: "invalid JSON", Err: err}
			}
			text, ok := obj.text()
			if !ok {
				return &FormatError{Path: path, Category: category, Index: i, Reason: "entry has no text"}
			}
			c.add(category, Entry{Text: text, Source: obj.Source})
		default:
			return &FormatError{
				Path:     path,
				Category: category,
				Index:    i,
				Reason:   "entry must be a string or an object",
			}
		}
	}
	return nil
}

// parseEntryArray handles the flat shape: a top-level array of entry objects,
// each naming its own category. Categories are registered in first-appearance
// order.
func parseEntryArray(path string, dec *json.Decoder, c *Collection) error {
	i := 0
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return &FormatError{Path: path, Index: i, Reason: "invalid JSON", Err: err}
		}
		if firstByte(raw) != '{' {
			return &FormatError{Path: path, Index: i, Reason: "array entry must be an object"}
		}
		var obj entryObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return &FormatError{Path: path, Index: i, Reason: "invalid JSON", Err: err}
		}
		if obj.Category == "" {
			return &FormatError{Path: path, Index: i, Reason: "array entry has no category"}
		}
		text, ok := obj.text()
		if !ok {
			return &FormatError{Path: path, Category: obj.Category, Index: i, Reason: "entry has no text"}
		}
		c.add(obj.Category, Entry{Text: text, Source: obj.Source})
		i++
	}
	return nil
}

// firstByte returns the first non-whitespace byte of raw, or 0.
func firstByte(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// tokenKind names a non-delimiter JSON token for error messages.
func tokenKind(tok json.Token) string {
	switch tok.(type) {
	case string:
		return "a string"
	case float64, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	}
	return "an unsupported value"
}
