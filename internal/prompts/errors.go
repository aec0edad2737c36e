package prompts

import "fmt"

// FormatError reports a document that does not match any supported prompt
// JSON shape, with enough context to locate the offending value.
type FormatError struct {
	Err      error
	Path     string
	Category string
	Reason   string
	Index    int // entry index within the category, -1 when not applicable
}

func (e *FormatError) Error() string {
	msg := "invalid prompt document"
	if e.Path != "" {
		msg = fmt.Sprintf("invalid prompt document %s", e.Path)
	}
	if e.Category != "" {
		msg += fmt.Sprintf(": category %q", e.Category)
		if e.Index >= 0 {
			msg += fmt.Sprintf(" entry %d", e.Index)
		}
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// AccessError reports an unreadable input path or an unwritable output path.
type AccessError struct {
	Err  error
	Path string
	Op   string // "read" or "write"
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
