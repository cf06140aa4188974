// Package bibtex parses the plain-text bibliography export. It implements
// only the subset of the format needed to extract entry keys, field values,
// and the reference manager's semicolon-delimited "file" field encoding;
// it is not a full BibTeX grammar.
package bibtex

import (
	"regexp"
	"strings"

	"github.com/TomBener/devonthink-mcp/internal/attachment"
)

// Entry is one parsed bibliography entry. Field values are unparsed beyond
// delimiter resolution: braces and quotes are stripped, but escape
// sequences inside values are kept verbatim.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string // lowercase field name -> raw value
	Names  []string          // field names in parse order
	Raw    string
}

// headerPattern matches the entry header: @type{key,
var headerPattern = regexp.MustCompile(`^@(\w+)\s*\{\s*([^,]+),`)

// SplitEntries splits export content into individual raw entries. Each
// entry runs from an @ marker through the brace that closes the brace
// opened after it. Trailing content with unbalanced braces is discarded.
func SplitEntries(content string) []string {
	var entries []string
	for i := 0; i < len(content); {
		at := strings.IndexByte(content[i:], '@')
		if at < 0 {
			break
		}
		at += i
		open := strings.IndexByte(content[at:], '{')
		if open < 0 {
			break
		}
		open += at

		depth := 0
		end := -1
		for j := open; j < len(content); j++ {
			switch content[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				end = j
				break
			}
		}
		if end < 0 {
			break
		}
		entries = append(entries, content[at:end+1])
		i = end + 1
	}
	return entries
}

// ParseEntry parses one raw entry. It returns false when the header does
// not match @type{key, form.
func ParseEntry(raw string) (Entry, bool) {
	m := headerPattern.FindStringSubmatch(raw)
	if m == nil {
		return Entry{}, false
	}

	e := Entry{
		Type:   m[1],
		Key:    strings.TrimSpace(m[2]),
		Fields: make(map[string]string),
		Raw:    raw,
	}

	body := ""
	if end := strings.LastIndexByte(raw, '}'); end > len(m[0]) {
		body = raw[len(m[0]):end]
	}

	c := &cursor{src: body}
	for !c.done() {
		c.skip(" \t\r\n,")
		if c.done() {
			break
		}
		name := c.takeName()
		if name == "" {
			c.pos++ // not a field name, skip one character and retry
			continue
		}
		c.skip(" \t\r\n")
		if !c.accept('=') {
			c.pos++ // stray token without a value, resync
			continue
		}
		c.skip(" \t\r\n")
		value := c.takeValue()

		key := strings.ToLower(name)
		if _, dup := e.Fields[key]; !dup {
			e.Names = append(e.Names, key)
		}
		e.Fields[key] = value // later duplicates overwrite
	}

	return e, true
}

// cursor is an explicit position index over the entry body. All scanning
// goes through it so brace and quote handling stays auditable.
type cursor struct {
	src string
	pos int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) skip(set string) {
	for !c.done() && strings.IndexByte(set, c.src[c.pos]) >= 0 {
		c.pos++
	}
}

func (c *cursor) accept(b byte) bool {
	if !c.done() && c.src[c.pos] == b {
		c.pos++
		return true
	}
	return false
}

// takeName reads a field name: letters, digits, underscore, hyphen.
func (c *cursor) takeName() string {
	start := c.pos
	for !c.done() {
		b := c.src[c.pos]
		if b == '_' || b == '-' ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') {
			c.pos++
			continue
		}
		break
	}
	return c.src[start:c.pos]
}

// takeValue reads a field value: brace-balanced content with the outermost
// pair stripped, a quoted string ending at an unescaped quote, or a bare
// token up to the next comma or newline.
func (c *cursor) takeValue() string {
	if c.done() {
		return ""
	}
	switch c.src[c.pos] {
	case '{':
		start := c.pos
		depth := 0
		for !c.done() {
			switch c.src[c.pos] {
			case '{':
				depth++
			case '}':
				depth--
			}
			c.pos++
			if depth == 0 {
				break
			}
		}
		inner := c.src[start:c.pos]
		inner = strings.TrimPrefix(inner, "{")
		inner = strings.TrimSuffix(inner, "}")
		return strings.TrimSpace(inner)
	case '"':
		c.pos++
		start := c.pos
		for !c.done() {
			if c.src[c.pos] == '"' && (c.pos == start || c.src[c.pos-1] != '\\') {
				break
			}
			c.pos++
		}
		value := c.src[start:c.pos]
		if !c.done() {
			c.pos++ // closing quote
		}
		return value
	default:
		start := c.pos
		for !c.done() && c.src[c.pos] != ',' && c.src[c.pos] != '\n' {
			c.pos++
		}
		return strings.TrimSpace(c.src[start:c.pos])
	}
}

// ParseFileField decodes the reference manager's "file" field: a
// semicolon-separated list of descriptor:path:descriptor triples (the
// outer segments carry a mime type and a label). Segments that do not
// split into exactly three parts are skipped, so paths containing extra
// colons yield nothing.
func ParseFileField(value string) []string {
	var paths []string
	for _, segment := range strings.Split(value, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parts := strings.Split(segment, ":")
		if len(parts) != 3 {
			continue
		}
		if p, ok := attachment.Normalize(parts[1]); ok {
			paths = append(paths, p)
		}
	}
	return paths
}
