// Package delta models the rich-text editor's internal representation: an
// ordered stream of insert operations, each optionally carrying character
// attributes. A newline insert carries the block-level attributes of the
// line it terminates (header level, list type), not character formatting.
package delta

import "strings"

// Op is a single insert operation. Insert is either a string of text or a
// map with an "image" key holding the image source (the Quill embed shape).
type Op struct {
	Insert     any            `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Delta is an ordered operation stream.
type Delta struct {
	Ops []Op `json:"ops"`
}

// Text builds a plain text insert.
func Text(s string) Op {
	return Op{Insert: s}
}

// StyledText builds a text insert with attributes. Empty attribute maps are
// dropped so marshaled output matches what editors emit.
func StyledText(s string, attrs map[string]any) Op {
	if len(attrs) == 0 {
		return Op{Insert: s}
	}
	return Op{Insert: s, Attributes: attrs}
}

// Image builds an image embed insert.
func Image(src string, attrs map[string]any) Op {
	op := Op{Insert: map[string]any{"image": src}}
	if len(attrs) > 0 {
		op.Attributes = attrs
	}
	return op
}

// Text returns the op's text and true when it is a text insert.
func (o Op) Text() (string, bool) {
	s, ok := o.Insert.(string)
	return s, ok
}

// ImageSrc returns the image source and true when the op is an image embed.
func (o Op) ImageSrc() (string, bool) {
	m, ok := o.Insert.(map[string]any)
	if !ok {
		return "", false
	}
	src, ok := m["image"].(string)
	return src, ok
}

// IsEmpty reports whether the delta carries no visible content: no image
// embeds and no non-whitespace text.
func (d Delta) IsEmpty() bool {
	for _, op := range d.Ops {
		if _, ok := op.ImageSrc(); ok {
			return false
		}
		if s, ok := op.Text(); ok && strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// PlainText concatenates every text insert of the stream. Used for tag
// parsing and draft search indexing.
func (d Delta) PlainText() string {
	var b strings.Builder
	for _, op := range d.Ops {
		if s, ok := op.Text(); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// ImageSources returns the src of every image embed in stream order.
func (d Delta) ImageSources() []string {
	var out []string
	for _, op := range d.Ops {
		if src, ok := op.ImageSrc(); ok {
			out = append(out, src)
		}
	}
	return out
}
