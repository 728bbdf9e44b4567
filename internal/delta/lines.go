package delta

import "strings"

// LineKind discriminates tokenized lines.
type LineKind int

// Line kinds.
const (
	LineText LineKind = iota
	LineImage
)

// Line is one tokenized line of an operation stream. For a text line, Ops
// holds the character runs and Attrs the block-level attributes taken from
// the terminating newline. For an image line, Src holds the embed source.
type Line struct {
	Kind  LineKind
	Ops   []Op
	Attrs map[string]any
	Src   string
}

// Lines partitions an operation stream into lines. Text accumulates into
// the current line until a newline insert closes it; the newline's
// attributes become the line's block attributes. A text insert containing
// embedded newlines is split, each segment closing a line with that
// insert's attributes. An image embed first flushes any pending text as its
// own line, then becomes a line of its own; images never share a line
// with text.
func Lines(d Delta) []Line {
	var lines []Line
	var current []Op

	closeLine := func(attrs map[string]any) {
		if attrs == nil {
			attrs = map[string]any{}
		}
		lines = append(lines, Line{Kind: LineText, Ops: current, Attrs: attrs})
		current = nil
	}

	for _, op := range d.Ops {
		if s, ok := op.Text(); ok {
			switch {
			case s == "\n":
				closeLine(op.Attributes)
			case strings.Contains(s, "\n"):
				parts := strings.Split(s, "\n")
				for i, part := range parts {
					if part != "" {
						current = append(current, Op{Insert: part, Attributes: op.Attributes})
					}
					if i < len(parts)-1 {
						closeLine(op.Attributes)
					}
				}
			default:
				current = append(current, op)
			}
			continue
		}

		if src, ok := op.ImageSrc(); ok {
			if len(current) > 0 {
				closeLine(nil)
			}
			attrs := op.Attributes
			if attrs == nil {
				attrs = map[string]any{}
			}
			lines = append(lines, Line{Kind: LineImage, Src: src, Attrs: attrs})
		}
	}

	if len(current) > 0 {
		closeLine(nil)
	}
	return lines
}
