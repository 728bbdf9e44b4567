package quill

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
)

// Font sizes offered by the target publishing editor, ascending. Arbitrary
// sizes are quantized to the nearest entry not smaller than the input.
var editorFontSizes = []int{11, 13, 15, 16, 19, 24, 28, 30, 34, 38}

var pxRe = regexp.MustCompile(`(\d+)px`)

// quillSize maps a font size in px to the editor's size attribute value.
func quillSize(fontSize int) string {
	chosen := editorFontSizes[len(editorFontSizes)-1]
	for _, s := range editorFontSizes {
		if fontSize <= s {
			chosen = s
			break
		}
	}
	return fmt.Sprintf("%dpx", chosen)
}

// fontSizeFromQuillSize parses a size attribute ("19px") back to px,
// accepting the legacy named sizes for old drafts.
func fontSizeFromQuillSize(v any) int {
	s, ok := v.(string)
	if !ok || s == "" {
		return blog.DefaultFontSize
	}
	if m := pxRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	switch s {
	case "small":
		return 13
	case "large":
		return 19
	case "huge":
		return 24
	}
	return blog.DefaultFontSize
}

// charAttrs converts a style descriptor to Quill character attributes.
func charAttrs(style *blog.Style) map[string]any {
	attrs := map[string]any{}
	if style == nil {
		return attrs
	}
	if style.FontSize > 0 {
		attrs["size"] = quillSize(style.FontSize)
	}
	if style.Color != "" {
		attrs["color"] = style.Color
	}
	if style.Background != "" {
		attrs["background"] = style.Background
	}
	if style.Bold {
		attrs["bold"] = true
	}
	if style.Italic {
		attrs["italic"] = true
	}
	if style.Underline {
		attrs["underline"] = true
	}
	if style.Quote {
		attrs["blockquote"] = true
	}
	return attrs
}

// textOps converts styled content to insert operations, one run per line
// with newline separators between lines. Blank lines contribute only their
// separator. Returns nil for empty content.
func textOps(content string, style *blog.Style) []delta.Op {
	if content == "" {
		return nil
	}
	attrs := charAttrs(style)
	var ops []delta.Op
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			ops = append(ops, delta.Text("\n"))
		}
		if strings.TrimSpace(line) != "" {
			ops = append(ops, delta.StyledText(line, attrs))
		}
	}
	return ops
}

// lineContent flattens a run of operations into plain text plus the style
// derived from the first non-blank text run. Mixed character styles within
// a line are not representable in the canonical model: the first run wins.
// Image embeds inside the run degrade to a text marker.
func lineContent(ops []delta.Op) (string, *blog.Style) {
	style := &blog.Style{FontSize: blog.DefaultFontSize}

	for _, op := range ops {
		s, ok := op.Text()
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		if attrs := op.Attributes; attrs != nil {
			if v, ok := attrs["size"]; ok {
				style.FontSize = fontSizeFromQuillSize(v)
			}
			if v, ok := attrs["color"].(string); ok {
				style.Color = v
			}
			if v, ok := attrs["background"].(string); ok {
				style.Background = v
			}
			if b, _ := attrs["bold"].(bool); b {
				style.Bold = true
			}
			if b, _ := attrs["italic"].(bool); b {
				style.Italic = true
			}
			if b, _ := attrs["underline"].(bool); b {
				style.Underline = true
			}
			if b, _ := attrs["blockquote"].(bool); b {
				style.Quote = true
			}
		}
		break
	}

	var b strings.Builder
	for _, op := range ops {
		if s, ok := op.Text(); ok {
			b.WriteString(s)
		} else if _, ok := op.ImageSrc(); ok {
			b.WriteString("[이미지]\n")
		}
	}
	return strings.TrimSpace(b.String()), style
}
