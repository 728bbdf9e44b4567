// Package blog defines the canonical structured representation of a
// generated blog post: an ordered body of sections, each holding typed
// content blocks, plus title, tags, and generated-image metadata.
package blog

import "encoding/json"

// Block type discriminators.
const (
	BlockTypeParagraph        = "paragraph"
	BlockTypeQuote            = "quote"
	BlockTypeList             = "list"
	BlockTypeImagePlaceholder = "image_placeholder"
	BlockTypeRule             = "hr"
)

// Text is a styled text fragment (title, subtitle, introduction, ...).
type Text struct {
	Content string `json:"content"`
	Style   *Style `json:"style,omitempty"`
}

// UnmarshalJSON accepts both the object form and a bare string, which the
// generation backend emits for unstyled fields like the title.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Content = s
		t.Style = nil
		return nil
	}
	type plain Text
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Text(p)
	return nil
}

// Block is one typed content unit within a section. Type selects which
// fields are meaningful: Content/Style for paragraph and quote, Items/
// Ordered/Style for list, Placeholder/Index for image_placeholder, Style
// for hr.
type Block struct {
	Type        string   `json:"type"`
	Content     string   `json:"content,omitempty"`
	Style       *Style   `json:"style,omitempty"`
	Items       []string `json:"items,omitempty"`
	Ordered     bool     `json:"ordered,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	ImagePrompt string   `json:"image_prompt,omitempty"`
	Index       int      `json:"index,omitempty"`
}

// Section is a body subdivision: an optional subtitle and ordered blocks.
// A section with empty subtitle content is purely structural and is never
// rendered as a visible heading.
type Section struct {
	Subtitle *Text     `json:"subtitle,omitempty"`
	Blocks   BlockList `json:"blocks"`
}

// FAQEntry is one question/answer pair.
type FAQEntry struct {
	Q *Text `json:"q,omitempty"`
	A *Text `json:"a,omitempty"`
}

// GeneratedImage describes one generated image available for placeholder
// reconciliation. Index is the 1-based document-order ordinal it targets.
type GeneratedImage struct {
	Index       int    `json:"index"`
	ImagePath   string `json:"image_path"`
	Placeholder string `json:"placeholder,omitempty"`
	Style       string `json:"style,omitempty"`
	IsThumbnail bool   `json:"is_thumbnail,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

// Document is the canonical blog post as produced by the generation
// backend and consumed by the export API.
type Document struct {
	Title           Text             `json:"title"`
	Introduction    *Text            `json:"introduction,omitempty"`
	Body            SectionList      `json:"body"`
	Conclusion      *Text            `json:"conclusion,omitempty"`
	FAQ             []FAQEntry       `json:"faq"`
	Tags            []string         `json:"tags"`
	GeneratedImages []GeneratedImage `json:"generated_images,omitempty"`
	ExternalLinks   []string         `json:"external_links,omitempty"`
}

// SectionList decodes leniently: a malformed body (not an array) yields an
// empty list, and malformed elements are skipped rather than failing the
// whole document.
type SectionList []Section

// UnmarshalJSON implements lenient decoding for SectionList.
func (l *SectionList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var s Section
		if err := json.Unmarshal(r, &s); err != nil {
			continue
		}
		*l = append(*l, s)
	}
	return nil
}

// BlockList decodes leniently, skipping malformed elements.
type BlockList []Block

// UnmarshalJSON implements lenient decoding for BlockList.
func (l *BlockList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var b Block
		if err := json.Unmarshal(r, &b); err != nil {
			continue
		}
		*l = append(*l, b)
	}
	return nil
}

// ImagePlaceholders returns every image placeholder block of the body in
// document order. Their Index values are assigned at creation time and form
// the sequence 1..k with no gaps.
func (d *Document) ImagePlaceholders() []*Block {
	var out []*Block
	for i := range d.Body {
		for j := range d.Body[i].Blocks {
			if d.Body[i].Blocks[j].Type == BlockTypeImagePlaceholder {
				out = append(out, &d.Body[i].Blocks[j])
			}
		}
	}
	return out
}
