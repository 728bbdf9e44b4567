package quill

import (
	"fmt"
	"strings"

	"github.com/dmalab/blogforge/internal/apperr"
	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

// Style of the synthetic subtitle attached to sections created when a block
// appears before any explicit header-2 line.
var syntheticSubtitleStyle = blog.Style{FontSize: 20, Bold: true}

// ToDocument folds the live editor streams back into a canonical document.
// The body stream is tokenized into lines, each line is classified by its
// block attributes (header-2 starts a section, list attributes extend a
// list run, blockquote makes a quote block, anything else a paragraph), and
// lines fold into sections in order. Introduction, conclusion, and FAQ are
// emitted empty: the editor model does not distinguish them from body
// sections, so they collapse into body on import and are not reconstructed.
//
// Returns apperr.ErrEditorNotReady when there is no live content to export.
func (c *Converter) ToDocument(title, body delta.Delta, tagsText string, sess *imagemeta.Session) (*blog.Document, error) {
	if title.IsEmpty() && body.IsEmpty() {
		return nil, apperr.ErrEditorNotReady
	}

	f := &folder{sess: sess, imageIndex: 1}
	for _, line := range delta.Lines(body) {
		f.fold(line)
	}
	f.flushList()

	titleContent, titleStyle := lineContent(title.Ops)

	return &blog.Document{
		Title:        blog.Text{Content: titleContent, Style: titleStyle},
		Introduction: &blog.Text{Content: "", Style: &blog.Style{}},
		Body:         f.body,
		Conclusion:   &blog.Text{Content: "", Style: &blog.Style{}},
		FAQ:          []blog.FAQEntry{},
		Tags:         SplitTags(tagsText),
	}, nil
}

// SplitTags parses a comma-separated tag string: entries are trimmed, empty
// entries dropped, order preserved, duplicates kept.
func SplitTags(tagsText string) []string {
	tags := []string{}
	for _, t := range strings.Split(tagsText, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// folder carries the section cursor and open list run while lines fold into
// blocks.
type folder struct {
	body       blog.SectionList
	section    *blog.Section
	list       *blog.Block
	sess       *imagemeta.Session
	imageIndex int
}

// ensureSection opens a synthetic section (invisible empty subtitle) when a
// block must be appended but no section is open.
func (f *folder) ensureSection() {
	if f.section != nil {
		return
	}
	f.body = append(f.body, blog.Section{
		Subtitle: &blog.Text{Content: "", Style: syntheticSubtitleStyle.Clone()},
		Blocks:   blog.BlockList{},
	})
	f.section = &f.body[len(f.body)-1]
}

// flushList closes the open list run, appending it to the current section.
func (f *folder) flushList() {
	if f.list != nil && f.section != nil {
		f.section.Blocks = append(f.section.Blocks, *f.list)
	}
	f.list = nil
}

func (f *folder) fold(line delta.Line) {
	if line.Kind == delta.LineImage {
		f.foldImage(line)
		return
	}
	if len(line.Ops) == 0 {
		return
	}

	content, style := lineContent(line.Ops)
	if content == "" {
		// Empty lines produce no block and do not flush an open list.
		return
	}

	header, _ := line.Attrs["header"].(int)
	if hf, ok := line.Attrs["header"].(float64); ok {
		header = int(hf)
	}
	listAttr, _ := line.Attrs["list"].(string)
	blockquote, _ := line.Attrs["blockquote"].(bool)

	switch {
	case header == 2:
		f.flushList()
		sub := style.Clone()
		sub.Bold = true
		f.body = append(f.body, blog.Section{
			Subtitle: &blog.Text{Content: content, Style: sub},
			Blocks:   blog.BlockList{},
		})
		f.section = &f.body[len(f.body)-1]

	case listAttr == "bullet" || listAttr == "ordered":
		f.ensureSection()
		ordered := listAttr == "ordered"
		// An orientation change closes the run and starts a new list.
		if f.list != nil && f.list.Ordered != ordered {
			f.flushList()
		}
		if f.list == nil {
			f.list = &blog.Block{
				Type:    blog.BlockTypeList,
				Style:   style,
				Ordered: ordered,
			}
		}
		f.list.Items = append(f.list.Items, content)

	default:
		f.flushList()
		f.ensureSection()
		// Quill puts blockquote on the line's newline; imported content
		// carries it on the character runs. Accept either.
		blockType := blog.BlockTypeParagraph
		if blockquote || style.Quote {
			blockType = blog.BlockTypeQuote
			style.Quote = true
		}
		f.section.Blocks = append(f.section.Blocks, blog.Block{
			Type:    blockType,
			Content: content,
			Style:   style,
		})
	}
}

// foldImage appends an image placeholder block for an embedded image line.
// The placeholder text is the session caption when one exists, else a
// generated numbered default.
func (f *folder) foldImage(line delta.Line) {
	f.flushList()
	f.ensureSection()

	placeholder := f.sess.Caption(line.Src)
	if placeholder == "" {
		placeholder = fmt.Sprintf("[이미지 %d]", f.imageIndex)
	}
	f.section.Blocks = append(f.section.Blocks, blog.Block{
		Type:        blog.BlockTypeImagePlaceholder,
		Placeholder: placeholder,
		ImagePrompt: "",
		Index:       f.imageIndex,
	})
	f.imageIndex++
}

// ExportedImage is one entry of the flat image list submitted alongside the
// exported document, derived from the live editor's embeds in order.
type ExportedImage struct {
	Index       int    `json:"index"`
	Src         string `json:"src"`
	Style       string `json:"style,omitempty"`
	IsThumbnail bool   `json:"is_thumbnail"`
	Caption     string `json:"caption"`
}

// ExportedImages walks the body stream's image embeds in document order and
// joins each with its session metadata.
func ExportedImages(body delta.Delta, sess *imagemeta.Session) []ExportedImage {
	images := []ExportedImage{}
	for i, src := range body.ImageSources() {
		images = append(images, ExportedImage{
			Index:       i + 1,
			Src:         src,
			Style:       sess.Style(src),
			IsThumbnail: sess.IsThumbnail(src),
			Caption:     sess.Caption(src),
		})
	}
	return images
}
