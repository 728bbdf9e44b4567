package quill

import (
	"strings"

	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

// FAQ section heading emitted before question/answer pairs.
const faqHeading = "자주 묻는 질문"

// EditorState is the live editor representation of a document: one stream
// per editor region plus the session's image side tables.
type EditorState struct {
	Title     delta.Delta        `json:"title"`
	Body      delta.Delta        `json:"body"`
	Tags      delta.Delta        `json:"tags"`
	ImageMeta *imagemeta.Session `json:"image_meta"`
}

// FromDocument converts a canonical document into editor operation streams.
// Image placeholders are reconciled against the document's generated images
// by a running 1-based counter over placeholder positions (sequence
// correspondence survives even when some placeholders stay unresolved);
// resolved image metadata is recorded in sess. A nil sess allocates one.
func (c *Converter) FromDocument(doc *blog.Document, sess *imagemeta.Session) EditorState {
	if sess == nil {
		sess = imagemeta.NewSession()
	}

	var title delta.Delta
	title.Ops = textOps(doc.Title.Content, doc.Title.Style)

	var body delta.Delta
	imageCounter := 1

	// Introduction flattens into the body before the first section.
	if doc.Introduction != nil && doc.Introduction.Content != "" {
		body.Ops = append(body.Ops, textOps(doc.Introduction.Content, doc.Introduction.Style)...)
		body.Ops = append(body.Ops, delta.Text("\n\n"))
	}

	for si, section := range doc.Body {
		if si > 0 {
			body.Ops = append(body.Ops, delta.Text("\n"))
		}
		c.appendSubtitle(&body, section.Subtitle)
		for _, block := range section.Blocks {
			c.appendBlock(&body, block, doc.GeneratedImages, sess, &imageCounter)
		}
	}

	if doc.Conclusion != nil && doc.Conclusion.Content != "" {
		body.Ops = append(body.Ops, delta.Text("\n"))
		body.Ops = append(body.Ops, textOps(doc.Conclusion.Content, doc.Conclusion.Style)...)
		body.Ops = append(body.Ops, delta.Text("\n\n"))
	}

	appendFAQ(&body, doc.FAQ)
	appendExternalLinks(&body, doc.ExternalLinks)

	var tags delta.Delta
	if len(doc.Tags) > 0 {
		tags.Ops = append(tags.Ops, delta.Text(strings.Join(doc.Tags, ", ")))
	}

	return EditorState{Title: title, Body: body, Tags: tags, ImageMeta: sess}
}

// appendSubtitle emits a section subtitle as a header-2 line. Subtitles are
// always forced bold regardless of the source style.
func (c *Converter) appendSubtitle(body *delta.Delta, subtitle *blog.Text) {
	if subtitle == nil || subtitle.Content == "" {
		return
	}
	attrs := map[string]any{"bold": true}
	if s := subtitle.Style; s != nil {
		if s.FontSize > 0 {
			attrs["size"] = quillSize(s.FontSize)
		}
		if s.Color != "" {
			attrs["color"] = s.Color
		}
		if s.Background != "" {
			attrs["background"] = s.Background
		}
	}
	body.Ops = append(body.Ops,
		delta.StyledText(subtitle.Content, attrs),
		delta.StyledText("\n", map[string]any{"header": 2}),
		delta.Text("\n"))
}

func (c *Converter) appendBlock(body *delta.Delta, block blog.Block, images []blog.GeneratedImage, sess *imagemeta.Session, imageCounter *int) {
	switch block.Type {
	case blog.BlockTypeParagraph:
		if ops := textOps(block.Content, block.Style); ops != nil {
			body.Ops = append(body.Ops, ops...)
			body.Ops = append(body.Ops, delta.Text("\n\n"))
		}

	case blog.BlockTypeQuote:
		ops := textOps(block.Content, block.Style)
		if ops == nil {
			return
		}
		for i := range ops {
			if _, ok := ops[i].Text(); !ok {
				continue
			}
			if ops[i].Attributes == nil {
				ops[i].Attributes = map[string]any{}
			}
			ops[i].Attributes["blockquote"] = true
		}
		body.Ops = append(body.Ops, ops...)
		body.Ops = append(body.Ops, delta.Text("\n\n"))

	case blog.BlockTypeList:
		orientation := "bullet"
		if block.Ordered {
			orientation = "ordered"
		}
		itemAttrs := charAttrs(block.Style)
		delete(itemAttrs, "blockquote")
		for _, item := range block.Items {
			body.Ops = append(body.Ops,
				delta.StyledText(item, itemAttrs),
				delta.StyledText("\n", map[string]any{"list": orientation}))
		}
		if len(block.Items) > 0 {
			body.Ops = append(body.Ops, delta.Text("\n"))
		}

	case blog.BlockTypeImagePlaceholder:
		c.appendImagePlaceholder(body, block, images, sess, imageCounter)

	case blog.BlockTypeRule:
		// No native horizontal rule in the operation stream; render a
		// plain-text sentinel row.
		body.Ops = append(body.Ops, delta.Text("\n"), delta.Text("---\n\n"))
	}
}

// appendImagePlaceholder resolves a placeholder against the generated
// images and emits either an image embed (populating the side tables) or
// the normalized placeholder text. The running counter advances either way
// so index correspondence is position-based, not content-based.
func (c *Converter) appendImagePlaceholder(body *delta.Delta, block blog.Block, images []blog.GeneratedImage, sess *imagemeta.Session, imageCounter *int) {
	defer func() { *imageCounter++ }()

	placeholder := block.Placeholder
	if placeholder == "" {
		placeholder = blog.DefaultPlaceholder
	}

	img, ok := imagemeta.Resolve(*imageCounter, block.Placeholder, images)
	if ok && img.ImagePath != "" {
		url := c.ImageURL(img.ImagePath)
		sess.Apply(url, img, placeholder)
		body.Ops = append(body.Ops, delta.Image(url, nil), delta.Text("\n\n"))
		return
	}

	normalized := blog.NormalizePlaceholder(placeholder)
	if ops := textOps(normalized, block.Style); ops != nil {
		body.Ops = append(body.Ops, ops...)
		body.Ops = append(body.Ops, delta.Text("\n\n"))
	}
}

func appendFAQ(body *delta.Delta, faq []blog.FAQEntry) {
	if len(faq) == 0 {
		return
	}
	body.Ops = append(body.Ops, delta.StyledText(faqHeading+"\n\n", map[string]any{"header": 2, "bold": true}))
	for _, entry := range faq {
		if entry.Q != nil && entry.Q.Content != "" {
			ops := textOps("Q: "+entry.Q.Content, entry.Q.Style)
			for i := range ops {
				if _, ok := ops[i].Text(); ok && ops[i].Attributes == nil {
					ops[i].Attributes = map[string]any{"bold": true}
				}
			}
			body.Ops = append(body.Ops, ops...)
			body.Ops = append(body.Ops, delta.Text("\n"))
		}
		if entry.A != nil && entry.A.Content != "" {
			body.Ops = append(body.Ops, textOps("A: "+entry.A.Content, entry.A.Style)...)
			body.Ops = append(body.Ops, delta.Text("\n\n"))
		}
	}
}

func appendExternalLinks(body *delta.Delta, links []string) {
	var present []string
	for _, l := range links {
		if strings.TrimSpace(l) != "" {
			present = append(present, l)
		}
	}
	if len(present) == 0 {
		return
	}
	body.Ops = append(body.Ops, delta.Text("\n\n"))
	for _, link := range present {
		body.Ops = append(body.Ops,
			delta.StyledText(link, map[string]any{"link": link, "color": "#0066cc"}),
			delta.Text("\n"))
	}
}
