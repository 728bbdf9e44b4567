// Package naver renders a canonical blog document as publish-ready HTML
// for the Naver editor, with every style emitted as explicit inline CSS.
package naver

import (
	"fmt"
	"html"
	"strings"

	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

// Fixed subtitle treatment. border-bottom is deliberately absent: the Naver
// editor draws its own divider under headings.
const subtitleCSS = "font-weight: bold; font-size: 20px; color: #333333; margin-top: 0; margin-bottom: 15px; background-color: transparent; display: block;"

// Render produces the HTML body for a document. Image placeholders are
// reconciled against the document's generated images in sequence order;
// unresolved placeholders render as plain paragraphs.
func Render(doc *blog.Document, imageURL func(path string) string) string {
	var b strings.Builder

	if doc.Title.Content != "" {
		fmt.Fprintf(&b, "<h1 %s>%s</h1>\n", styleAttr(doc.Title.Style, false), html.EscapeString(doc.Title.Content))
	}
	if doc.Introduction != nil && doc.Introduction.Content != "" {
		writeParagraph(&b, doc.Introduction.Content, doc.Introduction.Style)
	}

	imageCounter := 1
	for _, section := range doc.Body {
		if section.Subtitle != nil && section.Subtitle.Content != "" {
			fmt.Fprintf(&b, "<h2 %s>%s</h2>\n", styleAttr(section.Subtitle.Style, true), html.EscapeString(section.Subtitle.Content))
		}
		for _, block := range section.Blocks {
			writeBlock(&b, block, doc.GeneratedImages, imageURL, &imageCounter)
		}
	}

	if doc.Conclusion != nil && doc.Conclusion.Content != "" {
		writeParagraph(&b, doc.Conclusion.Content, doc.Conclusion.Style)
	}

	if len(doc.FAQ) > 0 {
		fmt.Fprintf(&b, "<h2 %s>자주 묻는 질문</h2>\n", styleAttr(&blog.Style{Bold: true}, true))
		for _, entry := range doc.FAQ {
			if entry.Q != nil && entry.Q.Content != "" {
				fmt.Fprintf(&b, "<p %s><strong>Q: %s</strong></p>\n", styleAttr(entry.Q.Style, false), html.EscapeString(entry.Q.Content))
			}
			if entry.A != nil && entry.A.Content != "" {
				fmt.Fprintf(&b, "<p %s>A: %s</p>\n", styleAttr(entry.A.Style, false), html.EscapeString(entry.A.Content))
			}
		}
	}

	for _, link := range doc.ExternalLinks {
		if strings.TrimSpace(link) == "" {
			continue
		}
		escaped := html.EscapeString(link)
		fmt.Fprintf(&b, "<p><a href=\"%s\" style=\"color: #0066cc;\">%s</a></p>\n", escaped, escaped)
	}

	return b.String()
}

func writeBlock(b *strings.Builder, block blog.Block, images []blog.GeneratedImage, imageURL func(string) string, imageCounter *int) {
	switch block.Type {
	case blog.BlockTypeParagraph:
		writeParagraph(b, block.Content, block.Style)

	case blog.BlockTypeQuote:
		style := block.Style.Clone()
		if style == nil {
			style = &blog.Style{}
		}
		style.Quote = true
		fmt.Fprintf(b, "<blockquote %s>%s</blockquote>\n", styleAttr(style, false), html.EscapeString(block.Content))

	case blog.BlockTypeList:
		tag := "ul"
		if block.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(b, "<%s %s>\n", tag, styleAttr(block.Style, false))
		for _, item := range block.Items {
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
		}
		fmt.Fprintf(b, "</%s>\n", tag)

	case blog.BlockTypeImagePlaceholder:
		writeImage(b, block, images, imageURL, *imageCounter)
		*imageCounter++

	case blog.BlockTypeRule:
		b.WriteString("<hr>\n")
	}
}

func writeParagraph(b *strings.Builder, content string, style *blog.Style) {
	if content == "" {
		return
	}
	attr := styleAttr(style, false)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(b, "<p %s>%s</p>\n", attr, html.EscapeString(line))
	}
}

func writeImage(b *strings.Builder, block blog.Block, images []blog.GeneratedImage, imageURL func(string) string, index int) {
	img, ok := imagemeta.Resolve(index, block.Placeholder, images)
	if !ok || img.ImagePath == "" {
		writeParagraph(b, blog.NormalizePlaceholder(block.Placeholder), block.Style)
		return
	}
	src := img.ImagePath
	if imageURL != nil {
		src = imageURL(img.ImagePath)
	}
	caption := img.Caption
	if caption == "" {
		caption = blog.NormalizePlaceholder(block.Placeholder)
	}
	fmt.Fprintf(b, "<figure style=\"margin: 20px 0;\"><img src=\"%s\" alt=\"%s\" style=\"max-width: 100%%;\">", html.EscapeString(src), html.EscapeString(caption))
	fmt.Fprintf(b, "<figcaption style=\"color: #888888; font-size: 13px;\">%s</figcaption></figure>\n", html.EscapeString(caption))
}

// styleAttr resolves a style to an inline style attribute. Subtitles get
// the fixed strong treatment plus any explicit font size or background.
// Color and background are always written out explicitly.
func styleAttr(style *blog.Style, isSubtitle bool) string {
	r := style.Resolve()
	var css strings.Builder

	if isSubtitle {
		css.WriteString(subtitleCSS + " ")
		if style != nil && style.FontSize > 0 {
			fmt.Fprintf(&css, "font-size: %dpx; ", style.FontSize)
		}
		if style != nil && style.Background != "" {
			fmt.Fprintf(&css, "background-color: %s; ", style.Background)
		}
	} else {
		fmt.Fprintf(&css, "font-size: %dpx; ", r.FontSize)
		fmt.Fprintf(&css, "color: %s; ", r.Color)
		fmt.Fprintf(&css, "background-color: %s; ", r.Background)
		if r.Bold {
			css.WriteString("font-weight: bold; ")
		}
		if r.Margin != "" {
			fmt.Fprintf(&css, "margin: %s; ", r.Margin)
		}
	}
	if r.Italic {
		css.WriteString("font-style: italic; ")
	}
	if r.Underline {
		css.WriteString("text-decoration: underline; ")
	}
	if r.LineHeight != "" {
		fmt.Fprintf(&css, "line-height: %s; ", r.LineHeight)
	}
	if r.Padding != "" {
		fmt.Fprintf(&css, "padding: %s; ", r.Padding)
	}
	if r.BorderLeft != "" {
		fmt.Fprintf(&css, "border-left: %s; ", r.BorderLeft)
	}

	return fmt.Sprintf("style=%q", strings.TrimSpace(css.String()))
}
