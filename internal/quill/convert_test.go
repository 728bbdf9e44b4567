package quill

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmalab/blogforge/internal/apperr"
	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

func testConverter() *Converter {
	return NewConverter("http://localhost:8080")
}

func sampleDoc() *blog.Document {
	return &blog.Document{
		Title: blog.Text{Content: "Trip"},
		Body: blog.SectionList{
			{
				Subtitle: &blog.Text{Content: "Morning", Style: &blog.Style{FontSize: 20, Bold: true}},
				Blocks: blog.BlockList{
					{Type: blog.BlockTypeParagraph, Content: "Start early."},
					{Type: blog.BlockTypeList, Items: []string{"camera", "water"}},
					{Type: blog.BlockTypeQuote, Content: "Arrive before nine.", Style: &blog.Style{Quote: true}},
				},
			},
		},
		Tags: []string{"travel", "seoul"},
	}
}

func TestRoundTripPreservesSections(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()

	state := c.FromDocument(sampleDoc(), sess)
	doc, err := c.ToDocument(state.Title, state.Body, state.Tags.PlainText(), sess)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title.Content != "Trip" {
		t.Errorf("title = %q", doc.Title.Content)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc.Body))
	}
	sec := doc.Body[0]
	if sec.Subtitle.Content != "Morning" || !sec.Subtitle.Style.Bold {
		t.Errorf("subtitle = %+v", sec.Subtitle)
	}
	if len(sec.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3; got %+v", len(sec.Blocks), sec.Blocks)
	}
	if sec.Blocks[0].Type != blog.BlockTypeParagraph || sec.Blocks[0].Content != "Start early." {
		t.Errorf("paragraph = %+v", sec.Blocks[0])
	}
	if sec.Blocks[1].Type != blog.BlockTypeList || len(sec.Blocks[1].Items) != 2 {
		t.Errorf("list = %+v", sec.Blocks[1])
	}
	if sec.Blocks[2].Type != blog.BlockTypeQuote || !sec.Blocks[2].Style.Quote {
		t.Errorf("quote = %+v", sec.Blocks[2])
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "travel" {
		t.Errorf("tags = %v", doc.Tags)
	}
}

func TestImportResolvesImagesByIndexFirst(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()

	doc := &blog.Document{
		Title: blog.Text{Content: "T"},
		Body: blog.SectionList{
			{Blocks: blog.BlockList{
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[b_이미지 삽입2]"},
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[a_이미지 삽입1]"},
			}},
		},
		// Listed out of order and with misleading placeholders: position
		// (index) must win.
		GeneratedImages: []blog.GeneratedImage{
			{Index: 2, ImagePath: "second.png", Placeholder: "[b_이미지 삽입2]"},
			{Index: 1, ImagePath: "first.png", Placeholder: "[b_이미지 삽입2]"},
		},
	}

	state := c.FromDocument(doc, sess)
	srcs := state.Body.ImageSources()
	if len(srcs) != 2 {
		t.Fatalf("embeds = %d, want 2", len(srcs))
	}
	if !strings.HasSuffix(srcs[0], "first.png") || !strings.HasSuffix(srcs[1], "second.png") {
		t.Errorf("embed order = %v", srcs)
	}
}

func TestImportUnresolvedPlaceholderStaysText(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()

	doc := &blog.Document{
		Title: blog.Text{Content: "T"},
		Body: blog.SectionList{
			{Blocks: blog.BlockList{
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[경복궁_이미지 삽입1]"},
			}},
		},
	}
	state := c.FromDocument(doc, sess)
	if len(state.Body.ImageSources()) != 0 {
		t.Error("unresolved placeholder must not embed an image")
	}
	if !strings.Contains(state.Body.PlainText(), "[경복궁]") {
		t.Errorf("body = %q, want normalized placeholder text", state.Body.PlainText())
	}
}

func TestImportCounterAdvancesPastUnresolved(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()

	doc := &blog.Document{
		Title: blog.Text{Content: "T"},
		Body: blog.SectionList{
			{Blocks: blog.BlockList{
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[first]"},
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[second]"},
			}},
		},
		// Only the second slot has an image.
		GeneratedImages: []blog.GeneratedImage{
			{Index: 2, ImagePath: "two.png"},
		},
	}
	state := c.FromDocument(doc, sess)
	srcs := state.Body.ImageSources()
	if len(srcs) != 1 || !strings.HasSuffix(srcs[0], "two.png") {
		t.Errorf("embeds = %v, want only two.png", srcs)
	}
}

func TestImportPopulatesSession(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()

	doc := &blog.Document{
		Title: blog.Text{Content: "T"},
		Body: blog.SectionList{
			{Blocks: blog.BlockList{
				{Type: blog.BlockTypeImagePlaceholder, Placeholder: "[경복궁_이미지 삽입1]"},
			}},
		},
		GeneratedImages: []blog.GeneratedImage{
			{Index: 1, ImagePath: "a.png", Style: imagemeta.StyleAI, IsThumbnail: true},
		},
	}
	state := c.FromDocument(doc, sess)
	src := state.Body.ImageSources()[0]
	if sess.Style(src) != imagemeta.StyleAI || !sess.IsThumbnail(src) {
		t.Errorf("session not populated for %q", src)
	}
	if sess.Caption(src) != "[경복궁]" {
		t.Errorf("caption = %q, want normalized placeholder fallback", sess.Caption(src))
	}
}

func TestImportFAQAndLinks(t *testing.T) {
	c := testConverter()
	doc := &blog.Document{
		Title: blog.Text{Content: "T"},
		FAQ: []blog.FAQEntry{
			{Q: &blog.Text{Content: "언제 가나요?"}, A: &blog.Text{Content: "아침 일찍이요."}},
		},
		ExternalLinks: []string{"https://example.com/ref", "  "},
	}
	state := c.FromDocument(doc, nil)
	body := state.Body.PlainText()
	if !strings.Contains(body, "자주 묻는 질문") {
		t.Error("FAQ heading missing")
	}
	if !strings.Contains(body, "Q: 언제 가나요?") || !strings.Contains(body, "A: 아침 일찍이요.") {
		t.Errorf("FAQ entries missing: %q", body)
	}

	var linkOp *delta.Op
	for i := range state.Body.Ops {
		if state.Body.Ops[i].Attributes["link"] != nil {
			linkOp = &state.Body.Ops[i]
			break
		}
	}
	if linkOp == nil {
		t.Fatal("no link op emitted")
	}
	if linkOp.Attributes["color"] != "#0066cc" {
		t.Errorf("link attrs = %v", linkOp.Attributes)
	}
}

func TestImportIntroAndConclusionFlatten(t *testing.T) {
	c := testConverter()
	doc := &blog.Document{
		Title:        blog.Text{Content: "T"},
		Introduction: &blog.Text{Content: "Opening."},
		Body: blog.SectionList{
			{Subtitle: &blog.Text{Content: "S"}, Blocks: blog.BlockList{}},
		},
		Conclusion: &blog.Text{Content: "Closing."},
	}
	body := c.FromDocument(doc, nil).Body.PlainText()
	if !strings.HasPrefix(body, "Opening.") {
		t.Errorf("introduction should open the body: %q", body)
	}
	if !strings.Contains(body, "Closing.") {
		t.Errorf("conclusion missing: %q", body)
	}
}

func TestExportEmptyEditorNotReady(t *testing.T) {
	c := testConverter()
	_, err := c.ToDocument(delta.Delta{}, delta.Delta{}, "", imagemeta.NewSession())
	if !errors.Is(err, apperr.ErrEditorNotReady) {
		t.Errorf("err = %v, want ErrEditorNotReady", err)
	}

	// Whitespace-only streams are equally not ready.
	ws := delta.Delta{Ops: []delta.Op{delta.Text(" \n ")}}
	_, err = c.ToDocument(ws, delta.Delta{}, "", imagemeta.NewSession())
	if !errors.Is(err, apperr.ErrEditorNotReady) {
		t.Errorf("err = %v, want ErrEditorNotReady", err)
	}
}

func TestExportSyntheticSectionForLeadingContent(t *testing.T) {
	c := testConverter()
	body := delta.Delta{Ops: []delta.Op{delta.Text("orphan paragraph\n")}}
	doc, err := c.ToDocument(delta.Delta{Ops: []delta.Op{delta.Text("T\n")}}, body, "", imagemeta.NewSession())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("sections = %d", len(doc.Body))
	}
	sub := doc.Body[0].Subtitle
	if sub.Content != "" {
		t.Errorf("synthetic subtitle content = %q, want empty", sub.Content)
	}
	if sub.Style.FontSize != 20 || !sub.Style.Bold {
		t.Errorf("synthetic subtitle style = %+v", sub.Style)
	}
}

func TestExportListOrientationChangeSplitsRuns(t *testing.T) {
	c := testConverter()
	body := delta.Delta{Ops: []delta.Op{
		delta.Text("a"), delta.StyledText("\n", map[string]any{"list": "bullet"}),
		delta.Text("b"), delta.StyledText("\n", map[string]any{"list": "bullet"}),
		delta.Text("c"), delta.StyledText("\n", map[string]any{"list": "ordered"}),
	}}
	doc, err := c.ToDocument(delta.Delta{Ops: []delta.Op{delta.Text("T\n")}}, body, "", imagemeta.NewSession())
	if err != nil {
		t.Fatal(err)
	}
	blocks := doc.Body[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("blocks = %+v, want bullet run then ordered run", blocks)
	}
	if blocks[0].Ordered || len(blocks[0].Items) != 2 {
		t.Errorf("first run = %+v", blocks[0])
	}
	if !blocks[1].Ordered || len(blocks[1].Items) != 1 {
		t.Errorf("second run = %+v", blocks[1])
	}
}

func TestExportImagePlaceholderIndices(t *testing.T) {
	c := testConverter()
	sess := imagemeta.NewSession()
	sess.CaptionMap["http://x/a.png"] = "[경복궁]"

	body := delta.Delta{Ops: []delta.Op{
		delta.Image("http://x/a.png", nil), delta.Text("\n"),
		delta.Text("middle\n"),
		delta.Image("http://x/b.png", nil), delta.Text("\n"),
	}}
	doc, err := c.ToDocument(delta.Delta{Ops: []delta.Op{delta.Text("T\n")}}, body, "", sess)
	if err != nil {
		t.Fatal(err)
	}
	ps := doc.ImagePlaceholders()
	if len(ps) != 2 {
		t.Fatalf("placeholders = %d", len(ps))
	}
	if ps[0].Index != 1 || ps[1].Index != 2 {
		t.Errorf("indices = %d, %d; want 1, 2", ps[0].Index, ps[1].Index)
	}
	if ps[0].Placeholder != "[경복궁]" {
		t.Errorf("caption placeholder = %q", ps[0].Placeholder)
	}
	if ps[1].Placeholder != "[이미지 2]" {
		t.Errorf("default placeholder = %q", ps[1].Placeholder)
	}
}

func TestExportHeaderFloatAttr(t *testing.T) {
	// JSON-decoded streams carry header levels as float64.
	c := testConverter()
	body := delta.Delta{Ops: []delta.Op{
		delta.Text("Heading"), delta.StyledText("\n", map[string]any{"header": float64(2)}),
	}}
	doc, err := c.ToDocument(delta.Delta{Ops: []delta.Op{delta.Text("T\n")}}, body, "", imagemeta.NewSession())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Body) != 1 || doc.Body[0].Subtitle.Content != "Heading" {
		t.Errorf("body = %+v", doc.Body)
	}
}

func TestExportFirstRunStyleWins(t *testing.T) {
	c := testConverter()
	body := delta.Delta{Ops: []delta.Op{
		delta.StyledText("red", map[string]any{"color": "#ff0000", "size": "19px"}),
		delta.StyledText(" blue", map[string]any{"color": "#0000ff"}),
		delta.Text("\n"),
	}}
	doc, err := c.ToDocument(delta.Delta{Ops: []delta.Op{delta.Text("T\n")}}, body, "", imagemeta.NewSession())
	if err != nil {
		t.Fatal(err)
	}
	b := doc.Body[0].Blocks[0]
	if b.Content != "red blue" {
		t.Errorf("content = %q", b.Content)
	}
	if b.Style.Color != "#ff0000" || b.Style.FontSize != 19 {
		t.Errorf("style = %+v, want first run's", b.Style)
	}
}

func TestExportedImages(t *testing.T) {
	sess := imagemeta.NewSession()
	sess.StyleMap["a.png"] = imagemeta.StyleAI
	sess.ThumbnailMap["a.png"] = true
	sess.CaptionMap["a.png"] = "cap"

	body := delta.Delta{Ops: []delta.Op{
		delta.Image("a.png", nil),
		delta.Image("b.png", nil),
	}}
	images := ExportedImages(body, sess)
	if len(images) != 2 {
		t.Fatalf("images = %d", len(images))
	}
	if images[0].Index != 1 || images[0].Style != imagemeta.StyleAI || !images[0].IsThumbnail || images[0].Caption != "cap" {
		t.Errorf("first = %+v", images[0])
	}
	if images[1].Index != 2 || images[1].Style != "" {
		t.Errorf("second = %+v", images[1])
	}

	if got := ExportedImages(delta.Delta{}, sess); got == nil || len(got) != 0 {
		t.Errorf("no embeds should yield empty non-nil slice, got %#v", got)
	}
}
