package blog

import (
	"encoding/json"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	var s *Style
	r := s.Resolve()
	if r.FontSize != DefaultFontSize {
		t.Errorf("font size = %d, want %d", r.FontSize, DefaultFontSize)
	}
	if r.Color != DefaultColor {
		t.Errorf("color = %q, want %q", r.Color, DefaultColor)
	}
	if r.Background != DefaultBackground {
		t.Errorf("background = %q, want %q", r.Background, DefaultBackground)
	}
}

func TestResolveExplicitWins(t *testing.T) {
	s := &Style{FontSize: 24, Color: "#ff0000"}
	r := s.Resolve()
	if r.FontSize != 24 || r.Color != "#ff0000" {
		t.Errorf("resolved = %+v", r)
	}
	if r.Background != DefaultBackground {
		t.Errorf("background = %q", r.Background)
	}
}

func TestResolveQuoteImpliesTreatment(t *testing.T) {
	r := (&Style{Quote: true}).Resolve()
	if r.BorderLeft != QuoteBorderLeft {
		t.Errorf("border = %q", r.BorderLeft)
	}
	if r.Background != QuoteBackground {
		t.Errorf("background = %q", r.Background)
	}
	if r.Padding != QuotePadding || r.Margin != QuoteMargin {
		t.Errorf("padding = %q, margin = %q", r.Padding, r.Margin)
	}

	// Explicit fields are not overridden by the quote treatment.
	r = (&Style{Quote: true, Background: "#ffffff", BorderLeft: "none"}).Resolve()
	if r.Background != "#ffffff" || r.BorderLeft != "none" {
		t.Errorf("explicit fields overridden: %+v", r)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := &Style{FontSize: 20, Bold: true}
	c := orig.Clone()
	c.FontSize = 11
	if orig.FontSize != 20 {
		t.Error("clone mutated original")
	}
	var nilStyle *Style
	if nilStyle.Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestNormalizePlaceholder(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", DefaultPlaceholder},
		{"[이미지 삽입]", "[이미지 삽입]"},
		{"[사진 설명_이미지 삽입3]", "[사진 설명]"},
		{"[사진 설명_이미지 삽입]", "[사진 설명]"},
		{"[아무 설명]", "[아무 설명]"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		got := NormalizePlaceholder(tc.in)
		if got != tc.want {
			t.Errorf("NormalizePlaceholder(%q) = %q, want %q", tc.in, got, tc.want)
		}
		// Idempotent.
		if again := NormalizePlaceholder(got); again != got {
			t.Errorf("not idempotent: %q -> %q", got, again)
		}
	}
}

func TestLenientSectionDecoding(t *testing.T) {
	raw := `{
		"title": {"content": "T"},
		"body": [
			{"subtitle": {"content": "ok"}, "blocks": []},
			"not a section",
			{"subtitle": {"content": "also ok"}, "blocks": [
				{"type": "paragraph", "content": "p"},
				42,
				{"type": "list", "items": ["a"], "ordered": true}
			]}
		]
	}`
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("sections = %d, want 2 (malformed skipped)", len(doc.Body))
	}
	if len(doc.Body[1].Blocks) != 2 {
		t.Errorf("blocks = %d, want 2 (malformed skipped)", len(doc.Body[1].Blocks))
	}
}

func TestBlockTypeWireValues(t *testing.T) {
	var blocks BlockList
	raw := `[
		{"type": "paragraph", "content": "p"},
		{"type": "quote", "content": "q"},
		{"type": "list", "items": ["a"]},
		{"type": "image_placeholder", "placeholder": "[x]"},
		{"type": "hr"}
	]`
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		t.Fatal(err)
	}
	want := []string{BlockTypeParagraph, BlockTypeQuote, BlockTypeList, BlockTypeImagePlaceholder, BlockTypeRule}
	if len(blocks) != len(want) {
		t.Fatalf("blocks = %d, want %d", len(blocks), len(want))
	}
	for i, b := range blocks {
		if b.Type != want[i] {
			t.Errorf("blocks[%d].Type = %q, want %q", i, b.Type, want[i])
		}
	}
}

func TestTextAcceptsBareString(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"title": "bare", "body": []}`), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Title.Content != "bare" {
		t.Errorf("title = %q", doc.Title.Content)
	}
}

func TestImagePlaceholders(t *testing.T) {
	doc := Document{
		Body: SectionList{
			{Blocks: BlockList{
				{Type: BlockTypeParagraph, Content: "p"},
				{Type: BlockTypeImagePlaceholder, Placeholder: "[a]", Index: 1},
			}},
			{Blocks: BlockList{
				{Type: BlockTypeImagePlaceholder, Placeholder: "[b]", Index: 2},
			}},
		},
	}
	ps := doc.ImagePlaceholders()
	if len(ps) != 2 || ps[0].Placeholder != "[a]" || ps[1].Placeholder != "[b]" {
		t.Errorf("placeholders = %+v", ps)
	}
	// Returned pointers alias the document.
	ps[0].Index = 9
	if doc.Body[0].Blocks[1].Index != 9 {
		t.Error("placeholders should alias document blocks")
	}
}
