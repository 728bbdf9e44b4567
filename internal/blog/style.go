package blog

// Default visual values applied when a style leaves a field unset.
// Emitting explicit colors at render time avoids the black-on-transparent
// artifacts some publishing editors produce when colors are inherited.
const (
	DefaultFontSize   = 16
	DefaultColor      = "#333333"
	DefaultBackground = "transparent"

	QuoteBorderLeft = "4px solid #cccccc"
	QuoteBackground = "#f5f5f5"
	QuotePadding    = "10px 15px"
	QuoteMargin     = "20px 0"
)

// Style is the attribute bag attached to any text-bearing node.
// The zero value means "no explicit styling"; defaults are applied by Resolve.
type Style struct {
	FontSize   int    `json:"font_size,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	LineHeight string `json:"line_height,omitempty"`
	Padding    string `json:"padding,omitempty"`
	Margin     string `json:"margin,omitempty"`
	BorderLeft string `json:"border_left,omitempty"`
	Quote      bool   `json:"quote,omitempty"`
}

// ResolvedStyle is a Style with every field populated for rendering.
type ResolvedStyle struct {
	FontSize   int
	Color      string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
	LineHeight string
	Padding    string
	Margin     string
	BorderLeft string
	Quote      bool
}

// Resolve fills absent style fields with their documented defaults.
// A quote style additionally implies a left border and shaded background
// unless the caller set those fields explicitly. Accepts nil.
func (s *Style) Resolve() ResolvedStyle {
	r := ResolvedStyle{
		FontSize:   DefaultFontSize,
		Color:      DefaultColor,
		Background: DefaultBackground,
	}
	if s == nil {
		return r
	}
	if s.FontSize > 0 {
		r.FontSize = s.FontSize
	}
	if s.Color != "" {
		r.Color = s.Color
	}
	if s.Background != "" {
		r.Background = s.Background
	}
	r.Bold = s.Bold
	r.Italic = s.Italic
	r.Underline = s.Underline
	r.LineHeight = s.LineHeight
	r.Padding = s.Padding
	r.Margin = s.Margin
	r.BorderLeft = s.BorderLeft
	r.Quote = s.Quote

	if s.Quote {
		if s.BorderLeft == "" {
			r.BorderLeft = QuoteBorderLeft
		}
		if s.Background == "" {
			r.Background = QuoteBackground
		}
		if s.Padding == "" {
			r.Padding = QuotePadding
		}
		if s.Margin == "" {
			r.Margin = QuoteMargin
		}
	}
	return r
}

// Clone returns a copy of the style, or nil for nil.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
