package blog

import "regexp"

// DefaultPlaceholder is used when a placeholder label is missing entirely.
const DefaultPlaceholder = "[이미지 삽입]"

// The upstream generator bakes an auto-numbered insertion-slot suffix into
// placeholder labels, e.g. "[아임웹 디자인 편집 화면_이미지 삽입1]".
var placeholderSuffixRe = regexp.MustCompile(`_이미지 삽입\d*\]`)

// NormalizePlaceholder strips the trailing numeric insertion-slot annotation
// from a placeholder label, leaving the descriptive part intact:
// "[사진 설명_이미지 삽입3]" becomes "[사진 설명]". Idempotent.
func NormalizePlaceholder(placeholder string) string {
	if placeholder == "" {
		return DefaultPlaceholder
	}
	return placeholderSuffixRe.ReplaceAllString(placeholder, "]")
}
