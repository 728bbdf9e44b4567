package mcpserver

// BlogContentContract describes the canonical blog content JSON format
// that LLM producers should follow when generating documents for import.
const BlogContentContract = `# Blogforge Blog Content Contract

Every blog content document imported into the editor MUST follow this
JSON structure.

## Structure

` + "```" + `json
{
  "title": "Post title",
  "introduction": {
    "content": "Opening paragraph text.",
    "style": {"font_size": 16, "color": "#333333"}
  },
  "body": [
    {
      "subtitle": {"content": "Section heading", "style": {"font_size": 20, "bold": true}},
      "blocks": [
        {"type": "paragraph", "content": "Paragraph text.", "style": {}},
        {"type": "quote", "content": "Quoted line.", "style": {"quote": true}},
        {"type": "list", "items": ["first", "second"], "ordered": false},
        {"type": "image_placeholder", "placeholder": "[이미지 삽입]", "image_prompt": "what to draw"}
      ]
    }
  ],
  "conclusion": {"content": "Closing paragraph."},
  "faq": [
    {"q": {"content": "Question?"}, "a": {"content": "Answer."}}
  ],
  "tags": ["tag-one", "tag-two"],
  "external_links": ["https://example.com/source"]
}
` + "```" + `

## Rules

1. **` + "`" + `title` + "`" + ` is required.** Plain text, no markup.
2. **Styled text** objects carry ` + "`" + `content` + "`" + ` plus an optional ` + "`" + `style` + "`" + ` with
   ` + "`" + `font_size` + "`" + ` (px), ` + "`" + `color` + "`" + `, ` + "`" + `background` + "`" + `, ` + "`" + `bold` + "`" + `, ` + "`" + `italic` + "`" + `,
   ` + "`" + `underline` + "`" + `, ` + "`" + `quote` + "`" + `. Omitted fields fall back to 16px / #333333 /
   transparent.
3. **Block types** are ` + "`" + `paragraph` + "`" + `, ` + "`" + `quote` + "`" + `, ` + "`" + `list` + "`" + `,
   ` + "`" + `image_placeholder` + "`" + `, and ` + "`" + `hr` + "`" + `. Unknown types are skipped on import.
4. **Lists** carry ` + "`" + `items` + "`" + ` (array of strings) and ` + "`" + `ordered` + "`" + ` (boolean,
   default false for bulleted).
5. **Image placeholders** use bracketed Korean marker text, canonical form
   ` + "`" + `[이미지 삽입]` + "`" + `. Generator suffixes like ` + "`" + `[왼쪽_이미지 삽입2]` + "`" + ` are
   normalized automatically; do not rely on them.
6. **Subtitles** render as level-2 headers and are always bold; an empty
   ` + "`" + `subtitle` + "`" + ` object is allowed for an untitled section.
7. **FAQ** entries pair ` + "`" + `q` + "`" + ` and ` + "`" + `a` + "`" + ` styled-text objects and render under
   a "자주 묻는 질문" heading.
8. **Tags** are plain strings without a leading #.
9. **Encoding** is UTF-8. Body text may be any language; field names are
   fixed English schema keys.

## Example

` + "```" + `json
{
  "title": "서울 당일치기 여행 코스",
  "introduction": {"content": "서울에서 하루를 알차게 보내는 방법을 소개합니다."},
  "body": [
    {
      "subtitle": {"content": "오전 일정", "style": {"font_size": 20, "bold": true}},
      "blocks": [
        {"type": "paragraph", "content": "경복궁에서 하루를 시작하세요."},
        {"type": "image_placeholder", "placeholder": "[이미지 삽입]", "image_prompt": "경복궁 전경"}
      ]
    }
  ],
  "conclusion": {"content": "다음 편에서는 야경 명소를 다룹니다."},
  "tags": ["서울여행", "당일치기"]
}
` + "```" + `
`
