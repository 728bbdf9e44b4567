package delta

import "testing"

func TestLinesBasic(t *testing.T) {
	d := Delta{Ops: []Op{
		Text("hello"),
		StyledText("\n", map[string]any{"header": 2}),
		Text("world\n"),
	}}
	lines := Lines(d)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if h, _ := lines[0].Attrs["header"].(int); h != 2 {
		t.Errorf("first line header = %v", lines[0].Attrs["header"])
	}
	if s, _ := lines[1].Ops[0].Text(); s != "world" {
		t.Errorf("second line = %q", s)
	}
}

func TestLinesEmbeddedNewlines(t *testing.T) {
	d := Delta{Ops: []Op{Text("a\nb\nc")}}
	lines := Lines(d)
	// "a" and "b" close at their newlines; "c" is flushed at EOF.
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, want := range []string{"a", "b", "c"} {
		if s, _ := lines[i].Ops[0].Text(); s != want {
			t.Errorf("line %d = %q, want %q", i, s, want)
		}
	}
}

func TestLinesImageFlushesPendingText(t *testing.T) {
	d := Delta{Ops: []Op{
		Text("before"),
		Image("http://x/img.png", nil),
		Text("after\n"),
	}}
	lines := Lines(d)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0].Kind != LineText {
		t.Error("pending text should flush before the image")
	}
	if lines[1].Kind != LineImage || lines[1].Src != "http://x/img.png" {
		t.Errorf("image line = %+v", lines[1])
	}
	if lines[2].Kind != LineText {
		t.Errorf("trailing line = %+v", lines[2])
	}
}

func TestLinesEOFFlush(t *testing.T) {
	lines := Lines(Delta{Ops: []Op{Text("no trailing newline")}})
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
}

func TestLinesEmptyStream(t *testing.T) {
	if got := Lines(Delta{}); len(got) != 0 {
		t.Errorf("lines = %d, want 0", len(got))
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Delta{Ops: []Op{Text("  \n\t")}}).IsEmpty() {
		t.Error("whitespace-only stream should be empty")
	}
	if (Delta{Ops: []Op{Image("x.png", nil)}}).IsEmpty() {
		t.Error("image-only stream is not empty")
	}
	if (Delta{Ops: []Op{Text("x")}}).IsEmpty() {
		t.Error("text stream is not empty")
	}
}

func TestPlainTextAndImageSources(t *testing.T) {
	d := Delta{Ops: []Op{
		Text("a"),
		Image("one.png", nil),
		Text("b"),
		Image("two.png", nil),
	}}
	if d.PlainText() != "ab" {
		t.Errorf("plain text = %q", d.PlainText())
	}
	srcs := d.ImageSources()
	if len(srcs) != 2 || srcs[0] != "one.png" || srcs[1] != "two.png" {
		t.Errorf("sources = %v", srcs)
	}
}
