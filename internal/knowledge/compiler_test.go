package knowledge

import (
	"strings"
	"testing"

	"github.com/treebornwood/voicedeskk/internal/model"
)

func TestCompileEmpty(t *testing.T) {
	t.Parallel()

	if got := Compile(nil); got != "" {
		t.Errorf("Compile(nil) = %q, want empty string", got)
	}
	if got := Compile([]model.ContentItem{}); got != "" {
		t.Errorf("Compile(empty) = %q, want empty string", got)
	}
}

func TestCompileSingleItem(t *testing.T) {
	t.Parallel()

	items := []model.ContentItem{
		{OriginalFilename: "faq.txt", ExtractedText: "Q: 营业时间?\nA: 9-5"},
	}

	want := "=== faq.txt ===\nQ: 营业时间?\nA: 9-5"
	if got := Compile(items); got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompileOrderAndSeparator(t *testing.T) {
	t.Parallel()

	items := []model.ContentItem{
		{OriginalFilename: "hours.txt", ExtractedText: "Hours: 9-5"},
		{OriginalFilename: "services.txt", ExtractedText: "Services: Haircut $20"},
	}

	got := Compile(items)
	want := "=== hours.txt ===\nHours: 9-5\n\n=== services.txt ===\nServices: Haircut $20"
	if got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}

	// hours 段必须出现在 services 段之前
	if strings.Index(got, "hours.txt") > strings.Index(got, "services.txt") {
		t.Error("sections out of input order")
	}
}

func TestCompileHeaderCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
	}{
		{name: "one item", count: 1},
		{name: "three items", count: 3},
		{name: "ten items", count: 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items := make([]model.ContentItem, test.count)
			for i := range items {
				items[i] = model.ContentItem{
					OriginalFilename: "doc.txt",
					ExtractedText:    "body",
				}
			}

			got := Compile(items)
			if n := strings.Count(got, "=== doc.txt ==="); n != test.count {
				t.Errorf("header count = %d, want %d", n, test.count)
			}
		})
	}
}

func TestCompileEmptyTextIsNotAnError(t *testing.T) {
	t.Parallel()

	items := []model.ContentItem{
		{OriginalFilename: "empty.txt", ExtractedText: ""},
		{OriginalFilename: "full.txt", ExtractedText: "content"},
	}

	want := "=== empty.txt ===\n\n\n=== full.txt ===\ncontent"
	if got := Compile(items); got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := []model.ContentItem{
		{OriginalFilename: "a.txt", ExtractedText: "aaa"},
		{OriginalFilename: "b.txt", ExtractedText: "bbb"},
	}
	compiled := Compile(items)

	summary := Summarize(items, compiled)
	if summary.ItemsCount != 2 {
		t.Errorf("ItemsCount = %d, want 2", summary.ItemsCount)
	}
	if summary.ContentLength != len(compiled) {
		t.Errorf("ContentLength = %d, want %d", summary.ContentLength, len(compiled))
	}
}
