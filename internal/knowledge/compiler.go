package knowledge

import (
	"strings"

	"github.com/treebornwood/voicedeskk/internal/model"
)

// Compile 将商家的内容条目按给定顺序编译为一份提示词文档。
// 每个条目输出一行 `=== <原始文件名> ===` 标题加正文,条目之间以空行分隔。
// 正文为空时按空字符串处理,不视为错误。调用方负责保证条目按创建时间升序。
func Compile(items []model.ContentItem) string {
	if len(items) == 0 {
		return ""
	}

	sections := make([]string, 0, len(items))
	for _, item := range items {
		var b strings.Builder
		b.WriteString("=== ")
		b.WriteString(item.OriginalFilename)
		b.WriteString(" ===\n")
		b.WriteString(item.ExtractedText)
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}

// Summary 编译结果摘要
type Summary struct {
	ItemsCount    int `json:"items_count"`
	ContentLength int `json:"content_length"`
}

// Summarize 生成编译结果摘要
func Summarize(items []model.ContentItem, compiled string) Summary {
	return Summary{
		ItemsCount:    len(items),
		ContentLength: len(compiled),
	}
}
