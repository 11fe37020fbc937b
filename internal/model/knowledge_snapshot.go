package model

import "time"

// KnowledgeSnapshot 最近一次编译的知识快照,每个商家一行,同步成功后整体覆盖
type KnowledgeSnapshot struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessID   string    `gorm:"uniqueIndex;size:36;not null" json:"business_id"`
	CompiledText string    `gorm:"type:text" json:"compiled_text"`
	ItemsCount   int       `json:"items_count"`
	LastCompiled time.Time `json:"last_compiled"`
}

// TableName 指定表名
func (KnowledgeSnapshot) TableName() string {
	return "business_knowledge"
}
