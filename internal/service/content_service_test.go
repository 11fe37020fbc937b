package service

import (
	"errors"
	"testing"
	"time"

	"github.com/treebornwood/voicedeskk/internal/model"
)

func TestAddContentDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	business := createTestBusiness(t, db, &model.Business{})

	item, err := svc.AddContent(business.ID, &AddContentRequest{
		OriginalFilename: "menu.txt",
		ExtractedText:    "Menu",
	})
	if err != nil {
		t.Fatalf("AddContent: %v", err)
	}
	if item.ContentType != "text" {
		t.Errorf("ContentType = %q, want default text", item.ContentType)
	}
	if !item.Processed {
		t.Error("Processed = false, want true")
	}
	if item.ID == "" {
		t.Error("ID not generated")
	}
}

func TestListForCompileOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	business := createTestBusiness(t, db, &model.Business{})

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	names := []string{"first.txt", "second.txt", "third.txt"}
	for i, name := range names {
		item := &model.ContentItem{
			BusinessID:       business.ID,
			OriginalFilename: name,
			ExtractedText:    name,
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("create item %s: %v", name, err)
		}
	}

	items, err := svc.ListForCompile(business.ID)
	if err != nil {
		t.Fatalf("ListForCompile: %v", err)
	}
	if len(items) != len(names) {
		t.Fatalf("len = %d, want %d", len(items), len(names))
	}
	// 编译顺序是创建时间升序
	for i, name := range names {
		if items[i].OriginalFilename != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].OriginalFilename, name)
		}
	}
}

func TestDeleteContentOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	owner := createTestBusiness(t, db, &model.Business{Slug: "owner"})
	other := createTestBusiness(t, db, &model.Business{Slug: "other"})

	item, err := svc.AddContent(owner.ID, &AddContentRequest{
		OriginalFilename: "private.txt",
		ExtractedText:    "secret",
	})
	if err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	// 其他商家删除别人的内容按不存在处理
	if err := svc.DeleteContent(other.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-business delete: err = %v, want ErrNotFound", err)
	}

	if err := svc.DeleteContent(owner.ID, item.ID); err != nil {
		t.Fatalf("DeleteContent: %v", err)
	}

	count, err := svc.CountByBusiness(owner.ID)
	if err != nil {
		t.Fatalf("CountByBusiness: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after delete", count)
	}
}
