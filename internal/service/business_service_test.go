package service

import (
	"errors"
	"testing"

	"github.com/treebornwood/voicedeskk/internal/model"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Joe's Barber Shop", want: "joe-s-barber-shop"},
		{name: "already clean", in: "barber", want: "barber"},
		{name: "uppercase", in: "ACME", want: "acme"},
		{name: "leading and trailing junk", in: "  -- Salon! --  ", want: "salon"},
		{name: "consecutive separators", in: "A  &  B", want: "a-b"},
		{name: "digits kept", in: "Studio 54", want: "studio-54"},
		{name: "only junk", in: "!!!", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Slugify(test.in); got != test.want {
				t.Errorf("Slugify(%q) = %q, want %q", test.in, got, test.want)
			}
		})
	}
}

func TestCreateBusinessSlugCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)

	first, err := svc.CreateBusiness(1, &CreateBusinessRequest{BusinessName: "Joe's Barber"})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	if first.Slug != "joe-s-barber" {
		t.Errorf("first slug = %q, want joe-s-barber", first.Slug)
	}

	second, err := svc.CreateBusiness(2, &CreateBusinessRequest{BusinessName: "Joe's Barber"})
	if err != nil {
		t.Fatalf("CreateBusiness duplicate name: %v", err)
	}
	if second.Slug != "joe-s-barber-2" {
		t.Errorf("second slug = %q, want joe-s-barber-2", second.Slug)
	}

	third, err := svc.CreateBusiness(3, &CreateBusinessRequest{BusinessName: "Joe's Barber"})
	if err != nil {
		t.Fatalf("CreateBusiness triplicate name: %v", err)
	}
	if third.Slug != "joe-s-barber-3" {
		t.Errorf("third slug = %q, want joe-s-barber-3", third.Slug)
	}
}

func TestCreateBusinessEmptySlugFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)

	business, err := svc.CreateBusiness(1, &CreateBusinessRequest{BusinessName: "!!!"})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	if business.Slug != "business" {
		t.Errorf("slug = %q, want fallback \"business\"", business.Slug)
	}
}

func TestGetOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)

	business := createTestBusiness(t, db, &model.Business{OwnerID: 7})

	got, err := svc.GetOwned(7, business.ID)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if got.ID != business.ID {
		t.Errorf("GetOwned returned id %q, want %q", got.ID, business.ID)
	}

	// 其他账号访问按不存在处理
	if _, err := svc.GetOwned(8, business.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetOwned wrong owner: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetOwned(7, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetOwned unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestGoLiveRequiresContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)
	contentSvc := NewContentService(db)

	business := createTestBusiness(t, db, &model.Business{OwnerID: 1})

	if _, err := svc.GoLive(1, business.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("GoLive without content: err = %v, want ErrValidation", err)
	}

	_, err := contentSvc.AddContent(business.ID, &AddContentRequest{
		OriginalFilename: "hours.txt",
		ExtractedText:    "Hours: 9-5",
	})
	if err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	got, err := svc.GoLive(1, business.ID)
	if err != nil {
		t.Fatalf("GoLive with content: %v", err)
	}
	if !got.IsLive {
		t.Error("business not marked live")
	}
}

func TestTakeOffline(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)
	contentSvc := NewContentService(db)

	business := createTestBusiness(t, db, &model.Business{OwnerID: 1})
	_, err := contentSvc.AddContent(business.ID, &AddContentRequest{
		OriginalFilename: "hours.txt",
		ExtractedText:    "Hours: 9-5",
	})
	if err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	if _, err := svc.GoLive(1, business.ID); err != nil {
		t.Fatalf("GoLive: %v", err)
	}
	if _, err := svc.GetLiveBySlug(business.Slug); err != nil {
		t.Fatalf("GetLiveBySlug while live: %v", err)
	}

	got, err := svc.TakeOffline(1, business.ID)
	if err != nil {
		t.Fatalf("TakeOffline: %v", err)
	}
	if got.IsLive {
		t.Error("business still marked live")
	}

	// 下线后公开查询按不存在处理
	if _, err := svc.GetLiveBySlug(business.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLiveBySlug after offline: err = %v, want ErrNotFound", err)
	}

	// 归属不符不能下线
	if _, err := svc.TakeOffline(2, business.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("TakeOffline wrong owner: err = %v, want ErrNotFound", err)
	}
}

func TestGetLiveBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)

	live := createTestBusiness(t, db, &model.Business{
		BusinessName: "Live Salon",
		Slug:         "live-salon",
		IsLive:       true,
	})
	createTestBusiness(t, db, &model.Business{
		BusinessName: "Hidden Salon",
		Slug:         "hidden-salon",
		IsLive:       false,
	})

	got, err := svc.GetLiveBySlug("live-salon")
	if err != nil {
		t.Fatalf("GetLiveBySlug: %v", err)
	}
	if got.ID != live.ID {
		t.Errorf("GetLiveBySlug returned id %q, want %q", got.ID, live.ID)
	}

	// 未上线的商家按不存在处理,和不存在的 slug 不可区分
	if _, err := svc.GetLiveBySlug("hidden-salon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLiveBySlug not live: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetLiveBySlug("no-such-slug"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLiveBySlug unknown slug: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateBusinessOverwrites(t *testing.T) {
	db := newTestDB(t)
	svc := NewBusinessService(db)

	business := createTestBusiness(t, db, &model.Business{
		OwnerID:     1,
		Description: "old description",
		Phone:       "123",
	})

	// 零值字段同样写入:省略 phone 即清空 phone
	updated, err := svc.UpdateBusiness(1, business.ID, &UpdateBusinessRequest{
		BusinessName: "Renamed",
		Description:  "new description",
	})
	if err != nil {
		t.Fatalf("UpdateBusiness: %v", err)
	}
	if updated.BusinessName != "Renamed" {
		t.Errorf("BusinessName = %q, want Renamed", updated.BusinessName)
	}
	if updated.Phone != "" {
		t.Errorf("Phone = %q, want empty after overwrite", updated.Phone)
	}
	if updated.Slug != business.Slug {
		t.Errorf("Slug changed on update: %q -> %q", business.Slug, updated.Slug)
	}
}
