package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type mapCache struct {
	data    map[string][]byte
	deletes int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func TestNewsVisibilityAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.adminIdentity(t)

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older, _ := f.news.Create(ctx, admin, NewsInput{TitleEn: "Fair", TitleVi: "Hội chợ", EventDate: &jan, IsPublished: true})
	newer, _ := f.news.Create(ctx, admin, NewsInput{TitleEn: "Expo", TitleVi: "Triển lãm", EventDate: &jun, IsPublished: true})
	undated, _ := f.news.Create(ctx, admin, NewsInput{TitleEn: "Note", TitleVi: "Ghi chú", IsPublished: true})
	draft, err := f.news.Create(ctx, admin, NewsInput{TitleEn: "Draft", TitleVi: "Nháp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := f.news.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{newer.ID, older.ID, undated.ID}
	if len(items) != len(want) {
		t.Fatalf("expected %d published, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}

	_, err = f.news.GetPublished(ctx, draft.ID)
	assertKind(t, err, KindNotFound)
	if _, err := f.news.GetPublished(ctx, newer.ID); err != nil {
		t.Errorf("published item: %v", err)
	}

	all, _ := f.news.ListAll(ctx, admin)
	if len(all) != 4 || all[0].ID != draft.ID {
		t.Errorf("admin list should include drafts newest first")
	}

	_, err = f.news.Create(ctx, admin, NewsInput{TitleEn: "Only english"})
	assertKind(t, err, KindValidation)
	_, err = f.news.ListAll(ctx, anonymous())
	assertKind(t, err, KindForbidden)
}

func TestNewsCacheInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.adminIdentity(t)
	cache := newMapCache()
	f.news.Cache = cache

	n, _ := f.news.Create(ctx, admin, NewsInput{TitleEn: "A", TitleVi: "A", IsPublished: true})
	if items, _ := f.news.ListPublished(ctx); len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if _, ok := cache.data[publishedNewsKey]; !ok {
		t.Fatal("expected list cached")
	}

	if _, err := f.news.Update(ctx, admin, n.ID, NewsInput{TitleEn: "A", TitleVi: "A", IsPublished: false}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if items, _ := f.news.ListPublished(ctx); len(items) != 0 {
		t.Fatalf("stale cache served %d items", len(items))
	}

	if err := f.news.Delete(ctx, admin, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertKind(t, f.news.Delete(ctx, admin, n.ID), KindNotFound)
	if cache.deletes != 3 {
		t.Errorf("expected 3 invalidations, got %d", cache.deletes)
	}
}
