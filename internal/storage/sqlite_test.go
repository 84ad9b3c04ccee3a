package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hyperjump/finsight/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStorage_UpsertSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &models.FinanceSnapshot{Ticker: "NVDA", Name: "NVIDIA Corp", Sector: "Technology", Price: 100, MarketCap: "1000", PERatio: 50, EPS: 2}
	if err := store.UpsertSnapshot(ctx, first); err != nil {
		t.Fatal(err)
	}
	if first.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set")
	}

	second := &models.FinanceSnapshot{Ticker: "NVDA", Name: "NVIDIA Corporation", Sector: "Semiconductors", Price: 120.5, MarketCap: "3000000000000", PERatio: 60, EPS: 2.5, FiftyTwoWeekHigh: 150, FiftyTwoWeekLow: 80}
	if err := store.UpsertSnapshot(ctx, second); err != nil {
		t.Fatal(err)
	}

	var rows int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM company_finance WHERE ticker = 'NVDA'`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row for NVDA, got %d", rows)
	}

	got, err := store.GetSnapshot(ctx, "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "NVIDIA Corporation" || got.Sector != "Semiconductors" || got.Price != 120.5 ||
		got.MarketCap != "3000000000000" || got.PERatio != 60 || got.EPS != 2.5 ||
		got.FiftyTwoWeekHigh != 150 || got.FiftyTwoWeekLow != 80 {
		t.Errorf("snapshot not overwritten: %+v", got)
	}
}

func TestSQLiteStorage_GetSnapshotNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetSnapshot(context.Background(), "ZZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_InsertArticleIfAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &models.NewsArticle{Ticker: "NVDA", Title: "Chips", Link: "https://x/1", Source: "Finviz", PublishedDate: "Today 09:00AM", Summary: "Chips"}
	inserted, err := store.InsertArticleIfAbsent(ctx, a)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatal("first insert should report inserted")
	}
	if a.ID == 0 || a.CreatedAt.IsZero() {
		t.Errorf("ID and CreatedAt should be set: %+v", a)
	}

	dup := &models.NewsArticle{Ticker: "AMD", Title: "Other title", Link: "https://x/1", Source: "Google News"}
	inserted, err = store.InsertArticleIfAbsent(ctx, dup)
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Error("duplicate link should not be inserted, even under another ticker")
	}
	if dup.ID != 0 {
		t.Errorf("duplicate should not get an ID, got %d", dup.ID)
	}

	n, err := store.CountArticles(ctx, "NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("CountArticles(NVDA)=%d, want 1", n)
	}
	if n, _ := store.CountArticles(ctx, "AMD"); n != 0 {
		t.Errorf("CountArticles(AMD)=%d, want 0", n)
	}
}

func TestSQLiteStorage_InsertArticleConcurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.InsertArticleIfAbsent(ctx, &models.NewsArticle{Ticker: "NVDA", Title: "t", Link: "https://x/same", Source: "Finviz"})
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if inserted != 1 {
		t.Errorf("expected exactly one insert, got %d", inserted)
	}
}

func TestSQLiteStorage_ListArticles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		a := &models.NewsArticle{Ticker: "NVDA", Title: fmt.Sprintf("t%d", i), Link: fmt.Sprintf("https://x/%d", i), Source: "Finviz"}
		if _, err := store.InsertArticleIfAbsent(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.InsertArticleIfAbsent(ctx, &models.NewsArticle{Ticker: "AMD", Title: "amd", Link: "https://y/1", Source: "Finviz"}); err != nil {
		t.Fatal(err)
	}

	list, err := store.ListArticles(ctx, "NVDA", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(list))
	}
	if list[0].Title != "t2" || list[1].Title != "t1" {
		t.Errorf("expected newest first, got %q, %q", list[0].Title, list[1].Title)
	}
	for _, a := range list {
		if a.Ticker != "NVDA" {
			t.Errorf("unexpected ticker %s", a.Ticker)
		}
	}
}

func TestSQLiteStorage_memory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.UpsertSnapshot(context.Background(), &models.FinanceSnapshot{Ticker: "AAPL", Name: "Apple", Sector: "Tech", MarketCap: "N/A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetSnapshot(context.Background(), "AAPL"); err != nil {
		t.Fatal(err)
	}
}
