package listview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leavepanel/internal/domain/models"
)

type row struct {
	ID   string
	Name string
}

// recordingFetch captures every query the controller derives.
func recordingFetch(result Result[row], err error) (FetchFunc[row], *[]Query) {
	var (
		mu      sync.Mutex
		queries []Query
	)
	fetch := func(ctx context.Context, q Query) (Result[row], error) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		return result, err
	}
	return fetch, &queries
}

func TestQueryChangesResetPageToOne(t *testing.T) {
	res := Result[row]{Meta: models.PageMeta{CurrentPage: 1, LastPage: 9}}
	fetch, queries := recordingFetch(res, nil)
	ctrl := NewController[row](fetch, nil)
	ctx := context.Background()

	steps := []func() error{
		func() error { return ctrl.SetSearch(ctx, "annual") },
		func() error { return ctrl.SetFilter(ctx, "status", "pending") },
		func() error { return ctrl.SetSort(ctx, SortDesc) },
		func() error { return ctrl.SetFilter(ctx, "status", "") },
		func() error { return ctrl.SetSearch(ctx, "") },
	}
	for i, step := range steps {
		if err := ctrl.ChangePage(ctx, 4); err != nil {
			t.Fatalf("ChangePage before step %d: %v", i, err)
		}
		if err := step(); err != nil {
			t.Fatalf("step %d returned error: %v", i, err)
		}
		got := (*queries)[len(*queries)-1]
		if got.Page != 1 {
			t.Fatalf("step %d fetched page %d, want 1", i, got.Page)
		}
	}
}

func TestChangePagePreservesQueryState(t *testing.T) {
	fetch, queries := recordingFetch(Result[row]{}, nil)
	ctrl := NewController[row](fetch, nil)
	ctx := context.Background()

	if err := ctrl.SetSearch(ctx, "sick"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if err := ctrl.SetFilter(ctx, "status", "approve"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if err := ctrl.SetSort(ctx, SortAsc); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	if err := ctrl.ChangePage(ctx, 3); err != nil {
		t.Fatalf("ChangePage: %v", err)
	}

	got := (*queries)[len(*queries)-1]
	if got.Page != 3 {
		t.Fatalf("page = %d, want 3", got.Page)
	}
	if got.Search != "sick" || got.Filters["status"] != "approve" || got.Sort != SortAsc {
		t.Fatalf("ChangePage mutated query state: %+v", got)
	}
}

func TestRemoveRefreshesAtSamePageAndFilters(t *testing.T) {
	fetch, queries := recordingFetch(Result[row]{Meta: models.PageMeta{CurrentPage: 2, LastPage: 5}}, nil)
	var deleted []string
	remove := func(ctx context.Context, id string) error {
		deleted = append(deleted, id)
		return nil
	}
	ctrl := NewController[row](fetch, remove)
	ctx := context.Background()

	if err := ctrl.SetFilter(ctx, "status", "pending"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if err := ctrl.ChangePage(ctx, 2); err != nil {
		t.Fatalf("ChangePage: %v", err)
	}
	before := (*queries)[len(*queries)-1]

	if err := ctrl.Remove(ctx, "42", func() bool { return true }); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "42" {
		t.Fatalf("deleted = %v, want [42]", deleted)
	}

	after := (*queries)[len(*queries)-1]
	if after.Values().Encode() != before.Values().Encode() {
		t.Fatalf("refresh after remove changed query:\nbefore %s\nafter  %s",
			before.Values().Encode(), after.Values().Encode())
	}
}

func TestRemoveCancelledIssuesNothing(t *testing.T) {
	fetch, queries := recordingFetch(Result[row]{}, nil)
	var deletes int
	remove := func(ctx context.Context, id string) error {
		deletes++
		return nil
	}
	ctrl := NewController[row](fetch, remove)

	err := ctrl.Remove(context.Background(), "7", func() bool { return false })
	if !errors.Is(err, ErrRemoveCancelled) {
		t.Fatalf("err = %v, want ErrRemoveCancelled", err)
	}
	if deletes != 0 || len(*queries) != 0 {
		t.Fatalf("cancelled remove still issued requests: deletes=%d fetches=%d", deletes, len(*queries))
	}
}

func TestRemoveFailureLeavesResultUntouched(t *testing.T) {
	want := Result[row]{
		Items: []row{{ID: "1", Name: "Annual"}},
		Meta:  models.PageMeta{CurrentPage: 1, LastPage: 1},
	}
	fetch, _ := recordingFetch(want, nil)
	remove := func(ctx context.Context, id string) error {
		return errors.New("boom")
	}
	ctrl := NewController[row](fetch, remove)
	ctx := context.Background()

	if err := ctrl.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := ctrl.Remove(ctx, "1", nil); err == nil {
		t.Fatal("Remove should have failed")
	}

	got := ctrl.Result()
	if len(got.Items) != 1 || got.Items[0].ID != "1" {
		t.Fatalf("result mutated after failed remove: %+v", got)
	}
}

func TestRefreshTwiceIsIdempotentOnQuery(t *testing.T) {
	fetch, queries := recordingFetch(Result[row]{}, nil)
	ctrl := NewController[row](fetch, nil)
	ctx := context.Background()

	if err := ctrl.SetSearch(ctx, "x"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if err := ctrl.Refresh(ctx); err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	if err := ctrl.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}

	n := len(*queries)
	if n < 3 {
		t.Fatalf("expected 3 fetches, got %d", n)
	}
	a := (*queries)[n-2].Values().Encode()
	b := (*queries)[n-1].Values().Encode()
	if a != b {
		t.Fatalf("back-to-back refreshes diverged: %s vs %s", a, b)
	}
}

func TestFetchFailureKeepsPreviousResult(t *testing.T) {
	good := Result[row]{
		Items: []row{{ID: "9", Name: "Unpaid"}},
		Meta:  models.PageMeta{CurrentPage: 1, LastPage: 2},
	}
	var fail bool
	fetch := func(ctx context.Context, q Query) (Result[row], error) {
		if fail {
			return Result[row]{}, errors.New("upstream down")
		}
		return good, nil
	}
	ctrl := NewController[row](fetch, nil)
	ctx := context.Background()

	if err := ctrl.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	fail = true
	if err := ctrl.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}

	got := ctrl.Result()
	if len(got.Items) != 1 || got.Meta.LastPage != 2 {
		t.Fatalf("failed fetch cleared previous result: %+v", got)
	}
	if ctrl.Loading() {
		t.Fatal("loading flag stuck after failed fetch")
	}
	if ctrl.LastError() == nil {
		t.Fatal("last error not recorded")
	}
}

func TestStaleResponseDoesNotOverwriteNewerQuery(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, q Query) (Result[row], error) {
		if q.Search == "old" {
			close(started)
			<-release
			return Result[row]{Items: []row{{Name: "old"}}}, nil
		}
		return Result[row]{Items: []row{{Name: "new"}}}, nil
	}
	ctrl := NewController[row](fetch, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- ctrl.SetSearch(ctx, "old") }()
	<-started

	// The second query lands while the first fetch is still in flight.
	if err := ctrl.SetSearch(ctx, "new"); err != nil {
		t.Fatalf("SetSearch(new): %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("SetSearch(old): %v", err)
	}

	got := ctrl.Result()
	if len(got.Items) != 1 || got.Items[0].Name != "new" {
		t.Fatalf("stale response overwrote newer result: %+v", got.Items)
	}
}

func TestCancelledContextIsNotApplied(t *testing.T) {
	want := Result[row]{Items: []row{{Name: "ghost"}}}
	fetch := func(ctx context.Context, q Query) (Result[row], error) {
		return want, nil
	}
	ctrl := NewController[row](fetch, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ctrl.Refresh(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if got := ctrl.Result(); len(got.Items) != 0 {
		t.Fatalf("result applied for a cancelled view: %+v", got.Items)
	}
}
