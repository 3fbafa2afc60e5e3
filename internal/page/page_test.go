package page

import (
	"fmt"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateVisitsEveryElementOnce(t *testing.T) {
	for _, tc := range []struct{ n, k int }{
		{0, 10}, {1, 10}, {9, 10}, {10, 10}, {11, 10}, {95, 10}, {100, 7},
	} {
		items := seq(tc.n)
		var visited []int
		cursor := ""
		calls := 0
		for {
			calls++
			res := Paginate(items, cursor, tc.k, "/tasks")
			visited = append(visited, res.Data...)
			if res.Next == nil {
				break
			}
			cursor = res.Next.Offset
		}
		if len(visited) != tc.n {
			t.Fatalf("n=%d k=%d: visited %d items", tc.n, tc.k, len(visited))
		}
		for i, v := range visited {
			if v != i {
				t.Fatalf("n=%d k=%d: out of order at %d: %d", tc.n, tc.k, i, v)
			}
		}
		wantCalls := (tc.n + tc.k - 1) / tc.k
		if wantCalls == 0 {
			wantCalls = 1
		}
		if calls != wantCalls {
			t.Fatalf("n=%d k=%d: %d calls, want %d", tc.n, tc.k, calls, wantCalls)
		}
	}
}

func TestPaginateClampsLimit(t *testing.T) {
	items := seq(500)
	res := Paginate(items, "", 10_000_000, "/tasks")
	if len(res.Data) != MaxPageSize {
		t.Fatalf("got %d items, want clamp to %d", len(res.Data), MaxPageSize)
	}
	res = Paginate(items, "", 0, "/tasks")
	if len(res.Data) != DefaultPageSize {
		t.Fatalf("unspecified limit: got %d items, want %d", len(res.Data), DefaultPageSize)
	}
	res = Paginate(items, "", -3, "/tasks")
	if len(res.Data) != DefaultPageSize {
		t.Fatalf("negative limit: got %d items, want %d", len(res.Data), DefaultPageSize)
	}
}

func TestPaginateBadCursorStartsOver(t *testing.T) {
	items := seq(5)
	for _, cursor := range []string{"", "not-a-number", "-2", "1.5"} {
		res := Paginate(items, cursor, 3, "/tasks")
		if len(res.Data) == 0 || res.Data[0] != 0 {
			t.Fatalf("cursor %q: expected page starting at 0, got %v", cursor, res.Data)
		}
	}
}

func TestPaginateOffsetPastEnd(t *testing.T) {
	items := seq(5)
	res := Paginate(items, "40", 3, "/tasks")
	if len(res.Data) != 0 {
		t.Fatalf("expected empty page, got %v", res.Data)
	}
	if res.Next != nil {
		t.Fatalf("expected no next page, got %+v", res.Next)
	}
}

func TestNextPageLink(t *testing.T) {
	items := seq(30)
	res := Paginate(items, "", 20, "/projects/77/tasks")
	if res.Next == nil {
		t.Fatalf("expected a next page")
	}
	if res.Next.Offset != "20" {
		t.Fatalf("offset %q, want \"20\"", res.Next.Offset)
	}
	want := fmt.Sprintf("/projects/77/tasks?limit=20&offset=%s", res.Next.Offset)
	if res.Next.Path != want || res.Next.URI != want {
		t.Fatalf("link %q / %q, want %q", res.Next.Path, res.Next.URI, want)
	}
}
