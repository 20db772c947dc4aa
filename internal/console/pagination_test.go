package console

import "testing"

func TestPaginationTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{total: 0, size: 10, want: 0},
		{total: 1, size: 10, want: 1},
		{total: 10, size: 10, want: 1},
		{total: 11, size: 10, want: 2},
		{total: 25, size: 0, want: 3},
	}
	for _, tt := range tests {
		if got := NewPagination(tt.size, tt.total).TotalPages(); got != tt.want {
			t.Errorf("total=%d size=%d: expected %d pages, got %d", tt.total, tt.size, tt.want, got)
		}
	}
}

func TestPaginationClamp(t *testing.T) {
	p := NewPagination(10, 25)
	for page, want := range map[int]int{-3: 1, 0: 1, 2: 2, 3: 3, 99: 3} {
		if got := p.Clamp(page); got != want {
			t.Errorf("clamp(%d): expected %d, got %d", page, want, got)
		}
	}

	empty := NewPagination(10, 0)
	if got := empty.GoTo(5); got != 1 {
		t.Errorf("expected page 1 with no items, got %d", got)
	}
	if start, end := empty.Bounds(); start != 0 || end != 0 {
		t.Errorf("expected empty bounds, got %d..%d", start, end)
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	p := NewPagination(10, len(items))
	p.GoTo(3)

	page := Slice(items, p)
	if len(page) != 3 || page[0] != 20 {
		t.Errorf("expected last three items, got %v", page)
	}
	if p.Next() != 3 {
		t.Errorf("expected next to stay on the last page")
	}
	if p.Prev() != 2 {
		t.Errorf("expected prev to move back")
	}
}
