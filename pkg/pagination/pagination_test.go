package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		in         PaginationParams
		page, per  int
		wantOffset int
	}{
		{PaginationParams{}, 1, 15, 0},
		{PaginationParams{Page: 3, PerPage: 10}, 3, 10, 20},
		{PaginationParams{Page: 2, PerPage: 500}, 2, 100, 100},
	}
	for _, tt := range tests {
		p := tt.in
		p.Validate()
		if p.Page != tt.page || p.PerPage != tt.per || p.Offset() != tt.wantOffset {
			t.Errorf("Validate(%+v) = %+v offset %d", tt.in, p, p.Offset())
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Errorf("pagination = %+v", p)
	}
}

func TestNewPaginationEdges(t *testing.T) {
	if p := NewPagination(1, 15, 0); p.TotalPages != 0 || p.HasNext || p.HasPrev {
		t.Errorf("empty = %+v", p)
	}
	if p := NewPagination(2, 10, 20); p.TotalPages != 2 || p.HasNext {
		t.Errorf("exact = %+v", p)
	}
	if r := NewPaginatedResult[int](nil, NewPagination(1, 15, 0)); r.Items == nil {
		t.Error("nil items should become an empty slice")
	}
}
