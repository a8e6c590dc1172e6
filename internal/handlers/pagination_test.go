package handlers

import "testing"

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int64
		wantLimit int64
		wantErr   bool
	}{
		{"defaults", "", "", 1, 20, false},
		{"explicit values", "3", "50", 3, 50, false},
		{"page zero", "0", "", 0, 0, true},
		{"negative page", "-1", "", 0, 0, true},
		{"limit too large", "", "101", 0, 0, true},
		{"limit zero", "", "0", 0, 0, true},
		{"garbage page", "abc", "", 0, 0, true},
		{"garbage limit", "", "xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, err := parsePaginationParams(tt.pageStr, tt.limitStr, 20)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got page=%d limit=%d", page, limit)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestBuildPagination(t *testing.T) {
	p := buildPagination(45, 2, 20)

	if p["pages"] != int64(3) {
		t.Errorf("pages = %v, want 3", p["pages"])
	}
	if p["has_next"] != true {
		t.Error("expected has_next on page 2 of 3")
	}
	if p["has_prev"] != true {
		t.Error("expected has_prev on page 2")
	}
}

func TestBuildPaginationEmpty(t *testing.T) {
	p := buildPagination(0, 1, 20)

	if p["pages"] != int64(1) {
		t.Errorf("pages = %v, want 1", p["pages"])
	}
	if p["has_next"] != false {
		t.Error("did not expect has_next with no results")
	}
	if p["has_prev"] != false {
		t.Error("did not expect has_prev on page 1")
	}
}
