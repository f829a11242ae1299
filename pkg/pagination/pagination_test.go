package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", Params{Page: -3, PageSize: 10}, Params{Page: 1, PageSize: 10}},
		{"capped size", Params{Page: 2, PageSize: 500}, Params{Page: 2, PageSize: MaxPageSize}},
		{"passthrough", Params{Page: 4, PageSize: 20}, Params{Page: 4, PageSize: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 2, PageSize: 10}, 25)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.Total != 25 || meta.Page != 2 || meta.PageSize != 10 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := MetaFor(Params{}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty set, got %d", empty.TotalPages)
	}
}

func TestSlice(t *testing.T) {
	lo, hi := Slice(Params{Page: 1, PageSize: 10}, 25)
	if lo != 0 || hi != 10 {
		t.Fatalf("first page bounds = [%d, %d)", lo, hi)
	}
	lo, hi = Slice(Params{Page: 3, PageSize: 10}, 25)
	if lo != 20 || hi != 25 {
		t.Fatalf("last partial page bounds = [%d, %d)", lo, hi)
	}
	lo, hi = Slice(Params{Page: 9, PageSize: 10}, 25)
	if lo != 0 || hi != 0 {
		t.Fatalf("out of range page should be empty, got [%d, %d)", lo, hi)
	}
}
