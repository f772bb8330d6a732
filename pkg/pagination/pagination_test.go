package pagination

import "testing"

func TestNormalizeBounds(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		wantPage int
		wantSize int
	}{
		{name: "defaults", in: Params{}, wantPage: 1, wantSize: DefaultSize},
		{name: "negativePage", in: Params{Page: -3, Size: 20}, wantPage: 1, wantSize: 20},
		{name: "sizeCapped", in: Params{Page: 2, Size: 5000}, wantPage: 2, wantSize: MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got.Page != tt.wantPage || got.Size != tt.wantSize {
				t.Fatalf("Normalize(%+v) = %+v", tt.in, got)
			}
		})
	}
}

func TestOffsetLimit(t *testing.T) {
	p := Params{Page: 3, Size: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := p.Limit(); got != 10 {
		t.Fatalf("expected limit 10, got %d", got)
	}
}

func TestMetaForRoundsPagesUp(t *testing.T) {
	meta := MetaFor(Params{Page: 1, Size: 10}, 25)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 rows, got %d", meta.TotalPages)
	}
	if meta.TotalItems != 25 {
		t.Fatalf("expected total 25, got %d", meta.TotalItems)
	}

	meta = MetaFor(Params{Page: 1, Size: 10}, 0)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", meta.TotalPages)
	}
}
