package models

import "testing"

func TestListParamsValidate(t *testing.T) {
	tests := []struct {
		name     string
		in       ListParams
		wantPage int
		wantKind string
	}{
		{"defaults", ListParams{}, 1, "movie"},
		{"negative page", ListParams{Page: -3, Kind: "tv"}, 1, "tv"},
		{"unknown kind", ListParams{Page: 2, Kind: "podcast"}, 2, "movie"},
		{"valid passthrough", ListParams{Page: 5, Kind: "tv"}, 5, "tv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			if tt.in.Page != tt.wantPage || tt.in.Kind != tt.wantKind {
				t.Errorf("got {%d %s}, want {%d %s}", tt.in.Page, tt.in.Kind, tt.wantPage, tt.wantKind)
			}
		})
	}
}

func TestBandContains(t *testing.T) {
	b := Band{Min: 7.5, Max: 10}

	for _, tt := range []struct {
		v    float64
		want bool
	}{
		{7.5, true},
		{10, true},
		{8.2, true},
		{7.49, false},
		{10.1, false},
	} {
		if got := b.Contains(tt.v); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestKindValid(t *testing.T) {
	if !KindMovie.Valid() || !KindTV.Valid() {
		t.Error("movie and tv must be valid kinds")
	}
	if Kind("podcast").Valid() || Kind("").Valid() {
		t.Error("unknown kinds must be invalid")
	}
}

func TestBestRating(t *testing.T) {
	withComposite := EnrichedItem{
		CatalogItem:     CatalogItem{VoteAverage: 7.0},
		AggregatedScore: 8.2,
	}
	if got := withComposite.BestRating(); got != 8.2 {
		t.Errorf("BestRating = %v, want the aggregated composite", got)
	}

	primaryOnly := EnrichedItem{CatalogItem: CatalogItem{VoteAverage: 7.0}}
	if got := primaryOnly.BestRating(); got != 7.0 {
		t.Errorf("BestRating = %v, want the primary vote average", got)
	}
}
