package grammar

import "testing"

func TestComputeStats(t *testing.T) {
	text := "एक दो तीन चार" // 4 words

	cases := []struct {
		name string
		errs []Error
		want Stats
	}{
		{
			name: "no errors",
			errs: nil,
			want: Stats{Grammar: 100, Fluency: 100, Clarity: 100, Engagement: 100, TotalWords: 4},
		},
		{
			name: "one spelling one grammar",
			errs: []Error{{Type: TypeSpelling}, {Type: TypeGrammar}},
			want: Stats{Grammar: 87, Fluency: 95, Clarity: 92, Engagement: 94, TotalWords: 4, TotalErrors: 2},
		},
		{
			name: "agreement errors count as grammar",
			errs: []Error{{Type: TypeGenderAgreement}, {Type: TypeNumberAgreement}},
			want: Stats{Grammar: 84, Fluency: 90, Clarity: 92, Engagement: 94, TotalWords: 4, TotalErrors: 2},
		},
		{
			name: "insertion and deletion hit fluency only",
			errs: []Error{{Type: TypeInsertion}, {Type: TypeDeletion}},
			want: Stats{Grammar: 100, Fluency: 93, Clarity: 92, Engagement: 94, TotalWords: 4, TotalErrors: 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStats(text, tc.errs)
			if got != tc.want {
				t.Errorf("ComputeStats = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeStatsEmptyText(t *testing.T) {
	got := ComputeStats("", nil)
	want := Stats{Grammar: 100, Fluency: 100, Clarity: 100, Engagement: 100}
	if got != want {
		t.Errorf("ComputeStats(\"\") = %+v, want %+v", got, want)
	}
}

func TestComputeStatsClamping(t *testing.T) {
	errs := make([]Error, 30)
	for i := range errs {
		errs[i] = Error{Type: TypeGrammar}
	}
	got := ComputeStats("एक दो", errs)
	if got.Grammar != 0 || got.Fluency != 0 || got.Clarity != 0 {
		t.Errorf("scores not clamped to 0: %+v", got)
	}
	if got.Engagement != 70 {
		t.Errorf("Engagement = %d, want floor 70", got.Engagement)
	}
}

// Adding an error of any type never raises any score.
func TestComputeStatsMonotonic(t *testing.T) {
	text := "एक दो तीन चार पांच"
	types := []string{
		TypeSpelling, TypeGrammar, TypeGenderAgreement,
		TypeNumberAgreement, TypeInsertion, TypeDeletion, TypeRepetition,
	}
	var errs []Error
	prev := ComputeStats(text, errs)
	for _, typ := range types {
		errs = append(errs, Error{Type: typ})
		cur := ComputeStats(text, errs)
		if cur.Grammar > prev.Grammar || cur.Fluency > prev.Fluency ||
			cur.Clarity > prev.Clarity || cur.Engagement > prev.Engagement {
			t.Errorf("score rose after adding %s: %+v → %+v", typ, prev, cur)
		}
		prev = cur
	}
}
