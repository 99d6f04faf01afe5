package appraisal

import "testing"

func TestComputeOverallScore(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		want    float64
		ok      bool
	}{
		{
			name: "weighted average",
			ratings: []Rating{
				{Weightage: 60, Rating: 4},
				{Weightage: 40, Rating: 5},
			},
			want: 4.4,
			ok:   true,
		},
		{
			name:    "single rating",
			ratings: []Rating{{Weightage: 100, Rating: 3}},
			want:    3,
			ok:      true,
		},
		{
			name: "partial weightage normalizes",
			ratings: []Rating{
				{Weightage: 30, Rating: 4},
				{Weightage: 20, Rating: 2},
			},
			want: 3.2,
			ok:   true,
		},
		{
			name: "rounded to two decimals",
			ratings: []Rating{
				{Weightage: 50, Rating: 4},
				{Weightage: 25, Rating: 3},
				{Weightage: 25, Rating: 5},
			},
			want: 4,
			ok:   true,
		},
		{
			name:    "no ratings",
			ratings: nil,
			ok:      false,
		},
		{
			name:    "zero total weightage",
			ratings: []Rating{{Weightage: 0, Rating: 5}},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeOverallScore(tt.ratings)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}
