package booking

import (
	"testing"

	"github.com/courtbook/courtbook/internal/store"
)

func TestPriceQuote(t *testing.T) {
	court := store.Court{ID: "c1", Price: 1500}
	trainer := &store.Trainer{ID: "t1", Price: 2500, ChildrenPrice: 1800}

	tests := []struct {
		name    string
		trainer *store.Trainer
		age     AgeGroup
		split   bool
		want    Quote
	}{
		{
			name: "court only",
			want: Quote{CourtPrice: 1500, Total: 1500},
		},
		{
			name:    "adult trainer",
			trainer: trainer,
			age:     AgeGroupAdult,
			want:    Quote{CourtPrice: 1500, TrainerPrice: 2500, Total: 4000},
		},
		{
			name:    "children trainer",
			trainer: trainer,
			age:     AgeGroupChildren,
			want:    Quote{CourtPrice: 1500, TrainerPrice: 1800, Total: 3300},
		},
		{
			name:    "unset age group defaults to adult pricing",
			trainer: trainer,
			want:    Quote{CourtPrice: 1500, TrainerPrice: 2500, Total: 4000},
		},
		{
			name:    "split training adds the two-person surcharge",
			trainer: trainer,
			age:     AgeGroupAdult,
			split:   true,
			want:    Quote{CourtPrice: 1500, TrainerPrice: 2500, SplitSurcharge: 2000, Total: 6000},
		},
		{
			name:  "split without trainer has no surcharge",
			split: true,
			want:  Quote{CourtPrice: 1500, Total: 1500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceQuote(court, tt.trainer, tt.age, tt.split)
			if got != tt.want {
				t.Errorf("PriceQuote() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
