package booking

import "github.com/courtbook/courtbook/internal/store"

// Split training is a two-person session; the surcharge is fixed per person.
const (
	splitSurchargePerPerson int64 = 1000
	splitParticipants       int64 = 2
)

type AgeGroup string

const (
	AgeGroupAdult    AgeGroup = "adult"
	AgeGroupChildren AgeGroup = "children"
)

// Quote is the price breakdown for a booking. It is computed for display and
// never stored.
type Quote struct {
	CourtPrice     int64 `json:"court_price"`
	TrainerPrice   int64 `json:"trainer_price"`
	SplitSurcharge int64 `json:"split_surcharge"`
	Total          int64 `json:"total"`
}

// PriceQuote computes court hourly price plus the trainer's tier price and,
// for split training with a trainer attached, the fixed surcharge.
func PriceQuote(court store.Court, trainer *store.Trainer, ageGroup AgeGroup, splitTraining bool) Quote {
	quote := Quote{CourtPrice: court.Price}

	if trainer != nil {
		if ageGroup == AgeGroupChildren {
			quote.TrainerPrice = trainer.ChildrenPrice
		} else {
			quote.TrainerPrice = trainer.Price
		}
		if splitTraining {
			quote.SplitSurcharge = splitSurchargePerPerson * splitParticipants
		}
	}

	quote.Total = quote.CourtPrice + quote.TrainerPrice + quote.SplitSurcharge
	return quote
}
