package selection

import (
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// EfficiencyPremium is how much more than the cheapest candidate the most
// efficient one may cost and still be adopted
const EfficiencyPremium = 1.1

// Candidate is a priced variant that met the power floor
type Candidate struct {
	ItemID    string
	Quality   int
	ItemPower float64
	Price     float64
	City      string
}

// Strategy picks one candidate. Candidates arrive in price resolution order
// and ties go to the earliest one. Implementations return nil only for an
// empty slice.
type Strategy interface {
	Name() string
	Choose(candidates []*Candidate) *Candidate
}

// CheapestStrategy picks the lowest price
type CheapestStrategy struct{}

// Name implements Strategy
func (CheapestStrategy) Name() string {
	return albion.StrategyCheapest
}

// Choose implements Strategy
func (CheapestStrategy) Choose(candidates []*Candidate) *Candidate {
	var cheapest *Candidate
	for _, c := range candidates {
		if cheapest == nil || c.Price < cheapest.Price {
			cheapest = c
		}
	}
	return cheapest
}

// EfficiencyStrategy picks the best item power per silver, unless it costs
// more than EfficiencyPremium times the cheapest candidate
type EfficiencyStrategy struct{}

// Name implements Strategy
func (EfficiencyStrategy) Name() string {
	return albion.StrategyEfficiency
}

// Choose implements Strategy
func (EfficiencyStrategy) Choose(candidates []*Candidate) *Candidate {
	cheapest := CheapestStrategy{}.Choose(candidates)
	if cheapest == nil {
		return nil
	}

	var best *Candidate
	var bestRatio float64
	for _, c := range candidates {
		ratio := c.ItemPower / c.Price
		if best == nil || ratio > bestRatio {
			best = c
			bestRatio = ratio
		}
	}

	if best.Price <= cheapest.Price*EfficiencyPremium {
		return best
	}
	return cheapest
}

// StrategyFor returns the strategy a slot asks for
func StrategyFor(slot *BuildSlot) Strategy {
	if slot.Efficiency() {
		return EfficiencyStrategy{}
	}
	return CheapestStrategy{}
}
