package sim

import (
	"math"

	"github.com/seivard/grimhollow/behavior"
)

// ApplyDefense reduces raw damage by the flat defense of a tier and returns
// the integer damage to apply. Every hit lands for at least 1.
//
// reduction = defense / (defense + 100), so a tier can soften damage but
// never nullify it.
func ApplyDefense(raw float64, cat behavior.Category, ignoreDefense bool) int {
	if ignoreDefense {
		return atLeastOne(math.Round(raw))
	}
	defense := cat.Defense()
	reduction := defense / (defense + 100)
	return atLeastOne(math.Round(raw * (1 - reduction)))
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
