package reaxff

import "math"

// Bond is a drawable pair: its corrected total bond order and the rounded
// multiplicity a renderer uses to pick single, double or triple lines.
type Bond struct {
	I, J         int
	Order        float64
	Multiplicity int
}

// Multiplicity rounds a bond order to 0..3.
func Multiplicity(bo float64) int {
	m := int(math.Round(bo))
	if m < 0 {
		return 0
	}
	if m > 3 {
		return 3
	}
	return m
}

// Bonds lists the pairs whose corrected total bond order is at least
// threshold, ordered by (I, J).
func (b *BondOrders) Bonds(threshold float64) []Bond {
	var out []Bond
	for i := 0; i < b.N; i++ {
		for j := i + 1; j < b.N; j++ {
			bo := b.Total.At(i, j)
			if bo == 0 || bo < threshold {
				continue
			}
			out = append(out, Bond{I: i, J: j, Order: bo, Multiplicity: Multiplicity(bo)})
		}
	}
	return out
}

// TotalBondOrder is the corrected bond-order sum around atom i.
func (b *BondOrders) TotalBondOrder(i int) float64 {
	checkIndex("atom", i, b.N)
	return rowSum(b.Total, i)
}
