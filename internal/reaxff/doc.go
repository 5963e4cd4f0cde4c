// Package reaxff evaluates a ReaxFF-style reactive potential on an atom
// snapshot.
//
// Scoring a snapshot takes two stages. [ComputeBondOrders] turns distances into
// uncorrected and corrected sigma, pi and pi-pi bond-order matrices plus the
// per-atom valence deviations. Every energy term then reads those matrices
// through an [Evaluation]:
//
//   - pair terms: [Evaluation.VanDerWaals], [Evaluation.Coulomb], [Evaluation.BondEnergy]
//   - atom terms: [Evaluation.LonePairEnergy], [Evaluation.OverCoordination], [Evaluation.UnderCoordination]
//   - triple terms: [Evaluation.PenaltyEnergy], [Evaluation.CoalitionEnergy], [Evaluation.AngleEnergy]
//
// [Evaluate] runs both stages and sums every term into [Energies].
//
// # Example
//
//	ff, _ := forcefield.Builtin("cho")
//	res, err := reaxff.Evaluate(sys, ff, reaxff.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Energies.Total())
//
// # Units
//
// Distances in angstrom, energies in kcal/mol, charges in elementary charges.
//
// # Thread Safety
//
// An Evaluation is immutable after construction and safe for concurrent readers.
// Independent evaluations share nothing.
package reaxff
