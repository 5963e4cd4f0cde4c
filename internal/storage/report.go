package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

// Report is the JSON summary of one evaluated snapshot.
type Report struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	ForceField string             `json:"forcefield"`
	Timestamp  time.Time          `json:"timestamp"`
	Charges    string             `json:"charges_mode"`
	Atoms      []AtomRecord       `json:"atoms"`
	Energies   map[string]float64 `json:"energies"`
	Bonds      []BondRecord       `json:"bonds"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type AtomRecord struct {
	ID        int        `json:"id"`
	Symbol    string     `json:"symbol"`
	Position  [3]float64 `json:"position"`
	Charge    float64    `json:"charge"`
	BondOrder float64    `json:"bond_order"`
	Deltap    float64    `json:"deltap"`
	Delta     float64    `json:"delta"`
	Nlp       float64    `json:"nlp"`
}

type BondRecord struct {
	I            int     `json:"i"`
	J            int     `json:"j"`
	Order        float64 `json:"order"`
	Multiplicity int     `json:"multiplicity"`
}

// NewReport collects the energies, charges and bonds of res. Bonds below
// threshold are left out.
func NewReport(name string, sys *atoms.System, ff *forcefield.Repository, res *reaxff.Result, threshold float64, mode reaxff.ChargeMode) *Report {
	bo := res.BondOrders()
	r := &Report{
		Name:       name,
		ForceField: ff.Name,
		Timestamp:  time.Now(),
		Charges:    mode.String(),
		Atoms:      make([]AtomRecord, sys.Len()),
		Energies:   res.Energies.Map(),
	}
	for i, a := range sys.Atoms {
		r.Atoms[i] = AtomRecord{
			ID:        a.ID,
			Symbol:    ff.Type(a.Type).Symbol,
			Position:  a.Position,
			Charge:    res.Evaluation.Charges[i],
			BondOrder: bo.TotalBondOrder(i),
			Deltap:    bo.Dev.Deltap[i],
			Delta:     bo.Dev.Delta[i],
			Nlp:       bo.Dev.Nlp[i],
		}
	}
	for _, b := range bo.Bonds(threshold) {
		r.Bonds = append(r.Bonds, BondRecord{I: b.I, J: b.J, Order: b.Order, Multiplicity: b.Multiplicity})
	}
	return r
}

// WriteJSON writes r indented to w.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
