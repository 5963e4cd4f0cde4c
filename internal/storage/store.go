package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/reaxsim/internal/md"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

const (
	reportFile     = "report.json"
	bondOrderFile  = "bond_orders.csv"
	trajectoryFile = "trajectory.csv"
)

var bondOrderHeader = []string{"i", "j", "sigma", "pi", "pipi", "total", "uncorrected_total"}

var trajectoryHeader = []string{"step", "time_fs", "kinetic", "potential", "total", "temperature"}

// Store keeps one directory per saved report under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// PairRecord is one row of bond_orders.csv.
type PairRecord struct {
	I, J             int
	Sigma, Pi, PiPi  float64
	Total            float64
	UncorrectedTotal float64
}

// Save writes report.json, bond_orders.csv for every pair with a non-zero
// uncorrected bond order, and trajectory.csv when frames is non-empty. It
// fills in r.ID and returns it.
func (s *Store) Save(r *Report, bo *reaxff.BondOrders, frames []md.Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", r.Name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	r.ID = runID

	reportPath := filepath.Join(runDir, reportFile)
	reportOut, err := os.Create(reportPath)
	if err != nil {
		return "", err
	}
	defer reportOut.Close()

	if err := WriteJSON(reportOut, r); err != nil {
		return "", err
	}

	if err := writeCSV(filepath.Join(runDir, bondOrderFile), bondOrderHeader, bondOrderRows(bo)); err != nil {
		return "", err
	}

	if len(frames) > 0 {
		if err := writeCSV(filepath.Join(runDir, trajectoryFile), trajectoryHeader, trajectoryRows(frames)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func bondOrderRows(bo *reaxff.BondOrders) [][]string {
	var rows [][]string
	for i := 0; i < bo.N; i++ {
		for j := i + 1; j < bo.N; j++ {
			if bo.UncorrectedTotal.At(i, j) == 0 {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				formatFloat(bo.Sigma.At(i, j)),
				formatFloat(bo.Pi.At(i, j)),
				formatFloat(bo.PiPi.At(i, j)),
				formatFloat(bo.Total.At(i, j)),
				formatFloat(bo.UncorrectedTotal.At(i, j)),
			})
		}
	}
	return rows
}

func trajectoryRows(frames []md.Frame) [][]string {
	rows := make([][]string, len(frames))
	for i, f := range frames {
		rows[i] = []string{
			strconv.Itoa(f.Step),
			formatFloat(f.Time),
			formatFloat(f.Kinetic),
			formatFloat(f.Potential),
			formatFloat(f.Total),
			formatFloat(f.Temperature),
		}
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// List returns every readable report, oldest first.
func (s *Store) List() ([]Report, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Report{}, nil
		}
		return nil, err
	}

	runs := make([]Report, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		r, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *r)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, reportFile))
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func readCSV(path string, columns int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = columns
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", path)
	}
	return records[1:], nil
}

func parseFloats(record []string) ([]float64, error) {
	out := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Store) LoadBondOrders(runID string) ([]PairRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, bondOrderFile), len(bondOrderHeader))
	if err != nil {
		return nil, err
	}

	pairs := make([]PairRecord, 0, len(records))
	for line, record := range records {
		v, err := parseFloats(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bondOrderFile, line+2, err)
		}
		pairs = append(pairs, PairRecord{
			I: int(v[0]), J: int(v[1]),
			Sigma: v[2], Pi: v[3], PiPi: v[4],
			Total: v[5], UncorrectedTotal: v[6],
		})
	}
	return pairs, nil
}

func (s *Store) LoadTrajectory(runID string) ([]md.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, trajectoryFile), len(trajectoryHeader))
	if err != nil {
		return nil, err
	}

	frames := make([]md.Frame, 0, len(records))
	for line, record := range records {
		v, err := parseFloats(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
		}
		frames = append(frames, md.Frame{
			Step: int(v[0]), Time: v[1],
			Kinetic: v[2], Potential: v[3], Total: v[4], Temperature: v[5],
		})
	}
	return frames, nil
}
