package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/trails/internal/automation"
)

// Store keeps headless run reports on disk, one directory per run holding
// metadata.json and series.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Rendered  int                `json:"rendered"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run report and returns its id. Metric values in the
// metadata are the last sample of each series.
func (s *Store) Save(preset string, seed int64, res *automation.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Scenario:  res.Scenario,
		Timestamp: now,
		Seed:      seed,
		Frames:    res.Frames,
		Rendered:  res.Rendered,
		Metrics:   make(map[string]float64, len(res.Series)),
	}
	for _, sr := range res.Series {
		meta.Metrics[sr.Metric.Name()] = sr.Metric.Value()
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"sample"}
	rows := 0
	for _, sr := range res.Series {
		header = append(header, sr.Metric.Name())
		rows = max(rows, len(sr.Values))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for _, sr := range res.Series {
			v := 0.0
			if i < len(sr.Values) {
				v = sr.Values[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the per-sample metric columns of a run, keyed by
// metric name.
func (s *Store) LoadSeries(runID string) (map[string][]float64, []string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return map[string][]float64{}, nil, nil
	}

	names := records[0][1:]
	series := make(map[string][]float64, len(names))
	for _, rec := range records[1:] {
		for j, name := range names {
			if j+1 >= len(rec) {
				break
			}
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				continue
			}
			series[name] = append(series[name], v)
		}
	}

	return series, names, nil
}
