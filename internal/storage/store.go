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

	"github.com/san-kum/sortviz/internal/race"
)

const (
	metadataFile = "metadata.json"
	progressFile = "progress.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunParams describes how a race was configured.
type RunParams struct {
	Seed       int64
	Size       int
	MinValue   int
	MaxValue   int
	FPS        int
	Pacing     float64
	Algorithms []string
}

type SlotSummary struct {
	Label     string  `json:"label"`
	Status    string  `json:"status"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Length    int     `json:"length"`
	Sorted    bool    `json:"sorted"`
	Publishes uint64  `json:"publishes"`
	Error     string  `json:"error,omitempty"`
}

type RunMetadata struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Seed       int64         `json:"seed"`
	Size       int           `json:"size"`
	MinValue   int           `json:"min_value"`
	MaxValue   int           `json:"max_value"`
	FPS        int           `json:"fps"`
	Pacing     float64       `json:"pacing"`
	Algorithms []string      `json:"algorithms"`
	DurationMS float64       `json:"duration_ms"`
	Frames     int           `json:"frames"`
	TimedOut   bool          `json:"timed_out"`
	Slots      []SlotSummary `json:"slots"`
}

// Labels returns the slot labels in roster order.
func (m *RunMetadata) Labels() []string {
	out := make([]string, len(m.Slots))
	for i, s := range m.Slots {
		out[i] = s.Label
	}
	return out
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func summarize(p RunParams, res *race.Result) RunMetadata {
	now := time.Now()
	meta := RunMetadata{
		ID:         fmt.Sprintf("race_%d", now.UnixMilli()),
		Timestamp:  now,
		Seed:       p.Seed,
		Size:       p.Size,
		MinValue:   p.MinValue,
		MaxValue:   p.MaxValue,
		FPS:        p.FPS,
		Pacing:     p.Pacing,
		Algorithms: p.Algorithms,
		DurationMS: ms(res.Duration),
		Frames:     res.Frames,
		TimedOut:   res.TimedOut,
		Slots:      make([]SlotSummary, len(res.Slots)),
	}
	for i, sl := range res.Slots {
		meta.Slots[i] = SlotSummary{
			Label:     sl.Label,
			Status:    sl.Status,
			ElapsedMS: ms(sl.Elapsed),
			Length:    len(sl.Final),
			Sorted:    sl.Sorted,
			Publishes: sl.Publishes,
		}
		if sl.Err != nil {
			meta.Slots[i].Error = sl.Err.Error()
		}
	}
	return meta
}

// Save writes metadata.json and progress.csv into a new run directory and
// returns the run id.
func (s *Store) Save(p RunParams, res *race.Result) (string, error) {
	meta := summarize(p, res)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, progressFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := append([]string{"time"}, meta.Labels()...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range res.Progress {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.FormatFloat(res.Times[i], 'f', 6, 64))
		for _, v := range frame {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadProgress reads the sampled sortedness curves of a run: one row per
// frame, one column per slot.
func (s *Store) LoadProgress(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, progressFile))
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

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	progress := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		frame := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				val = 0
			}
			frame = append(frame, val)
		}
		progress = append(progress, frame)
	}

	return progress, times, nil
}

// Series extracts the column of one slot from progress rows.
func Series(progress [][]float64, slot int) []float64 {
	out := make([]float64, len(progress))
	for i, frame := range progress {
		if slot < len(frame) {
			out[i] = frame[slot]
		}
	}
	return out
}
