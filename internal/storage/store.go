package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kmuro/fieldsim/internal/body"
	"github.com/kmuro/fieldsim/internal/sim"
	"github.com/kmuro/fieldsim/internal/world"
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

// BallMeta records the per-ball constants that frames leave out, so a
// stored run can be replayed or rendered without the original config.
type BallMeta struct {
	Radius      float64 `json:"radius"`
	Mass        float64 `json:"mass"`
	Restitution float64 `json:"restitution"`
	Color       string  `json:"color"`
}

// DescribeBalls extracts BallMeta for every ball in registry order,
// matching the column order of stored frames.
func DescribeBalls(w *world.World) []BallMeta {
	var metas []BallMeta
	for _, e := range w.Registry.Entities() {
		b, ok := e.(*body.Ball)
		if !ok {
			continue
		}
		metas = append(metas, BallMeta{
			Radius:      b.Radius(),
			Mass:        b.Mass(),
			Restitution: b.Restitution(),
			Color:       b.Color(),
		})
	}
	return metas
}

type RunInfo struct {
	Scene       string
	Dt          float64
	Duration    float64
	Seed        int64
	ArenaWidth  float64
	ArenaHeight float64
	Balls       []BallMeta
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	ArenaWidth  float64            `json:"arena_width"`
	ArenaHeight float64            `json:"arena_height"`
	Balls       []BallMeta         `json:"balls"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", info.Scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       info.Scene,
		Timestamp:   time.Now(),
		Seed:        info.Seed,
		Dt:          info.Dt,
		Duration:    info.Duration,
		ArenaWidth:  info.ArenaWidth,
		ArenaHeight: info.ArenaHeight,
		Balls:       info.Balls,
		Metrics:     result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Frames[0] {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+4*len(frame))
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, b := range frame {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.VX, 'f', 6, 64),
				strconv.FormatFloat(b.VY, 'f', 6, 64))
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
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
		return []sim.Frame{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([]sim.Frame, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 1 || (len(record)-1)%4 != 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := make(sim.Frame, 0, (len(record)-1)/4)
		ok := true
		for j := 1; j+3 < len(record); j += 4 {
			vals := [4]float64{}
			for k := 0; k < 4; k++ {
				v, err := strconv.ParseFloat(record[j+k], 64)
				if err != nil {
					ok = false
					break
				}
				vals[k] = v
			}
			if !ok {
				break
			}
			frame = append(frame, sim.BodyState{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]})
		}
		if !ok {
			continue
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return frames, times, nil
}
