package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/kmuro/fieldsim/internal/sim"
)

type ExportData struct {
	Scene       string             `json:"scene"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Seed        int64              `json:"seed"`
	ArenaWidth  float64            `json:"arena_width"`
	ArenaHeight float64            `json:"arena_height"`
	Balls       []BallMeta         `json:"balls"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	Frames      []sim.Frame        `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

func buildExport(info RunInfo, result *sim.Result) ExportData {
	return ExportData{
		Scene:       info.Scene,
		Dt:          info.Dt,
		Duration:    info.Duration,
		Seed:        info.Seed,
		ArenaWidth:  info.ArenaWidth,
		ArenaHeight: info.ArenaHeight,
		Balls:       info.Balls,
		Steps:       len(result.Times),
		Times:       result.Times,
		Frames:      result.Frames,
		Metrics:     result.Metrics,
	}
}

func ExportJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(info, result))
}

func ExportJSONFile(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, info, result)
}
