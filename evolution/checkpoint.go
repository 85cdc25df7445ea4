package evolution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/genome"
)

// CheckpointVersion gates restores: a checkpoint written by a different
// format is refused rather than half-loaded.
const CheckpointVersion = 2

// Checkpoint is the serialised state of a run: enough to resume the
// loop, not the RNG stream position. A resumed run is a fresh draw from
// the recorded seed, not a replay.
type Checkpoint struct {
	Version    int                `json:"version"`
	SavedAt    time.Time          `json:"saved_at"`
	Seed       int64              `json:"seed"`
	Config     *EvolutionConfig   `json:"config"`
	Generation int                `json:"generation"`
	Population []IndividualRecord `json:"population"`
	BestEver   *IndividualRecord  `json:"best_ever,omitempty"`
	History    []GenerationStats  `json:"history,omitempty"`
}

// IndividualRecord is one individual flattened for storage.
type IndividualRecord struct {
	Genome    *genome.GameGenome `json:"genome"`
	Fitness   float64            `json:"fitness"`
	Evaluated bool               `json:"evaluated"`
	Metrics   *fitness.Metrics   `json:"metrics,omitempty"`
}

func recordOf(ind *Individual) IndividualRecord {
	return IndividualRecord{
		Genome:    ind.Genome,
		Fitness:   ind.Fitness,
		Evaluated: ind.Evaluated,
		Metrics:   ind.Metrics,
	}
}

func (rec *IndividualRecord) individual() *Individual {
	return &Individual{
		Genome:    rec.Genome,
		Fitness:   rec.Fitness,
		Evaluated: rec.Evaluated,
		Metrics:   rec.Metrics,
	}
}

// SaveCheckpoint writes the engine state to path via tmp+rename, so a
// crash mid-write leaves the previous checkpoint intact.
func (e *EvolutionEngine) SaveCheckpoint(path string) error {
	if e.Population == nil {
		return fmt.Errorf("no population to checkpoint")
	}

	cp := Checkpoint{
		Version:    CheckpointVersion,
		SavedAt:    time.Now(),
		Seed:       e.Config.Seed,
		Config:     e.Config,
		Generation: e.Population.Generation,
		Population: make([]IndividualRecord, len(e.Population.Individuals)),
		History:    e.History,
	}
	for i, ind := range e.Population.Individuals {
		cp.Population[i] = recordOf(ind)
	}
	if e.BestEver != nil {
		rec := recordOf(e.BestEver)
		cp.BestEver = &rec
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("checkpoint dir: %w", err)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads and version-checks a checkpoint file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	if cp.Version != CheckpointVersion {
		return nil, fmt.Errorf("checkpoint version %d, want %d", cp.Version, CheckpointVersion)
	}
	if cp.Config == nil {
		return nil, fmt.Errorf("checkpoint has no config")
	}
	return &cp, nil
}

// ResumeFromCheckpoint rebuilds an engine from a checkpoint file. The
// loop picks up at the recorded generation with the recorded population
// and scores; only the RNG restarts.
func ResumeFromCheckpoint(path string) (*EvolutionEngine, error) {
	cp, err := LoadCheckpoint(path)
	if err != nil {
		return nil, err
	}

	engine, err := NewEvolutionEngine(cp.Config)
	if err != nil {
		return nil, err
	}

	individuals := make([]*Individual, len(cp.Population))
	for i := range cp.Population {
		individuals[i] = cp.Population[i].individual()
	}
	engine.Population = NewPopulation(individuals)
	engine.Population.Generation = cp.Generation
	engine.History = cp.History
	if cp.BestEver != nil {
		engine.BestEver = cp.BestEver.individual()
	}

	// Plateau bookkeeping restarts at the resume point; the window
	// counts from here, not from the original improvement.
	engine.lastImproved = cp.Generation
	return engine, nil
}

// AutoCheckpointer saves on an interval of generations. Wire its Tick
// into OnGenerationComplete.
type AutoCheckpointer struct {
	Engine   *EvolutionEngine
	Path     string
	Interval int

	lastSaved int
	// Err holds the most recent save failure. Saving is best-effort
	// inside the callback; a failed save never stops the run.
	Err error
}

func NewAutoCheckpointer(engine *EvolutionEngine, path string, interval int) *AutoCheckpointer {
	return &AutoCheckpointer{
		Engine:    engine,
		Path:      path,
		Interval:  interval,
		lastSaved: -1,
	}
}

// Tick saves when the generation lands on an interval boundary.
// Generation 0 is skipped: there is nothing to resume that
// InitializePopulation would not rebuild.
func (ac *AutoCheckpointer) Tick(generation int) {
	if ac.Interval <= 0 || generation == 0 {
		return
	}
	if generation <= ac.lastSaved || generation%ac.Interval != 0 {
		return
	}
	if err := ac.Engine.SaveCheckpoint(ac.Path); err != nil {
		ac.Err = err
		return
	}
	ac.lastSaved = generation
}

// SaveFinal checkpoints unconditionally, for shutdown paths.
func (ac *AutoCheckpointer) SaveFinal() error {
	return ac.Engine.SaveCheckpoint(ac.Path)
}
