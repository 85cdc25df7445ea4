package evolution

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// StatStore keeps the generation-statistics log in SQLite: one row per
// run, one per generation, and the top genomes of each generation as
// JSON. The rulebook command reads winners back out of it.
type StatStore struct {
	db *sql.DB
}

const statSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT    NOT NULL,
	style       TEXT    NOT NULL,
	population  INTEGER NOT NULL,
	generations INTEGER NOT NULL,
	seed        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS generations (
	run_id       INTEGER NOT NULL REFERENCES runs(id),
	generation   INTEGER NOT NULL,
	best_fitness REAL    NOT NULL,
	best_id      TEXT    NOT NULL,
	avg_fitness  REAL    NOT NULL,
	diversity    REAL    NOT NULL,
	evaluated    INTEGER NOT NULL,
	aggressive   INTEGER NOT NULL,
	recorded_at  TEXT    NOT NULL,
	PRIMARY KEY (run_id, generation)
);
CREATE TABLE IF NOT EXISTS genomes (
	run_id     INTEGER NOT NULL REFERENCES runs(id),
	generation INTEGER NOT NULL,
	rank       INTEGER NOT NULL,
	genome_id  TEXT    NOT NULL,
	fitness    REAL    NOT NULL,
	genome     TEXT    NOT NULL,
	PRIMARY KEY (run_id, generation, rank)
);
`

// OpenStatStore opens or creates the stats database at path.
func OpenStatStore(path string) (*StatStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	if _, err := db.Exec(statSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init stats schema: %w", err)
	}
	return &StatStore{db: db}, nil
}

func (s *StatStore) Close() error {
	return s.db.Close()
}

// BeginRun registers a run and returns its id for the rows that follow.
func (s *StatStore) BeginRun(cfg *EvolutionConfig) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, style, population, generations, seed)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		cfg.Style, cfg.PopulationSize, cfg.Generations, cfg.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// RecordGeneration appends one generation's summary line. Re-recording
// a generation (a resumed run replaying its resume point) overwrites.
func (s *StatStore) RecordGeneration(runID int64, st GenerationStats) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO generations
		 (run_id, generation, best_fitness, best_id, avg_fitness, diversity, evaluated, aggressive, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, st.Generation, st.BestFitness, st.BestID,
		st.AvgFitness, st.Diversity, st.Evaluated, st.Aggressive,
		st.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record generation %d: %w", st.Generation, err)
	}
	return nil
}

// RecordTopGenomes stores the generation's leaders as JSON, ranked from
// best. One transaction per generation keeps partial writes out.
func (s *StatStore) RecordTopGenomes(runID int64, generation int, top []*Individual) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record genomes: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO genomes (run_id, generation, rank, genome_id, fitness, genome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record genomes: %w", err)
	}
	defer stmt.Close()

	for rank, ind := range top {
		data, err := genome.SaveGenomeToJSON(ind.Genome)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("serialize genome %s: %w", ind.Genome.ID, err)
		}
		if _, err := stmt.Exec(runID, generation, rank, ind.Genome.ID, ind.Fitness, string(data)); err != nil {
			tx.Rollback()
			return fmt.Errorf("record genome %s: %w", ind.Genome.ID, err)
		}
	}
	return tx.Commit()
}

// LatestRun returns the most recently started run's id.
func (s *StatStore) LatestRun() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("stats db has no runs")
	}
	if err != nil {
		return 0, fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// BestGenomes loads the top genomes from a run's last recorded
// generation. runID 0 means the latest run.
func (s *StatStore) BestGenomes(runID int64, n int) ([]*Individual, error) {
	if runID == 0 {
		latest, err := s.LatestRun()
		if err != nil {
			return nil, err
		}
		runID = latest
	}

	rows, err := s.db.Query(
		`SELECT genome, fitness FROM genomes
		 WHERE run_id = ?
		   AND generation = (SELECT MAX(generation) FROM genomes WHERE run_id = ?)
		 ORDER BY rank LIMIT ?`,
		runID, runID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query genomes: %w", err)
	}
	defer rows.Close()

	var out []*Individual
	for rows.Next() {
		var data string
		var fit float64
		if err := rows.Scan(&data, &fit); err != nil {
			return nil, fmt.Errorf("scan genome row: %w", err)
		}
		g, err := genome.LoadGenomeFromJSON([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("parse stored genome: %w", err)
		}
		out = append(out, &Individual{Genome: g, Fitness: fit, Evaluated: true})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read genomes: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("run %d has no recorded genomes", runID)
	}
	return out, nil
}
