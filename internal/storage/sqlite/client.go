package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/immunogate/backend/internal/storage/models"
	"github.com/immunogate/backend/pkg/logger"
)

// Client is the session store. The default path is ":memory:"; nothing
// outlives the process unless the operator points it at a file.
type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	logger.Info("SQLite session store initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS biomarkers (
		dataset_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		indication TEXT NOT NULL,
		tumor_mean REAL NOT NULL,
		tumor_var REAL NOT NULL,
		healthy_mean REAL NOT NULL,
		healthy_var REAL NOT NULL,
		PRIMARY KEY (dataset_id, name),
		FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_biomarkers_dataset ON biomarkers(dataset_id);

	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		dataset_id TEXT NOT NULL,
		antigen_a TEXT NOT NULL,
		antigen_b TEXT NOT NULL,
		samples INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_dataset ON analyses(dataset_id);
	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertDataset(record *models.DatasetRecord, rows []models.BiomarkerRow) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO datasets (id, name, row_count, created_at) VALUES (?, ?, ?, ?)`,
		record.ID,
		record.Name,
		record.RowCount,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO biomarkers (dataset_id, name, category, indication, tumor_mean, tumor_var, healthy_mean, healthy_var)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare biomarker insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.Exec(
			record.ID,
			row.Name,
			row.Category,
			row.Indication,
			row.TumorMean,
			row.TumorVar,
			row.HealthyMean,
			row.HealthyVar,
		)
		if err != nil {
			return fmt.Errorf("failed to insert biomarker %q: %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	logger.Info("Dataset stored",
		zap.String("dataset_id", record.ID),
		zap.Int("rows", record.RowCount),
	)
	return nil
}

func (c *Client) GetDataset(id string) (*models.DatasetRecord, error) {
	var record models.DatasetRecord
	var createdAt int64

	err := c.db.QueryRow(
		`SELECT id, name, row_count, created_at FROM datasets WHERE id = ?`, id,
	).Scan(&record.ID, &record.Name, &record.RowCount, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	record.CreatedAt = time.Unix(createdAt, 0)
	return &record, nil
}

func (c *Client) GetBiomarkers(datasetID string) ([]models.BiomarkerRow, error) {
	rows, err := c.db.Query(`
		SELECT dataset_id, name, category, indication, tumor_mean, tumor_var, healthy_mean, healthy_var
		FROM biomarkers WHERE dataset_id = ? ORDER BY rowid
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get biomarkers: %w", err)
	}
	defer rows.Close()

	var result []models.BiomarkerRow
	for rows.Next() {
		var r models.BiomarkerRow
		err := rows.Scan(
			&r.DatasetID,
			&r.Name,
			&r.Category,
			&r.Indication,
			&r.TumorMean,
			&r.TumorVar,
			&r.HealthyMean,
			&r.HealthyVar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

func (c *Client) InsertAnalysis(record *models.AnalysisRecord) error {
	_, err := c.db.Exec(`
		INSERT INTO analyses (id, dataset_id, antigen_a, antigen_b, samples, seed, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.DatasetID,
		record.AntigenA,
		record.AntigenB,
		record.Samples,
		record.Seed,
		record.ResultJSON,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	logger.Info("Analysis recorded",
		zap.String("analysis_id", record.ID),
		zap.String("antigen_a", record.AntigenA),
		zap.String("antigen_b", record.AntigenB),
	)
	return nil
}

func (c *Client) GetAnalysis(id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	var createdAt int64

	err := c.db.QueryRow(`
		SELECT id, dataset_id, antigen_a, antigen_b, samples, seed, result_json, created_at
		FROM analyses WHERE id = ?
	`, id).Scan(
		&record.ID,
		&record.DatasetID,
		&record.AntigenA,
		&record.AntigenB,
		&record.Samples,
		&record.Seed,
		&record.ResultJSON,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	record.CreatedAt = time.Unix(createdAt, 0)
	return &record, nil
}
