package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/immunogate/backend/internal/dataset"
	"github.com/immunogate/backend/internal/diagram"
	"github.com/immunogate/backend/internal/engine"
	"github.com/immunogate/backend/internal/metrics"
	"github.com/immunogate/backend/internal/storage/models"
	"github.com/immunogate/backend/internal/storage/sqlite"
	"github.com/immunogate/backend/pkg/logger"
)

// Service orchestrates dataset ingest and analysis runs on top of the
// session store and the analysis engine.
type Service struct {
	store    *sqlite.Client
	analyzer *engine.Analyzer
}

func NewService(store *sqlite.Client, analyzer *engine.Analyzer) *Service {
	return &Service{
		store:    store,
		analyzer: analyzer,
	}
}

// DatasetSummary is returned after a successful upload.
type DatasetSummary struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Statistics dataset.Statistics `json:"statistics"`
}

// UploadDataset validates a CSV payload and stores the catalog for the
// session. Schema violations abort the upload with no rows stored.
func (s *Service) UploadDataset(name string, csvData []byte) (*DatasetSummary, error) {
	ds, err := dataset.ParseCSV(bytes.NewReader(csvData))
	if err != nil {
		metrics.DatasetUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	record := &models.DatasetRecord{
		ID:        uuid.New().String(),
		Name:      name,
		RowCount:  len(ds.Biomarkers),
		CreatedAt: time.Now(),
	}

	rows := make([]models.BiomarkerRow, 0, len(ds.Biomarkers))
	for _, b := range ds.Biomarkers {
		rows = append(rows, models.BiomarkerRow{
			DatasetID:   record.ID,
			Name:        b.Name,
			Category:    b.Category,
			Indication:  b.Indication,
			TumorMean:   b.TumorMean,
			TumorVar:    b.TumorVar,
			HealthyMean: b.HealthyMean,
			HealthyVar:  b.HealthyVar,
		})
	}

	if err := s.store.InsertDataset(record, rows); err != nil {
		metrics.DatasetUploads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	metrics.DatasetUploads.WithLabelValues("accepted").Inc()
	metrics.DatasetRows.Observe(float64(record.RowCount))

	return &DatasetSummary{
		ID:         record.ID,
		Name:       record.Name,
		Statistics: ds.Statistics(),
	}, nil
}

// CatalogGroup is one category of biomarkers for tabular display.
type CatalogGroup struct {
	Category   string              `json:"category"`
	Biomarkers []dataset.Biomarker `json:"biomarkers"`
}

// Catalog returns the stored biomarkers grouped by category.
func (s *Service) Catalog(datasetID string) ([]CatalogGroup, error) {
	ds, err := s.loadDataset(datasetID)
	if err != nil {
		return nil, err
	}

	order, groups := ds.ByCategory()
	out := make([]CatalogGroup, 0, len(order))
	for _, category := range order {
		out = append(out, CatalogGroup{Category: category, Biomarkers: groups[category]})
	}
	return out, nil
}

// RunRequest selects the antigen pair and run parameters.
type RunRequest struct {
	DatasetID     string
	AntigenA      string
	AntigenB      string
	Samples       int
	Seed          int64
	Rule          engine.ThresholdRule
	ThresholdA    *float64
	ThresholdB    *float64
	Costimulatory string
}

// RunResponse is a completed, stored analysis run.
type RunResponse struct {
	ID        string          `json:"id"`
	DatasetID string          `json:"dataset_id"`
	Result    *engine.Result  `json:"result"`
	Diagram   diagram.Diagram `json:"diagram"`
	CreatedAt time.Time       `json:"created_at"`
}

// Run executes the full gate comparison for one antigen pair and stores
// the outcome. onStrategy, when non-nil, observes each strategy as it
// is evaluated (used by the streaming handler).
func (s *Service) Run(req RunRequest, onStrategy func(engine.Strategy) error) (*RunResponse, error) {
	started := time.Now()

	ds, err := s.loadDataset(req.DatasetID)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	markerA, err := ds.Get(req.AntigenA)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	markerB, err := ds.Get(req.AntigenB)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	engineReq := engine.Request{
		AntigenA:   engine.Antigen{Name: markerA.Name, Stats: markerA.Stats},
		AntigenB:   engine.Antigen{Name: markerB.Name, Stats: markerB.Stats},
		Samples:    req.Samples,
		Seed:       req.Seed,
		Rule:       req.Rule,
		ThresholdA: req.ThresholdA,
		ThresholdB: req.ThresholdB,
	}

	result, err := s.analyzer.RunStream(engineReq, onStrategy)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	resp := &RunResponse{
		ID:        uuid.New().String(),
		DatasetID: req.DatasetID,
		Result:    result,
		Diagram:   s.buildDiagram(result.Recommended, req.Costimulatory),
		CreatedAt: time.Now(),
	}

	resultJSON, err := json.Marshal(resp)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	err = s.store.InsertAnalysis(&models.AnalysisRecord{
		ID:         resp.ID,
		DatasetID:  req.DatasetID,
		AntigenA:   req.AntigenA,
		AntigenB:   req.AntigenB,
		Samples:    result.Samples,
		Seed:       result.Seed,
		ResultJSON: string(resultJSON),
		CreatedAt:  resp.CreatedAt,
	})
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.AnalysisTotal.WithLabelValues("completed").Inc()
	metrics.AnalysisDuration.WithLabelValues("full_comparison").Observe(time.Since(started).Seconds())
	metrics.SelectivityRatio.Observe(result.Recommended.Score.Ratio)

	logger.Info("Analysis completed",
		zap.String("analysis_id", resp.ID),
		zap.String("recommended_gate", result.Recommended.Gate),
		zap.String("mode", string(result.Recommended.Mode)),
		zap.Float64("selectivity_ratio", result.Recommended.Score.Ratio),
	)

	return resp, nil
}

// GetRun re-fetches a stored run by id.
func (s *Service) GetRun(id string) (*RunResponse, error) {
	record, err := s.store.GetAnalysis(id)
	if err != nil {
		return nil, err
	}

	var resp RunResponse
	if err := json.Unmarshal([]byte(record.ResultJSON), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	return &resp, nil
}

func (s *Service) loadDataset(id string) (*dataset.Dataset, error) {
	rows, err := s.store.GetBiomarkers(id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s not found or empty", id)
	}

	biomarkers := make([]dataset.Biomarker, 0, len(rows))
	for _, r := range rows {
		biomarkers = append(biomarkers, dataset.Biomarker{
			Name:        r.Name,
			Category:    r.Category,
			Indication:  r.Indication,
			Oncogenic:   strings.ContainsRune(r.Indication, '↑'),
			Suppressor:  strings.ContainsRune(r.Indication, '↓'),
			TumorMean:   r.TumorMean,
			TumorVar:    r.TumorVar,
			HealthyMean: r.HealthyMean,
			HealthyVar:  r.HealthyVar,
			Stats: engine.BiomarkerStats{
				Tumor:   engine.PopulationStats{Mean: r.TumorMean, Variance: r.TumorVar},
				Healthy: engine.PopulationStats{Mean: r.HealthyMean, Variance: r.HealthyVar},
			},
		})
	}
	return dataset.FromBiomarkers(biomarkers), nil
}

func (s *Service) buildDiagram(recommended engine.Strategy, costim string) diagram.Diagram {
	antigenB := recommended.AntigenB
	if recommended.Gate == "NOT" {
		// NOT targets antigen A only; the second scFv is omitted.
		antigenB = ""
	}
	return diagram.Build(recommended.AntigenA, antigenB, recommended.Gate, costim)
}
