package models

import "time"

type DatasetRecord struct {
	ID        string
	Name      string
	RowCount  int
	CreatedAt time.Time
}

type BiomarkerRow struct {
	DatasetID   string
	Name        string
	Category    string
	Indication  string
	TumorMean   float64
	TumorVar    float64
	HealthyMean float64
	HealthyVar  float64
}

type AnalysisRecord struct {
	ID         string
	DatasetID  string
	AntigenA   string
	AntigenB   string
	Samples    int
	Seed       int64
	ResultJSON string
	CreatedAt  time.Time
}
