package dataset

import (
	"fmt"

	"github.com/immunogate/backend/internal/engine"
)

// Biomarker is one validated row of the uploaded dataset. Immutable
// once loaded.
type Biomarker struct {
	Name       string                `json:"name"`
	Category   string                `json:"category"`
	Indication string                `json:"indication"`
	Oncogenic  bool                  `json:"oncogenic"`
	Suppressor bool                  `json:"suppressor"`
	Stats      engine.BiomarkerStats `json:"-"`

	TumorMean   float64 `json:"tumor_mean"`
	TumorVar    float64 `json:"tumor_var"`
	HealthyMean float64 `json:"healthy_mean"`
	HealthyVar  float64 `json:"healthy_var"`
}

// Dataset is the validated biomarker catalog for one session.
type Dataset struct {
	Biomarkers []Biomarker

	byName map[string]int
}

// Get looks up a biomarker by its unique name.
func (d *Dataset) Get(name string) (Biomarker, error) {
	i, ok := d.byName[name]
	if !ok {
		return Biomarker{}, fmt.Errorf("unknown biomarker %q", name)
	}
	return d.Biomarkers[i], nil
}

// Oncogenic lists the names of markers flagged upregulated in tumor.
func (d *Dataset) Oncogenic() []string {
	var names []string
	for _, b := range d.Biomarkers {
		if b.Oncogenic {
			names = append(names, b.Name)
		}
	}
	return names
}

// Suppressors lists markers flagged downregulated in tumor, excluding
// mixed-indication markers.
func (d *Dataset) Suppressors() []string {
	var names []string
	for _, b := range d.Biomarkers {
		if b.Suppressor && !b.Oncogenic {
			names = append(names, b.Name)
		}
	}
	return names
}

// ByCategory groups the catalog for tabular display, preserving first-
// seen category order.
func (d *Dataset) ByCategory() ([]string, map[string][]Biomarker) {
	var order []string
	groups := make(map[string][]Biomarker)
	for _, b := range d.Biomarkers {
		if _, ok := groups[b.Category]; !ok {
			order = append(order, b.Category)
		}
		groups[b.Category] = append(groups[b.Category], b)
	}
	return order, groups
}

// Statistics summarizes the catalog.
type Statistics struct {
	TotalBiomarkers int            `json:"total_biomarkers"`
	Categories      int            `json:"categories"`
	CategoryCounts  map[string]int `json:"category_counts"`
	OncogenicCount  int            `json:"oncogenic_count"`
	SuppressorCount int            `json:"suppressor_count"`
}

func (d *Dataset) Statistics() Statistics {
	stats := Statistics{
		TotalBiomarkers: len(d.Biomarkers),
		CategoryCounts:  make(map[string]int),
	}
	for _, b := range d.Biomarkers {
		stats.CategoryCounts[b.Category]++
		if b.Oncogenic {
			stats.OncogenicCount++
		}
		if b.Suppressor && !b.Oncogenic {
			stats.SuppressorCount++
		}
	}
	stats.Categories = len(stats.CategoryCounts)
	return stats
}
