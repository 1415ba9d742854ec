package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/immunogate/backend/internal/engine"
)

// SchemaError reports invalid upstream data. The run aborts before
// simulation; nothing is recovered.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "schema error: " + e.Msg }

func schemaErrorf(format string, args ...interface{}) error {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

// Column aliases seen in source spreadsheets are mapped to the
// canonical schema before validation.
var headerAliases = map[string]string{
	"serum protein biomarker": "biomarker_name",
	"biomarker":               "biomarker_name",
	"category":                "category",
	"indication":              "indication",
}

var requiredColumns = []string{
	"biomarker_name", "category", "indication",
	"tumor_mean", "tumor_var", "healthy_mean", "healthy_var",
}

// ParseCSV reads and validates a biomarker dataset. It returns a
// SchemaError when required columns are missing, numeric fields do not
// parse, names repeat, or an indication lacks a direction tag.
func ParseCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, schemaErrorf("failed to read header: %v", err)
	}

	index := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		index[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, schemaErrorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	ds := &Dataset{byName: make(map[string]int)}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, schemaErrorf("failed to read row %d: %v", line+1, err)
		}
		line++

		b, err := parseRow(record, index, line)
		if err != nil {
			return nil, err
		}
		if _, dup := ds.byName[b.Name]; dup {
			return nil, schemaErrorf("duplicate biomarker name %q at row %d", b.Name, line)
		}
		ds.byName[b.Name] = len(ds.Biomarkers)
		ds.Biomarkers = append(ds.Biomarkers, b)
	}

	if len(ds.Biomarkers) == 0 {
		return nil, schemaErrorf("dataset contains no biomarker rows")
	}
	return ds, nil
}

func parseRow(record []string, index map[string]int, line int) (Biomarker, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("biomarker_name")
	category := field("category")
	indication := field("indication")
	if name == "" || category == "" || indication == "" {
		return Biomarker{}, schemaErrorf("row %d has empty required fields", line)
	}

	oncogenic := strings.Contains(indication, "↑")
	suppressor := strings.Contains(indication, "↓")
	if !oncogenic && !suppressor {
		return Biomarker{}, schemaErrorf("row %d: indication %q carries neither ↑ nor ↓", line, indication)
	}

	numeric := func(col string) (float64, error) {
		raw := field(col)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, schemaErrorf("row %d: column %s is not numeric: %q", line, col, raw)
		}
		return v, nil
	}

	tumorMean, err := numeric("tumor_mean")
	if err != nil {
		return Biomarker{}, err
	}
	tumorVar, err := numeric("tumor_var")
	if err != nil {
		return Biomarker{}, err
	}
	healthyMean, err := numeric("healthy_mean")
	if err != nil {
		return Biomarker{}, err
	}
	healthyVar, err := numeric("healthy_var")
	if err != nil {
		return Biomarker{}, err
	}
	if tumorVar < 0 || healthyVar < 0 {
		return Biomarker{}, schemaErrorf("row %d: variance must be non-negative", line)
	}

	return Biomarker{
		Name:        name,
		Category:    category,
		Indication:  indication,
		Oncogenic:   oncogenic,
		Suppressor:  suppressor,
		TumorMean:   tumorMean,
		TumorVar:    tumorVar,
		HealthyMean: healthyMean,
		HealthyVar:  healthyVar,
		Stats: engine.BiomarkerStats{
			Tumor:   engine.PopulationStats{Mean: tumorMean, Variance: tumorVar},
			Healthy: engine.PopulationStats{Mean: healthyMean, Variance: healthyVar},
		},
	}, nil
}

// FromBiomarkers rebuilds a Dataset from already-validated rows, e.g.
// rows loaded back from the session store.
func FromBiomarkers(biomarkers []Biomarker) *Dataset {
	ds := &Dataset{byName: make(map[string]int)}
	for _, b := range biomarkers {
		if _, dup := ds.byName[b.Name]; dup {
			continue
		}
		ds.byName[b.Name] = len(ds.Biomarkers)
		ds.Biomarkers = append(ds.Biomarkers, b)
	}
	return ds
}
