package dataset

import (
	"errors"
	"strings"
	"testing"
)

const validCSV = `biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var
MUC1,Mucin,↑ PDAC,12.0,4.0,2.0,1.0
MSLN,Surface,↑ PDAC,10.0,2.0,1.5,0.5
SMAD4,Suppressor,↓ PDAC,1.5,0.5,9.0,3.0
`

func TestParseCSVValid(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Biomarkers) != 3 {
		t.Fatalf("got %d biomarkers, want 3", len(ds.Biomarkers))
	}

	muc1, err := ds.Get("MUC1")
	if err != nil {
		t.Fatal(err)
	}
	if !muc1.Oncogenic || muc1.Suppressor {
		t.Errorf("MUC1 flags = onc:%v sup:%v, want onc only", muc1.Oncogenic, muc1.Suppressor)
	}
	if muc1.Stats.Tumor.Mean != 12.0 || muc1.Stats.Healthy.Variance != 1.0 {
		t.Errorf("MUC1 stats wrong: %+v", muc1.Stats)
	}

	smad4, _ := ds.Get("SMAD4")
	if !smad4.Suppressor || smad4.Oncogenic {
		t.Errorf("SMAD4 flags = onc:%v sup:%v, want sup only", smad4.Oncogenic, smad4.Suppressor)
	}
}

// Source spreadsheets use legacy column names and a BOM; both are
// mapped to the canonical schema.
func TestParseCSVHeaderAliases(t *testing.T) {
	csv := "\ufeffSerum Protein Biomarker,Category,Indication,tumor_mean,tumor_var,healthy_mean,healthy_var\n" +
		"CA19-9,Glycoprotein,↑ PDAC,8.0,2.0,1.0,0.4\n"

	ds, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ds.Get("CA19-9"); err != nil {
		t.Errorf("aliased columns not mapped: %v", err)
	}
}

func TestParseCSVSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{
			"missing columns",
			"biomarker_name,category\nMUC1,Mucin\n",
		},
		{
			"non-numeric mean",
			"biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var\nMUC1,Mucin,↑,high,4,2,1\n",
		},
		{
			"duplicate name",
			"biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var\nMUC1,Mucin,↑,12,4,2,1\nMUC1,Mucin,↑,12,4,2,1\n",
		},
		{
			"indication without direction",
			"biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var\nMUC1,Mucin,unknown,12,4,2,1\n",
		},
		{
			"negative variance",
			"biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var\nMUC1,Mucin,↑,12,-4,2,1\n",
		},
		{
			"empty dataset",
			"biomarker_name,category,indication,tumor_mean,tumor_var,healthy_mean,healthy_var\n",
		},
	}

	for _, tc := range cases {
		_, err := ParseCSV(strings.NewReader(tc.csv))
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Errorf("%s: expected SchemaError, got %v", tc.name, err)
		}
	}
}

func TestDatasetCatalog(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatal(err)
	}

	onc := ds.Oncogenic()
	if len(onc) != 2 {
		t.Errorf("oncogenic = %v, want MUC1 and MSLN", onc)
	}
	sup := ds.Suppressors()
	if len(sup) != 1 || sup[0] != "SMAD4" {
		t.Errorf("suppressors = %v, want [SMAD4]", sup)
	}

	order, groups := ds.ByCategory()
	if len(order) != 3 {
		t.Errorf("categories = %v, want 3 in first-seen order", order)
	}
	if order[0] != "Mucin" {
		t.Errorf("first category = %q, want Mucin", order[0])
	}
	if len(groups["Mucin"]) != 1 {
		t.Errorf("Mucin group = %v", groups["Mucin"])
	}

	stats := ds.Statistics()
	if stats.TotalBiomarkers != 3 || stats.OncogenicCount != 2 || stats.SuppressorCount != 1 {
		t.Errorf("statistics = %+v", stats)
	}
}

func TestFromBiomarkersDedup(t *testing.T) {
	ds := FromBiomarkers([]Biomarker{
		{Name: "MUC1"},
		{Name: "MUC1"},
		{Name: "MSLN"},
	})
	if len(ds.Biomarkers) != 2 {
		t.Errorf("got %d biomarkers, want 2", len(ds.Biomarkers))
	}
}
