// Package dataloader reads the tabular outputs of the flow solver runs.
package dataloader

// Column names of the BKM integral dataset.
const (
	CaseField        = "Case"
	ReField          = "Re"
	BKMIntegralField = "BKM_Integral"
	ErrorField       = "Error"
)

// BKMFields are the columns of the BKM integral dataset in file order.
var BKMFields = []string{CaseField, ReField, BKMIntegralField, ErrorField}

// Record is one run of a flow case.
type Record struct {
	Case        string  // name of the flow case
	Re          float64 // Reynolds number
	BKMIntegral float64 // time integral of the vorticity supremum norm
	Error       float64 // symmetric uncertainty of BKMIntegral
}

// Cases returns the distinct case names in order of first appearance.
func Cases(records []Record) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Case] {
			continue
		}
		seen[r.Case] = true
		names = append(names, r.Case)
	}
	return names
}

// Group returns the records of each case keyed by case name.
func Group(records []Record) map[string][]Record {
	m := make(map[string][]Record)
	for _, r := range records {
		m[r.Case] = append(m[r.Case], r)
	}
	return m
}
