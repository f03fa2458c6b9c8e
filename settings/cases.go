package settings

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Names of the flow cases run by the solver. The name of a case is the name
// of its case directory.
const (
	TurbulentFlow       = "turbulentFlow"
	VortexRing          = "vortexRing"
	KolmogorovFlow      = "kolmogorovFlow"
	OscillatoryFlow     = "oscillatoryFlow"
	ExtremeGradientFlow = "extremeGradientFlow"
	NonPeriodicFlow     = "nonPeriodicFlow"
	TurbulentFlowS13    = "turbulentFlow_s13"
)

var caseColors = map[string]color.Color{
	TurbulentFlow:       colornames.Blue,
	VortexRing:          colornames.Green,
	KolmogorovFlow:      colornames.Red,
	OscillatoryFlow:     colornames.Purple,
	ExtremeGradientFlow: colornames.Cyan,
	NonPeriodicFlow:     colornames.Yellow,
	TurbulentFlowS13:    colornames.Gray,
}

// ReferenceColor is the color of the reference power-law line.
var ReferenceColor color.Color = colornames.Orange

var sortedCases []string

func init() {
	for name := range caseColors {
		sortedCases = append(sortedCases, name)
	}
	sort.Strings(sortedCases)
}

// Missing is returned when a setting is not one of the known options.
type Missing struct {
	Prefix  string
	Options []string
}

func (m Missing) Error() string {
	return fmt.Sprintf("%s: acceptable options: %v", m.Prefix, m.Options)
}

// Cases returns the known case names in sorted order.
func Cases() []string {
	c := make([]string, len(sortedCases))
	copy(c, sortedCases)
	return c
}

// CaseColor returns the plot color of the case. An unknown case returns a
// Missing error.
func CaseColor(name string) (color.Color, error) {
	c, ok := caseColors[name]
	if !ok {
		return nil, Missing{
			Prefix:  "case " + name + " not found",
			Options: Cases(),
		}
	}
	return c, nil
}

// CaseLabel returns the legend label of a case. Underscores become spaces and
// every word is title cased, so turbulentFlow_s13 is "Turbulentflow S13".
func CaseLabel(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

// CheckCases returns a Missing error naming every case in names that is not a
// known case, or nil if all are known.
func CheckCases(names []string) error {
	var unknown []string
	for _, name := range names {
		if _, ok := caseColors[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if unknown == nil {
		return nil
	}
	return Missing{
		Prefix:  fmt.Sprintf("unknown cases %v", unknown),
		Options: Cases(),
	}
}
