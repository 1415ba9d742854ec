// Package diagram describes the personalized CAR receptor for a chosen
// strategy as plain structured records. Rendering to SVG or PDF is the
// front end's job; nothing here emits markup.
package diagram

// Component is one labeled element of the receptor diagram with layout
// hints in diagram coordinates.
type Component struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Diagram is the full receptor description for the winning strategy.
type Diagram struct {
	Title         string      `json:"title"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Gate          string      `json:"gate"`
	Costimulatory string      `json:"costimulatory"`
	Components    []Component `json:"components"`
}

// Costimulatory domain options.
const (
	CostimCD28 = "CD28"
	Costim41BB = "4-1BB"
)

const (
	canvasWidth  = 700
	canvasHeight = 480
	membraneY    = 200
)

// Build lays out the receptor for one antigen pair. AntigenB may be
// empty for single-scFv designs (the NOT gate targets antigen A only).
func Build(antigenA, antigenB, gate, costim string) Diagram {
	if costim != Costim41BB {
		costim = CostimCD28
	}

	d := Diagram{
		Title:         "Personalized CAR-T Structure",
		Width:         canvasWidth,
		Height:        canvasHeight,
		Gate:          gate,
		Costimulatory: costim,
	}

	d.Components = append(d.Components,
		Component{Kind: "membrane", Label: "T-Cell Membrane", X: 50, Y: membraneY, Width: 600, Height: 20},
		Component{Kind: "scfv", Label: antigenA, X: 250, Y: 130, Width: 100, Height: 70},
	)
	if antigenB != "" {
		d.Components = append(d.Components,
			Component{Kind: "scfv", Label: antigenB, X: 450, Y: 130, Width: 100, Height: 70},
			Component{Kind: "gate_badge", Label: gate, X: 350, Y: 60, Width: 80, Height: 30},
		)
	}

	d.Components = append(d.Components,
		Component{Kind: "hinge", Label: "Hinge Region", X: 330, Y: 175, Width: 40, Height: 25},
		Component{Kind: "transmembrane", Label: "Transmembrane Domain", X: 335, Y: membraneY, Width: 30, Height: 20},
		Component{Kind: "costimulatory", Label: costim, X: 320, Y: 250, Width: 60, Height: 50},
		Component{Kind: "cd3zeta", Label: "CD3ζ", X: 320, Y: 320, Width: 60, Height: 50},
	)
	return d
}
