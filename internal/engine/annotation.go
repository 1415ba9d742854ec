package engine

// Annotation is the clinical note attached to a recommended gate.
type Annotation struct {
	Explanation string `json:"explanation"`
	SafetyNote  string `json:"safety_note"`
}

var gateAnnotations = map[Gate]Annotation{
	GateAND: {
		Explanation: "Both tumor antigens must be present for activation, maximizing tumor specificity and minimizing healthy tissue damage.",
		SafetyNote:  "Lowest off-target risk. Suitable as a first-line design.",
	},
	GateOR: {
		Explanation: "Either antigen can trigger activation. Increases sensitivity to heterogeneous tumors at the cost of more off-target exposure.",
		SafetyNote:  "Monitor healthy tissue closely; consider dose escalation.",
	},
	GateNOT: {
		Explanation: "Activates when the primary antigen is absent. Useful against antigen-loss escape variants.",
		SafetyNote:  "Requires extensive safety monitoring; consider as second-line.",
	},
	GateXOR: {
		Explanation: "Activates when exactly one antigen is present, targeting heterogeneous populations while sparing dual-positive healthy cells.",
		SafetyNote:  "Moderate safety profile.",
	},
	GateXNOR: {
		Explanation: "Activates when both antigens share the same state, targeting consistent expression patterns.",
		SafetyNote:  "Balanced profile; standard monitoring.",
	},
}

// Annotate returns the clinical note for a gate by name. Unknown names
// get an empty annotation rather than an error; annotation is advisory.
func Annotate(gateName string) Annotation {
	g, err := ParseGate(gateName)
	if err != nil {
		return Annotation{}
	}
	return gateAnnotations[g]
}
