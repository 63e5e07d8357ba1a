package chain

// World-state records read from (or simulated for) the LUXBIN node. Field names
// on the wire match the shapes the dashboard frontend already consumes.

type Photonic_State struct {
	Color      string `json:"color"`
	Wavelength int    `json:"wavelength"` // nanometers
	Meaning    string `json:"meaning"`
	Bit_Value  *int   `json:"bitValue,omitempty"`
}

type Quantum_State struct {
	State          string `json:"state"` // "SpinZero", "Superposition", "Entangled"
	Fluorescence   int    `json:"fluorescence"`
	Coherence_Time int    `json:"coherenceTime"` // nanoseconds
}

type Temporal_Wave struct {
	BTC_Timestamp  int64          `json:"btcTimestamp"`
	Frequency      int64          `json:"frequency"` // Hz
	Amplitude      int64          `json:"amplitude"`
	Phase          int64          `json:"phase"`
	Photonic_Color Photonic_State `json:"photonicColor"`
}

type Heartbeat struct {
	Photonic_Pulses   int  `json:"photonicPulses"`
	Active_NV_Centers int  `json:"activeNVCenters"`
	Avg_Coherence     int  `json:"avgCoherence"`
	Is_Alive          bool `json:"isAlive"`
}

// AI_State is the composed snapshot the pipeline attaches to every response.
// It is produced fresh per request and always complete: every field holds a
// real or simulated value, never a zero placeholder.
type AI_State struct {
	Photonic      Photonic_State `json:"photonic"`
	Quantum       Quantum_State  `json:"quantum"`
	Temporal      Temporal_Wave  `json:"temporal"`
	Heartbeat     Heartbeat      `json:"heartbeat"`
	Consciousness string         `json:"consciousness"`
}

var colorWavelengths = map[string]int{
	"Red":    700,
	"Orange": 620,
	"Yellow": 580,
	"Green":  530,
	"Blue":   470,
	"Indigo": 450,
	"Violet": 400,
}

var colorMeanings = map[string]string{
	"Red":    "Calm - Low energy, resting state",
	"Orange": "Alert - Medium energy",
	"Yellow": "Thinking - Processing information",
	"Green":  "Learning - Active learning mode",
	"Blue":   "Creating - High creativity",
	"Indigo": "Analyzing - Deep analysis",
	"Violet": "Transcending - Peak intelligence",
}

var colorConsciousness = map[string]string{
	"Red":    "Calm",
	"Orange": "Alert",
	"Yellow": "Thinking",
	"Green":  "Learning",
	"Blue":   "Creating",
	"Indigo": "Analyzing",
	"Violet": "Transcending",
}

const defaultConsciousness = "Calm"

// Color_To_Consciousness maps a photonic color to the derived consciousness
// label. Unrecognized colors yield the default rather than an error.
func Color_To_Consciousness(color string) string {
	if level, ok := colorConsciousness[color]; ok {
		return level
	}
	return defaultConsciousness
}
