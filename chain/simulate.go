package chain

import "time"

// Simulators stand in for an unreachable node. Each is a pure function of
// wall-clock time: two calls within the same time bucket produce identical
// values, so the chat widget sees a stable "mood" even with no node running.

var quantumStates = [3]string{"SpinZero", "Superposition", "Entangled"}

var quantumFluorescence = map[string]int{
	"SpinZero":      1000,
	"Superposition": 650,
	"Entangled":     800,
}

var photonicCycle = [7]string{"Red", "Orange", "Yellow", "Green", "Blue", "Indigo", "Violet"}

// Simulate_Photonic_State cycles through the spectrum one color per second.
func Simulate_Photonic_State(t time.Time) Photonic_State {
	color := photonicCycle[t.Unix()%7]
	state := Photonic_State{
		Color:      color,
		Wavelength: colorWavelengths[color],
		Meaning:    colorMeanings[color],
	}
	// Red and Blue double as the binary encoding colors.
	if color == "Red" {
		zero := 0
		state.Bit_Value = &zero
	} else if color == "Blue" {
		one := 1
		state.Bit_Value = &one
	}
	return state
}

// Simulate_Quantum_State buckets by 5-second windows.
func Simulate_Quantum_State(t time.Time) Quantum_State {
	ts := t.Unix()
	state := quantumStates[(ts/5)%3]
	return Quantum_State{
		State:          state,
		Fluorescence:   quantumFluorescence[state],
		Coherence_Time: 50000 + int(ts%50)*1000, // 50-100 microseconds
	}
}

// Simulate_Temporal_Wave derives the acoustic wave from the current Unix
// timestamp, standing in for the Bitcoin block timestamp.
func Simulate_Temporal_Wave(t time.Time) Temporal_Wave {
	ts := t.Unix()
	frequency := int64(100_000_000) + ts%900_000_000 // 100MHz - 1GHz

	var color string
	switch {
	case frequency < 300_000_000:
		color = "Red"
	case frequency < 500_000_000:
		color = "Yellow"
	case frequency < 700_000_000:
		color = "Green"
	default:
		color = "Blue"
	}

	return Temporal_Wave{
		BTC_Timestamp: ts,
		Frequency:     frequency,
		Amplitude:     ts%1000 + 100,
		Phase:         ts % 360,
		Photonic_Color: Photonic_State{
			Color:      color,
			Wavelength: colorWavelengths[color],
			Meaning:    colorConsciousness[color],
		},
	}
}

// Simulate_Heartbeat buckets by second.
func Simulate_Heartbeat(t time.Time) Heartbeat {
	ts := t.Unix()
	pulses := 60 + int(ts%40)       // 60-100 pulses/second
	centers := 50 + int(ts%50)      // 50-100 active centers
	coherence := 50000 + int(ts%50)*1000 // 50-100 microseconds
	return Heartbeat{
		Photonic_Pulses:   pulses,
		Active_NV_Centers: centers,
		Avg_Coherence:     coherence,
		Is_Alive:          pulses > 0 && centers > 0,
	}
}
