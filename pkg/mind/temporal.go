package mind

// PlasticityView is the basic epistemic snapshot of a state.
type PlasticityView struct {
	Plasticity float32 `json:"plasticity"`
	Stability  float32 `json:"stability"`
	Age        float32 `json:"age"`
}

// TemporalView is the full developmental snapshot: continuous time,
// crystallization rate, compound maturity, and the discrete event
// counters with their landmarks.
type TemporalView struct {
	Age                    float32 `json:"age"`
	Plasticity             float32 `json:"plasticity"`
	Velocity               float32 `json:"velocity"`
	Maturity               float32 `json:"maturity"`
	LastReinforcementAge   float32 `json:"last_reinforcement_age"`
	TimeSinceReinforcement float32 `json:"time_since_reinforcement"`
	TotalUpdates           int32   `json:"total_updates"`
	TotalReinforcements    int32   `json:"total_reinforcements"`
}

// CalibrationView is the minimal signal for comparing two independent
// states' developmental stage. It carries meta-cognitive scalars only,
// never memory content: no vectors, no weights, nothing that leaks what
// was experienced. Calibration, not convergence.
type CalibrationView struct {
	Age                float32 `json:"age"`
	Plasticity         float32 `json:"plasticity"`
	Velocity           float32 `json:"velocity"`
	Maturity           float32 `json:"maturity"`
	ReinforcementRatio float32 `json:"reinforcement_ratio"`
}

// Plasticity returns the basic epistemic view. Pure projection, no
// mutation.
func (s *State) Plasticity() PlasticityView {
	if s == nil {
		return PlasticityView{}
	}
	return PlasticityView{
		Plasticity: s.plasticity,
		Stability:  1 - s.plasticity,
		Age:        s.age,
	}
}

// Temporal returns the full temporal view.
func (s *State) Temporal() TemporalView {
	if s == nil {
		return TemporalView{}
	}
	stability := 1 - s.plasticity
	return TemporalView{
		Age:                    s.age,
		Plasticity:             s.plasticity,
		Velocity:               s.velocity,
		Maturity:               s.age * stability,
		LastReinforcementAge:   s.lastReinf,
		TimeSinceReinforcement: s.age - s.lastReinf,
		TotalUpdates:           s.totalUpdates,
		TotalReinforcements:    s.totalReinforcements,
	}
}

// Calibration returns the content-free calibration signal.
func (s *State) Calibration() CalibrationView {
	if s == nil {
		return CalibrationView{}
	}
	stability := 1 - s.plasticity
	v := CalibrationView{
		Age:        s.age,
		Plasticity: s.plasticity,
		Velocity:   s.velocity,
		Maturity:   s.age * stability,
	}
	if s.totalUpdates > 0 {
		v.ReinforcementRatio = float32(s.totalReinforcements) / float32(s.totalUpdates)
	}
	return v
}
