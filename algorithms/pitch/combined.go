package pitch

// Result carries one estimator's output for a segment
type Result struct {
	Frequency  float64 `json:"frequency"`  // Estimated fundamental in Hz, 0 when unvoiced
	Confidence float64 `json:"confidence"` // Confidence score (0-1)
	Method     string  `json:"method"`     // Detection method used
}

// CombinedEstimator fuses the autocorrelation and HPS estimators by
// confidence-weighted averaging; when only one is confident its output is
// used verbatim.
type CombinedEstimator struct {
	autocorr *AutocorrelationEstimator
	hps      *HPSEstimator
}

// NewCombinedEstimator creates the fused estimator used by the advanced
// detection mode.
func NewCombinedEstimator(sampleRate int, minFreq, maxFreq float64, numHarmonics int) *CombinedEstimator {
	return &CombinedEstimator{
		autocorr: NewAutocorrelationEstimator(sampleRate, minFreq, maxFreq),
		hps:      NewHPSEstimator(sampleRate, numHarmonics),
	}
}

// Estimate runs both estimators and fuses their outputs.
//
// Fusion policy:
//   - both confident: frequency is the confidence-weighted average,
//     confidence the arithmetic mean
//   - one confident: that estimator's output verbatim
//   - neither: (0, 0)
func (ce *CombinedEstimator) Estimate(segment []float64) Result {
	freq1, conf1 := ce.autocorr.Estimate(segment)
	freq2, conf2 := ce.hps.Estimate(segment)

	result := Result{Method: "combined"}

	switch {
	case conf1 > 0 && conf2 > 0:
		totalConf := conf1 + conf2
		result.Frequency = (freq1*conf1 + freq2*conf2) / totalConf
		result.Confidence = (conf1 + conf2) / 2.0
	case conf1 > 0:
		result.Frequency = freq1
		result.Confidence = conf1
	case conf2 > 0:
		result.Frequency = freq2
		result.Confidence = conf2
	}

	return result
}
