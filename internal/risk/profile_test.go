package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Presentation(t *testing.T) {
	p := &Profile{
		DisplayName:   "Stocks",
		Mean:          0.001667,
		StdDev:        0.0189,
		MonteCarloVaR: -0.03,
		AnalyticVaR:   -0.029,
	}

	assert.InDelta(t, 98.11, p.StabilityScore(), 1e-9)

	lo, hi := p.VaRRange()
	assert.Equal(t, -0.03, lo)
	assert.Equal(t, -0.029, hi)
	assert.InDelta(t, -3.0, p.MinVaRPercent(), 1e-9)
	assert.InDelta(t, -2.9, p.MaxVaRPercent(), 1e-9)

	assert.Equal(t, "Stocks,0.0017,98.1100,-3.0000,-2.9000", p.ExportLine())
}

func TestProfile_VaRRangeOrderIndependent(t *testing.T) {
	a := &Profile{MonteCarloVaR: -0.02, AnalyticVaR: -0.05}
	b := &Profile{MonteCarloVaR: -0.05, AnalyticVaR: -0.02}

	loA, hiA := a.VaRRange()
	loB, hiB := b.VaRRange()
	assert.Equal(t, loA, loB)
	assert.Equal(t, hiA, hiB)
	assert.Equal(t, -0.05, loA)
}

func TestProfile_StabilityAssumesFractionScale(t *testing.T) {
	// a std dev above 1 (e.g. returns already in percent) drives the score negative
	p := &Profile{StdDev: 1.5}
	assert.InDelta(t, -50.0, p.StabilityScore(), 1e-9)
}
