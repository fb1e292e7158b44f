package risk

import (
	"fmt"
	"time"
)

// =============================================================================
// Risk Profile
// =============================================================================

// 0–1 정규화 구간. 표준편차/VaR가 이미 [0,1] 분수라고 가정 (퍼센트 변환 전용)
const (
	normFloor = 0.0
	normCap   = 1.0
)

// Profile 자산군 리스크 프로파일
// ⭐ 두 VaR 추정치는 독립적으로 계산되며 평균/보정하지 않음
type Profile struct {
	RunID         string            `json:"run_id"`
	Label         string            `json:"label"`        // 정규화된 라벨
	DisplayName   string            `json:"display_name"` // 최초 관측된 원본 라벨
	Observations  int               `json:"observations"`
	Mean          float64           `json:"mean"`
	StdDev        float64           `json:"std_dev"`
	MonteCarloVaR float64           `json:"monte_carlo_var"` // 합성 샘플 5% 분위수
	AnalyticVaR   float64           `json:"analytic_var"`    // Riemann sum 경계
	ReferenceVaR  float64           `json:"reference_var"`   // closed-form 정규 분위수 (진단용)
	SampleCount   int               `json:"sample_count"`
	Integration   IntegrationResult `json:"integration"`
	ComputedAt    time.Time         `json:"computed_at"`
}

// StabilityScore 100 - StdDev·100
// 통계량이 아닌 표시용 변환: StdDev가 [0,1] 분수라고 가정함
func (p *Profile) StabilityScore() float64 {
	return 100 - toPercent(p.StdDev)
}

// VaRRange 두 VaR 추정치 중 작은 값/큰 값
func (p *Profile) VaRRange() (lo, hi float64) {
	if p.MonteCarloVaR < p.AnalyticVaR {
		return p.MonteCarloVaR, p.AnalyticVaR
	}
	return p.AnalyticVaR, p.MonteCarloVaR
}

// MinVaRPercent 작은 VaR의 퍼센트 표현
func (p *Profile) MinVaRPercent() float64 {
	lo, _ := p.VaRRange()
	return toPercent(lo)
}

// MaxVaRPercent 큰 VaR의 퍼센트 표현
func (p *Profile) MaxVaRPercent() float64 {
	_, hi := p.VaRRange()
	return toPercent(hi)
}

// ExportLine label,mean,stability,min_var_pct,max_var_pct (소수점 4자리)
func (p *Profile) ExportLine() string {
	return fmt.Sprintf("%s,%.4f,%.4f,%.4f,%.4f",
		p.DisplayName, p.Mean, p.StabilityScore(), p.MinVaRPercent(), p.MaxVaRPercent())
}

func toPercent(v float64) float64 {
	return (v - normFloor) / (normCap - normFloor) * 100
}
