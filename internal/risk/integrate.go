package risk

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// =============================================================================
// Analytic Tail Estimation (Riemann sum)
// =============================================================================

// IntegrationConfig 정규분포 PDF 수치적분 설정
type IntegrationConfig struct {
	TargetMass  float64 `json:"target_mass"`  // 누적 확률 목표 (기본: 0.05)
	Step        float64 `json:"step"`         // 사각형 폭 (기본: 0.0001)
	SigmaCutoff float64 `json:"sigma_cutoff"` // 시작점 mean - k·deviation (기본: 5)
	MaxSteps    int     `json:"max_steps"`    // 무한루프 방지 상한
}

// DefaultIntegrationConfig 기본 적분 설정
func DefaultIntegrationConfig() IntegrationConfig {
	return IntegrationConfig{
		TargetMass:  DefaultTailProbability,
		Step:        0.0001,
		SigmaCutoff: 5,
		MaxSteps:    10_000_000,
	}
}

// IntegrationResult 적분 결과
type IntegrationResult struct {
	VaR       float64 `json:"var"`       // 누적 확률이 목표에 도달한 경계 x
	Mass      float64 `json:"mass"`      // 실제 누적 확률
	Steps     int     `json:"steps"`     // 사용한 사각형 수
	Converged bool    `json:"converged"` // Mass >= TargetMass
}

// NormalDensity 정규분포 확률밀도 φ(x; mean, deviation)
func NormalDensity(x, mean, deviation float64) float64 {
	z := (x - mean) / deviation
	return math.Exp(-0.5*z*z) / (deviation * math.Sqrt(2*math.Pi))
}

// IntegratedVaR left-endpoint Riemann sum으로 φ를 mean - SigmaCutoff·deviation부터
// 오른쪽으로 적분하여 누적 확률이 TargetMass 이상이 되는 x를 반환
// 반환값은 마지막 사각형의 오른쪽 경계.
// deviation <= 0은 전제조건 위반: 적분 없이 Converged=false로 즉시 반환.
// MaxSteps에 도달해도 종료 (Converged=false)
func IntegratedVaR(mean, deviation float64, cfg IntegrationConfig) IntegrationResult {
	start := mean - cfg.SigmaCutoff*deviation
	result := IntegrationResult{VaR: start}

	if !(deviation > 0) || !(cfg.Step > 0) || cfg.MaxSteps <= 0 || math.IsInf(deviation, 0) {
		return result
	}

	var mass float64
	steps := 0
	for mass < cfg.TargetMass && steps < cfg.MaxSteps {
		// x를 누적 덧셈 대신 인덱스로 계산 (반올림 오차 누적 방지)
		x := start + float64(steps)*cfg.Step
		mass += NormalDensity(x, mean, deviation) * cfg.Step
		steps++
	}

	result.VaR = start + float64(steps)*cfg.Step
	result.Mass = mass
	result.Steps = steps
	result.Converged = mass >= cfg.TargetMass
	return result
}

// ReferenceVaR 적합된 정규분포의 p-분위수 (closed form, gonum)
// Monte Carlo/Riemann 추정치의 결정적 기준값
func ReferenceVaR(mean, deviation, p float64) float64 {
	if !(deviation > 0) || p <= 0 || p >= 1 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: deviation}.Quantile(p)
}
