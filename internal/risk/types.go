package risk

import (
	"errors"
	"fmt"

	"github.com/wonny/aegis-risk/pkg/config"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrLabelNotFound 분석 대상 라벨이 이번 실행에서 한 번도 관측되지 않음
	ErrLabelNotFound = errors.New("label not found")
	// ErrDegenerateData 관측 2개 미만 또는 표준편차 0 (VaR 계산 불가)
	ErrDegenerateData = errors.New("degenerate data")
	// ErrInvalidLabel 빈 라벨 또는 정규화 후 빈 라벨
	ErrInvalidLabel = errors.New("invalid label")
	// ErrInvalidObservation NaN/Inf 수익률
	ErrInvalidObservation = errors.New("invalid observation")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// MinObservations 표본 표준편차에 필요한 최소 관측 수
const MinObservations = 2

// =============================================================================
// Engine Config
// =============================================================================

// Config 한 번의 분석 실행(run) 설정
// ⭐ SSOT: 재현성을 위해 모든 수치 파라미터를 명시적으로 기록
type Config struct {
	BucketCount     int               `json:"bucket_count"`     // Return Store 버킷 수 (기본: 11)
	SampleCount     int               `json:"sample_count"`     // 합성 샘플 수 (기본: 10000, 짝수)
	TailProbability float64           `json:"tail_probability"` // VaR tail (기본: 0.05)
	Integration     IntegrationConfig `json:"integration"`      // Riemann sum 설정
	Seed            int64             `json:"seed"`             // 0=wall clock
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{
		BucketCount:     11,
		SampleCount:     DefaultSampleCount,
		TailProbability: DefaultTailProbability,
		Integration:     DefaultIntegrationConfig(),
		Seed:            0, // 랜덤
	}
}

// ConfigFromSettings 환경/YAML 설정을 엔진 설정으로 변환
// 적분 목표 누적 확률은 tail 확률과 항상 같음
func ConfigFromSettings(rc config.RiskConfig) Config {
	return Config{
		BucketCount:     rc.BucketCount,
		SampleCount:     rc.SampleCount,
		TailProbability: rc.TailProbability,
		Integration: IntegrationConfig{
			TargetMass:  rc.TailProbability,
			Step:        rc.IntegrationStep,
			SigmaCutoff: rc.SigmaCutoff,
			MaxSteps:    rc.MaxSteps,
		},
		Seed: rc.Seed,
	}
}

// ValidateConfig 설정 유효성 검사
func ValidateConfig(config Config) error {
	if config.BucketCount <= 0 {
		return fmt.Errorf("%w: BucketCount must be > 0", ErrInvalidConfig)
	}
	if config.SampleCount <= 0 || config.SampleCount%2 != 0 {
		return fmt.Errorf("%w: SampleCount must be a positive even number", ErrInvalidConfig)
	}
	if config.TailProbability <= 0 || config.TailProbability >= 1 {
		return fmt.Errorf("%w: TailProbability must be between 0 and 1", ErrInvalidConfig)
	}
	if config.Integration.TargetMass <= 0 || config.Integration.TargetMass >= 1 {
		return fmt.Errorf("%w: Integration.TargetMass must be between 0 and 1", ErrInvalidConfig)
	}
	if config.Integration.Step <= 0 {
		return fmt.Errorf("%w: Integration.Step must be > 0", ErrInvalidConfig)
	}
	if config.Integration.SigmaCutoff <= 0 {
		return fmt.Errorf("%w: Integration.SigmaCutoff must be > 0", ErrInvalidConfig)
	}
	if config.Integration.MaxSteps <= 0 {
		return fmt.Errorf("%w: Integration.MaxSteps must be > 0", ErrInvalidConfig)
	}
	return nil
}
