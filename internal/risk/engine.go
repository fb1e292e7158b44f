package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Engine - 분석 파이프라인 오케스트레이션
// =============================================================================

// Engine 한 실행(run)의 Return Store와 샘플러를 소유
// ⭐ SSOT: 전제조건 검사(관측 수, 표준편차 ≠ 0)는 여기서만.
// 하위 수치 함수들은 에러를 반환하지 않고 전제조건만 문서화함.
// Not safe for concurrent use: 요청/실행마다 새 Engine을 만들 것
type Engine struct {
	config  Config
	store   *Store
	sampler *Sampler
}

// NewEngine 새 리스크 엔진 생성
func NewEngine(config Config) (*Engine, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return &Engine{
		config:  config,
		store:   NewStore(config.BucketCount),
		sampler: NewSampler(config.Seed),
	}, nil
}

// Config 엔진 설정
func (e *Engine) Config() Config {
	return e.config
}

// Store 엔진이 소유한 Return Store
func (e *Engine) Store() *Store {
	return e.store
}

// Ingest (label, value) 관측 하나를 저장
func (e *Engine) Ingest(label string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v for %q", ErrInvalidObservation, value, label)
	}

	series, err := e.store.GetOrCreate(label)
	if err != nil {
		return err
	}
	series.Append(value)
	return nil
}

// Analyze 라벨의 리스크 프로파일 계산
// ErrLabelNotFound: 관측된 적 없는 라벨
// ErrDegenerateData: 관측 2개 미만 또는 표준편차 0 (VaR 미계산)
func (e *Engine) Analyze(label string) (*Profile, error) {
	series, ok := e.store.Lookup(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}

	values := series.Values()

	// Fail-closed: 최소 관측 수 체크
	if len(values) < MinObservations {
		return nil, fmt.Errorf("%w: %s has %d observations, need %d",
			ErrDegenerateData, series.Label(), len(values), MinObservations)
	}

	mean := Mean(values)
	stdDev := SampleStdDev(values, mean)
	if stdDev == 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return nil, fmt.Errorf("%w: %s standard deviation is %v over %d observations",
			ErrDegenerateData, series.Label(), stdDev, len(values))
	}

	// Monte Carlo: 샘플은 이 호출 안에서만 존재
	sample := e.sampler.NormalSample(mean, stdDev, e.config.SampleCount)
	mcVaR := EmpiricalQuantile(sample, e.config.TailProbability)

	// Analytic: 샘플이 아닌 moment에서 직접 계산
	integration := IntegratedVaR(mean, stdDev, e.config.Integration)

	profile := &Profile{
		RunID:         uuid.New().String(),
		Label:         series.Label(),
		DisplayName:   series.DisplayName(),
		Observations:  len(values),
		Mean:          mean,
		StdDev:        stdDev,
		MonteCarloVaR: mcVaR,
		AnalyticVaR:   integration.VaR,
		ReferenceVaR:  ReferenceVaR(mean, stdDev, e.config.TailProbability),
		SampleCount:   len(sample),
		Integration:   integration,
		ComputedAt:    time.Now(),
	}

	e.store.setProfile(series.Label(), profile)
	return profile, nil
}

// Outcome AnalyzeAll의 라벨별 결과
type Outcome struct {
	Label   string
	Profile *Profile
	Err     error
}

// AnalyzeAll 모든 라벨을 최초 관측 순서대로 하나씩 끝까지 분석
func (e *Engine) AnalyzeAll() []Outcome {
	labels := e.store.Labels()
	outcomes := make([]Outcome, 0, len(labels))

	for _, label := range labels {
		profile, err := e.Analyze(label)
		outcomes = append(outcomes, Outcome{
			Label:   label,
			Profile: profile,
			Err:     err,
		})
	}

	return outcomes
}
