package risk

import (
	"math"
	"math/rand"
	"time"
)

// DefaultSampleCount Monte Carlo 합성 샘플 크기
const DefaultSampleCount = 10000

// Sampler 정규분포 합성 샘플 생성기 (Box-Muller)
// 실행당 한 번만 시드됨. 분석 도중 재시드 없음
type Sampler struct {
	rng *rand.Rand
}

// NewSampler 새 샘플러 생성 (seed 0 = wall clock)
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NormalSample N(mean, deviation²)를 근사하는 count개의 값 생성
// 쌍 단위로 생성: u1, u2 ∈ (0, 1], r = sqrt(-2 ln u1), θ = 2π u2,
// mean + deviation·r·cos θ, mean + deviation·r·sin θ.
// count는 짝수여야 함 (홀수면 마지막 sin 값은 버림).
// deviation == 0은 전제조건 위반: 호출자가 먼저 거부해야 함
func (s *Sampler) NormalSample(mean, deviation float64, count int) []float64 {
	if count <= 0 {
		return nil
	}

	sample := make([]float64, count)
	for i := 0; i < count; i += 2 {
		u1 := s.uniform()
		u2 := s.uniform()

		radius := math.Sqrt(-2 * math.Log(u1))
		theta := 2 * math.Pi * u2

		sample[i] = mean + deviation*radius*math.Cos(theta)
		if i+1 < count {
			sample[i+1] = mean + deviation*radius*math.Sin(theta)
		}
	}
	return sample
}

// uniform (0, 1] 균등분포. 0이 나오면 ln이 발산하므로 제외
func (s *Sampler) uniform() float64 {
	return 1 - s.rng.Float64()
}
