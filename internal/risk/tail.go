package risk

import (
	"math"
	"slices"
)

// DefaultTailProbability 5% tail
const DefaultTailProbability = 0.05

// EmpiricalVaR 합성 샘플의 5% 경험적 분위수 (Monte Carlo VaR)
// 손실 쪽(left tail) 값: 더 음수일수록 위험이 큼. 퍼센트 변환 전 원시 수익률 스케일
func EmpiricalVaR(sample []float64) float64 {
	return EmpiricalQuantile(sample, DefaultTailProbability)
}

// EmpiricalQuantile sample을 오름차순 정렬(in place)한 뒤 ⌈p·N⌉번째 순서통계량 반환
// zero-based로 N=10000, p=0.05 → index 499.
// NaN이 섞여 있으면 결과는 정의되지 않음. 빈 샘플은 0
func EmpiricalQuantile(sample []float64, p float64) float64 {
	if len(sample) == 0 {
		return 0
	}

	slices.Sort(sample)
	return sample[tailIndex(len(sample), p)]
}

// tailIndex ceil(p·n)-1, [0, n-1]로 clamp
// 1e-9는 0.05·10000 같은 곱이 500을 살짝 넘는 반올림 오차 흡수용
func tailIndex(n int, p float64) int {
	idx := int(math.Ceil(p*float64(n)-1e-9)) - 1
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
