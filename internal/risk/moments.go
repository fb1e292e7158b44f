package risk

import "math"

// =============================================================================
// Moment Estimation
// =============================================================================

// Mean 산술 평균. 빈 시계열은 0
// Neumaier compensated summation으로 누적 (float64 원소보다 넓은 유효 정밀도).
// 첫 원소 기준으로 shift 후 합산하므로 동일값 시계열의 평균은 정확히 그 값
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	shift := values[0]
	var acc compensatedSum
	for _, v := range values {
		acc.add(v - shift)
	}
	return shift + acc.value()/float64(len(values))
}

// SampleStdDev Bessel 보정(N-1) 표본 표준편차
// mean은 같은 시계열의 Mean 결과여야 함 (재계산하지 않음).
// 관측이 2개 미만이면 0
func SampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var acc compensatedSum
	for _, v := range values {
		diff := v - mean
		acc.add(diff * diff)
	}
	return math.Sqrt(acc.value() / float64(len(values)-1))
}

// compensatedSum Neumaier summation accumulator
type compensatedSum struct {
	sum float64
	c   float64
}

func (s *compensatedSum) add(v float64) {
	t := s.sum + v
	if math.Abs(s.sum) >= math.Abs(v) {
		s.c += (s.sum - t) + v
	} else {
		s.c += (v - t) + s.sum
	}
	s.sum = t
}

func (s *compensatedSum) value() float64 {
	return s.sum + s.c
}
