package risk

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// =============================================================================
// Return Series
// =============================================================================

// initialCapacity 신규 시계열의 초기 용량 (이후 append로 2배씩 증가)
const initialCapacity = 50

// Series 자산군별 수익률 시계열 (append-only)
// 관측 순서는 보존되지만 통계는 순서와 무관
type Series struct {
	label       string // 정규화된 키 (대문자, trailing 제어문자 제거)
	displayName string // 최초 관측 시 원본 라벨 (trim만 적용)
	returns     []float64
}

// Label 정규화된 라벨
func (s *Series) Label() string {
	return s.label
}

// DisplayName 최초 관측된 원본 라벨
func (s *Series) DisplayName() string {
	return s.displayName
}

// Append 수익률 추가. 기존 값은 절대 잃지 않음
func (s *Series) Append(value float64) {
	s.returns = append(s.returns, value)
}

// Len 관측 수
func (s *Series) Len() int {
	return len(s.returns)
}

// Values 수익률 복사본 반환 (호출자가 자유롭게 수정 가능)
func (s *Series) Values() []float64 {
	return slices.Clone(s.returns)
}

// =============================================================================
// Return Store
// =============================================================================

type storeEntry struct {
	series  *Series
	profile *Profile
}

// Store 고정 버킷 수의 해시 테이블 (separate chaining)
// ⭐ SSOT: 전역 상태 없음. 실행(run)마다 인스턴스를 소유
// Not safe for concurrent use.
type Store struct {
	buckets [][]*storeEntry
	order   []*storeEntry // 최초 관측 순서
}

// NewStore 버킷 수를 고정한 Store 생성
func NewStore(bucketCount int) *Store {
	if bucketCount <= 0 {
		bucketCount = 1
	}
	return &Store{
		buckets: make([][]*storeEntry, bucketCount),
	}
}

// NormalizeLabel 라벨 정규화
// 첫 CR/LF 이후는 버리고, 앞뒤 공백/제어문자 제거 후 대문자로 변환.
// "stocks\r\n"과 "Stocks"는 같은 키가 됨
func NormalizeLabel(raw string) (string, error) {
	trimmed := trimLabel(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, raw)
	}
	return strings.ToUpper(trimmed), nil
}

func trimLabel(raw string) string {
	if i := strings.IndexAny(raw, "\r\n"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// HashLabel 정규화된 라벨의 버킷 인덱스
// djb2 계열 polynomial rolling hash (seed 5381, base 33).
// 알파벳은 'A' 기준 오프셋 ('A'는 0 대신 3), 숫자는 26+digit, 그 외 문자는 고정 오프셋.
// uint64 overflow는 wrap-around이므로 음수 인덱스가 나올 수 없음
func HashLabel(normalized string, bucketCount int) int {
	if bucketCount <= 0 {
		return 0
	}

	total := uint64(5381)
	for _, r := range normalized {
		total = total*33 + charOffset(unicode.ToUpper(r))
	}
	return int(total % uint64(bucketCount))
}

func charOffset(r rune) uint64 {
	switch {
	case r == 'A':
		return 3
	case r > 'A' && r <= 'Z':
		return uint64(r - 'A')
	case r >= '0' && r <= '9':
		return 26 + uint64(r-'0')
	default:
		return 37
	}
}

// GetOrCreate 라벨의 시계열 조회, 없으면 생성
func (s *Store) GetOrCreate(label string) (*Series, error) {
	key, err := NormalizeLabel(label)
	if err != nil {
		return nil, err
	}

	idx := HashLabel(key, len(s.buckets))
	if e := findEntry(s.buckets[idx], key); e != nil {
		return e.series, nil
	}

	e := &storeEntry{
		series: &Series{
			label:       key,
			displayName: trimLabel(label),
			returns:     make([]float64, 0, initialCapacity),
		},
	}
	s.buckets[idx] = append(s.buckets[idx], e)
	s.order = append(s.order, e)
	return e.series, nil
}

// Lookup 라벨의 시계열 조회. 관측된 적 없으면 false
func (s *Store) Lookup(label string) (*Series, bool) {
	e := s.lookupEntry(label)
	if e == nil {
		return nil, false
	}
	return e.series, true
}

// Profile 라벨의 마지막 분석 결과. 분석 전이면 false
func (s *Store) Profile(label string) (*Profile, bool) {
	e := s.lookupEntry(label)
	if e == nil || e.profile == nil {
		return nil, false
	}
	return e.profile, true
}

func (s *Store) setProfile(label string, p *Profile) {
	if e := s.lookupEntry(label); e != nil {
		e.profile = p
	}
}

func (s *Store) lookupEntry(label string) *storeEntry {
	key, err := NormalizeLabel(label)
	if err != nil {
		return nil
	}
	return findEntry(s.buckets[HashLabel(key, len(s.buckets))], key)
}

func findEntry(chain []*storeEntry, key string) *storeEntry {
	for _, e := range chain {
		if e.series.label == key {
			return e
		}
	}
	return nil
}

// Labels 정규화된 라벨 목록 (최초 관측 순서)
func (s *Store) Labels() []string {
	labels := make([]string, 0, len(s.order))
	for _, e := range s.order {
		labels = append(labels, e.series.label)
	}
	return labels
}

// Len 저장된 자산군 수
func (s *Store) Len() int {
	return len(s.order)
}

// BucketCount 고정 버킷 수
func (s *Store) BucketCount() int {
	return len(s.buckets)
}
