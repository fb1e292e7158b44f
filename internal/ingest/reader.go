package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/wonny/aegis-risk/internal/risk"
	"github.com/wonny/aegis-risk/pkg/logger"
)

// Sink receives well-formed observations
type Sink interface {
	Ingest(label string, value float64) error
}

// Stats 수집 통계
type Stats struct {
	Lines    int `json:"lines"`
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}

// ctxCheckInterval lines between cancellation checks
const ctxCheckInterval = 4096

// Reader parses "label,value" lines
// ⭐ SSOT: CSV 파싱은 여기서만. 라벨 정규화는 risk.Store가 담당하므로
// 라벨 필드는 줄바꿈 문자를 포함한 원본 그대로 전달함
type Reader struct {
	logger *logger.Logger
}

// NewReader creates a new line reader
func NewReader(log *logger.Logger) *Reader {
	return &Reader{logger: log}
}

// ReadFile opens path and reads it into sink
func (r *Reader) ReadFile(ctx context.Context, path string, sink Sink) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open returns file: %w", err)
	}
	defer f.Close()

	return r.Read(ctx, f, sink)
}

// Read consumes src line by line
// 라벨/값이 없거나 값이 숫자가 아닌 줄(헤더 포함)은 건너뛰고 Skipped로 집계
func (r *Reader) Read(ctx context.Context, src io.Reader, sink Sink) (Stats, error) {
	var stats Stats
	br := bufio.NewReader(src)

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("read line %d: %w", stats.Lines+1, readErr)
		}
		if line == "" && readErr != nil {
			break
		}

		stats.Lines++
		if stats.Lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		label, value, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			r.skip(stats.Lines, "malformed line")
			continue
		}

		if err := sink.Ingest(label, value); err != nil {
			if errors.Is(err, risk.ErrInvalidLabel) || errors.Is(err, risk.ErrInvalidObservation) {
				stats.Skipped++
				r.skip(stats.Lines, err.Error())
				continue
			}
			return stats, fmt.Errorf("ingest line %d: %w", stats.Lines, err)
		}
		stats.Accepted++

		if readErr != nil {
			break
		}
	}

	return stats, nil
}

// parseLine splits "label,value[,...]"
func parseLine(line string) (string, float64, bool) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 2 {
		return "", 0, false
	}

	label := fields[0]
	if strings.TrimSpace(label) == "" {
		return "", 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, false
	}

	return label, value, true
}

func (r *Reader) skip(line int, reason string) {
	if r.logger == nil {
		return
	}
	r.logger.WithFields(map[string]interface{}{
		"line":   line,
		"reason": reason,
	}).Debug("Skipped observation")
}
