package report

import (
	"fmt"
	"io"

	"github.com/wonny/aegis-risk/internal/risk"
)

// WriteLine writes the single export line for an analyzed asset
// Format: Label,Mean,Stability,Min_VaR,Max_VaR
func WriteLine(w io.Writer, p *risk.Profile) error {
	if p == nil {
		return fmt.Errorf("export: nil profile")
	}
	if _, err := io.WriteString(w, p.ExportLine()+"\n"); err != nil {
		return fmt.Errorf("export %s: %w", p.Label, err)
	}
	return nil
}

// ResultView is the dashboard JSON body
// 필드명은 기존 대시보드(fetch 콜백)가 기대하는 키 그대로 유지
type ResultView struct {
	Type      string `json:"type"`
	Mean      string `json:"mean"`
	Stability string `json:"stability"`
	Min       string `json:"min"`
	Max       string `json:"max"`
}

// NewResultView formats a profile the way the dashboard displays it
func NewResultView(p *risk.Profile) ResultView {
	return ResultView{
		Type:      p.DisplayName,
		Mean:      fmt.Sprintf("%.4f", p.Mean),
		Stability: fmt.Sprintf("%.4f%%", p.StabilityScore()),
		Min:       fmt.Sprintf("%.4f%%", p.MinVaRPercent()),
		Max:       fmt.Sprintf("%.4f%%", p.MaxVaRPercent()),
	}
}
