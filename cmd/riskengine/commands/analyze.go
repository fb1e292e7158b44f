package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-risk/internal/ingest"
	"github.com/wonny/aegis-risk/internal/report"
	"github.com/wonny/aegis-risk/internal/risk"
	"github.com/wonny/aegis-risk/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <returns.csv> [label]",
	Short: "수익률 파일 분석",
	Long: `수익률 CSV를 읽어 자산의 리스크 프로파일을 계산합니다.

--all 지정 시 파일에 등장한 모든 자산을 최초 등장 순서대로 하나씩 분석하고
자산마다 한 줄씩 출력합니다. 변동이 없는 자산은 경고 로그 후 건너뜁니다.

Example:
  go run ./cmd/riskengine analyze returns.csv Stocks
  go run ./cmd/riskengine analyze returns.csv --all`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnalyze,
}

var (
	analyzeAll bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "analyze every label in the file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	switch {
	case analyzeAll && len(args) != 1:
		return fmt.Errorf("--all takes only the returns file")
	case !analyzeAll && len(args) != 2:
		return fmt.Errorf("label is required (or use --all)")
	}

	label := ""
	if len(args) == 2 {
		label = args[1]
	}
	return analyzeFile(cmd, args[0], label, analyzeAll)
}

// analyzeFile runs one engine over path and exports to stdout
func analyzeFile(cmd *cobra.Command, path, label string, all bool) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	engine, err := risk.NewEngine(risk.ConfigFromSettings(cfg.Risk))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	stats, err := ingest.NewReader(log).ReadFile(cmd.Context(), path, engine)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"file":     path,
		"lines":    stats.Lines,
		"accepted": stats.Accepted,
		"skipped":  stats.Skipped,
		"labels":   engine.Store().Len(),
	}).Info("Returns ingested")

	out := cmd.OutOrStdout()
	if all {
		return exportAll(out, engine, log)
	}

	profile, err := engine.Analyze(label)
	if err != nil {
		return err
	}
	logProfile(log, profile)

	return report.WriteLine(out, profile)
}

// exportAll writes one line per analyzable label
func exportAll(out io.Writer, engine *risk.Engine, log *logger.Logger) error {
	outcomes := engine.AnalyzeAll()
	if len(outcomes) == 0 {
		return fmt.Errorf("%w: file has no observations", risk.ErrLabelNotFound)
	}

	exported := 0
	for _, o := range outcomes {
		if o.Err != nil {
			log.WithError(o.Err).WithField("label", o.Label).Warn("Skipping asset")
			continue
		}

		logProfile(log, o.Profile)
		if err := report.WriteLine(out, o.Profile); err != nil {
			return err
		}
		exported++
	}

	if exported == 0 {
		return fmt.Errorf("%w: none of %d assets could be analyzed", risk.ErrDegenerateData, len(outcomes))
	}
	return nil
}

func logProfile(log *logger.Logger, p *risk.Profile) {
	entry := log.WithFields(map[string]interface{}{
		"run_id":        p.RunID,
		"label":         p.Label,
		"observations":  p.Observations,
		"mean":          p.Mean,
		"std_dev":       p.StdDev,
		"mc_var":        p.MonteCarloVaR,
		"analytic_var":  p.AnalyticVaR,
		"reference_var": p.ReferenceVaR,
		"steps":         p.Integration.Steps,
	})

	if !p.Integration.Converged {
		entry.Warn("Analytic VaR did not reach target mass")
		return
	}
	entry.Debug("Profile computed")
}
