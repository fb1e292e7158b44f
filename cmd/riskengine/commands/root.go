package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-risk/pkg/config"
	"github.com/wonny/aegis-risk/pkg/logger"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
// 인자 2개(<returns.csv> <label>)로 호출하면 analyze와 동일하게 동작
var rootCmd = &cobra.Command{
	Use:   "riskengine <returns.csv> <label>",
	Short: "자산 수익률 기반 VaR 리스크 엔진",
	Long: `Risk Engine CLI

수익률 CSV(label,return)를 읽어 자산별 평균/표준편차와
Monte Carlo VaR, 적분 VaR을 계산하고 한 줄로 출력합니다.

Output (stdout):
  Label,Mean,Stability,Min_VaR,Max_VaR

Exit codes:
  0 성공, 1 사용법/파일/출력 오류, 2 데이터 부족(변동 없음), 3 라벨 없음

Examples:
  go run ./cmd/riskengine returns.csv Stocks
  go run ./cmd/riskengine analyze returns.csv --all
  go run ./cmd/riskengine serve --port 5000`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeFile(cmd, args[0], args[1], false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "risk parameter YAML file (overrides RISK_* env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production|test)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadRuntime loads config, applies global flags and builds the logger
// 로그는 stderr로만 (stdout은 결과 라인 전용)
func loadRuntime(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if configFile != "" {
		if err := config.LoadRiskFile(configFile, &cfg.Risk); err != nil {
			return nil, nil, fmt.Errorf("load risk config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, logger.NewWithWriter(cfg, cmd.ErrOrStderr()), nil
}
