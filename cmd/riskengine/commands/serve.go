package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/aegis-risk/internal/api"
	"github.com/wonny/aegis-risk/internal/api/handlers"
	"github.com/wonny/aegis-risk/pkg/metrics"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "대시보드 HTTP 브리지 시작",
	Long: `대시보드용 HTTP 서버를 시작합니다.

요청마다 새 엔진으로 업로드된 CSV를 분석합니다 (요청 간 상태 공유 없음).

Endpoints:
  GET  /health   - Health check
  GET  /         - 선택 가능한 자산 목록
  POST /result   - multipart: file_input_name(CSV), investment_type
  GET  /metrics  - Prometheus (METRICS_ENABLED=true)

Example:
  go run ./cmd/riskengine serve
  go run ./cmd/riskengine serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP 포트 (기본: PORT env)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	var rec *metrics.Recorder
	if cfg.MetricsEnabled {
		rec = metrics.New()
	}

	analysisHandler := handlers.NewAnalysisHandler(cfg, rec, log)
	router := api.NewRouter(cfg, analysisHandler, rec, log)
	server := api.New(cfg, log, router)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Server running on http://localhost:%s (Ctrl+C to stop)\n", cfg.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
