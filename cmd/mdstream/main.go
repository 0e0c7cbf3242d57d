package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shi0rik0/ctp-api-md-demo/internal/config"
	"github.com/shi0rik0/ctp-api-md-demo/internal/dbg"
	"github.com/shi0rik0/ctp-api-md-demo/internal/sink"
	"github.com/shi0rik0/ctp-api-md-demo/internal/stream"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/bus"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/feed"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/feed/synthetic"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/middleware"
)

const (
	routerEventCapacity = 1000
	hubQueueSize        = 50
	shutdownGrace       = time.Second
	shutdownTimeout     = 5 * time.Second
	syntheticInterval   = 200 * time.Millisecond
	monitorFlags        = middleware.MonitorStateChanges | middleware.MonitorDiagnostics
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := dbg.NewLogger(true)
		logger.Fatal("unable to load configuration", zap.Error(err))
	}

	logger := dbg.NewLogger(cfg.Development)
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("mdstream started",
		zap.String("front", cfg.FrontAddr),
		zap.Strings("instruments", cfg.Instruments),
		zap.String("stream_listen", cfg.StreamListenAddr))
	defer logger.Info("mdstream finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := bus.NewRouter(routerEventCapacity)
	monitor := middleware.NewMonitor(monitorFlags)
	telemetry := middleware.NewTelemetry()
	router.OnTick = middleware.Chain(monitor.WithTick, telemetry.WithTick)(middleware.NoopTickHdl)
	router.OnStateChange = middleware.Chain(monitor.WithStateChange, telemetry.WithStateChange)(middleware.NoopStateChangeHdl)
	router.OnDiagnostic = middleware.Chain(monitor.WithDiagnostic, telemetry.WithDiagnostic)(middleware.NoopDiagnosticHdl)

	hub := stream.NewHub(hubQueueSize)
	httpServer := &http.Server{
		Addr:    cfg.StreamListenAddr,
		Handler: stream.NewServer(hub).Handler(),
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("stream server stopped", zap.Error(err))
		}
	}()

	sinks := []feed.OutputSink{feed.NewWriterSink(os.Stdout), hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := sink.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			_ = kafkaSink.Close()
		}()
		sinks = append(sinks, kafkaSink)
		logger.Info("kafka sink enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	emitter := feed.NewEmitter(feed.MultiSink(sinks...))

	if !strings.HasPrefix(cfg.FrontAddr, "sim://") {
		logger.Fatal("unsupported front address scheme: only sim:// fronts are available in this build",
			zap.String("front", cfg.FrontAddr))
	}
	front := synthetic.NewFront(syntheticInterval, time.Now().UnixNano())
	defer front.Release()

	cred := feed.Credential{BrokerID: cfg.BrokerID, UserID: cfg.UserID, Password: cfg.Password}
	session := feed.NewSession(front, cred, cfg.Instruments, emitter, router)
	front.RegisterHandler(session)

	routerDone := router.Exec(ctx)
	session.Start(cfg.FrontAddr)

	// Block until the operator interrupts or the transport run-loop ends.
	select {
	case <-ctx.Done():
	case <-front.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	session.Shutdown(shutdownCtx, shutdownGrace)
	front.Release()
	_ = httpServer.Shutdown(shutdownCtx)

	cancel()
	if err := <-routerDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("router stopped unexpectedly", zap.Error(err))
	}

	router.PrintStatistics()
	telemetry.PrintStatistics()
}
