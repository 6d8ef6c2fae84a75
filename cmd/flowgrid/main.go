// Command flowgrid runs a graph runtime on the host, bridging the binary
// host protocol over websocket or a serial line and exposing Prometheus
// metrics for the event stream.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/hooks"
	"github.com/example/flowgrid/hostcomm"
	"github.com/example/flowgrid/metric"
	"github.com/example/flowgrid/network"
	"github.com/example/flowgrid/runloop"
)

const version = "0.3.0"

type runOptions struct {
	listen      string
	serialPath  string
	baudrate    int
	tick        time.Duration
	maxNodes    int
	maxMessages int
	logLevel    string
	logPackets  bool
}

func main() {
	root := &cobra.Command{
		Use:          "flowgrid",
		Short:        "Flow-based graph runtime with a binary host protocol",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(), newComponentsCommand(), newVersionCommand())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the runtime and serve the host protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.listen, "listen", "127.0.0.1:3569", "address serving /graph (websocket frames) and /metrics")
	cmd.Flags().StringVar(&opts.serialPath, "serial", "", "serial device path; replaces the websocket transport when set")
	cmd.Flags().IntVar(&opts.baudrate, "baud", 115200, "serial baud rate")
	cmd.Flags().DurationVar(&opts.tick, "tick", 5*time.Millisecond, "network tick interval")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "node table capacity (0 = default)")
	cmd.Flags().IntVar(&opts.maxMessages, "max-messages", 0, "message queue capacity (0 = default)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.logPackets, "log-packets", false, "log per-packet traffic (noisy)")
	return cmd
}

func newComponentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "Print the component catalog",
		Run: func(cmd *cobra.Command, args []string) {
			for _, spec := range component.Catalog() {
				fmt.Fprint(cmd.OutOrStdout(), spec.Render())
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the runtime version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon(ctx context.Context, opts runOptions) error {
	level := parseLogLevel(opts.logLevel)
	if opts.logPackets {
		// per-packet traffic is logged at debug
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	cfg := network.DefaultConfig()
	if opts.maxNodes > 0 {
		cfg.MaxNodes = opts.maxNodes
	}
	if opts.maxMessages > 0 {
		cfg.MaxMessages = opts.maxMessages
	}

	dev := capabilities.NewHostIO()
	defer dev.Close()

	net, err := network.New(dev, cfg)
	if err != nil {
		return fmt.Errorf("create network: %w", err)
	}

	var transport hostcomm.HostTransport
	var ws *hostcomm.WebSocketTransport
	if opts.serialPath != "" {
		dev.MapSerialDevice(0, opts.serialPath)
		transport = hostcomm.NewSerialTransport(0, opts.baudrate)
	} else {
		ws = hostcomm.NewWebSocketTransport()
		transport = ws
	}

	hc := hostcomm.New()
	hc.Setup(net, transport)
	transport.Setup(dev, hc)

	registry := prometheus.NewRegistry()
	collector := metric.NewCollector(registry)

	broker := hooks.NewBroker(hc, collector)
	if opts.logPackets || parseLogLevel(opts.logLevel) == slog.LevelDebug {
		broker.Add(hooks.NewLogger(log))
	}
	net.SetNotificationHandler(broker)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if ws != nil {
		mux.Handle("/graph", ws.Handler())
	}
	server := &http.Server{Addr: opts.listen, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", "error", err)
		}
	}()
	defer server.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("flowgrid runtime started",
		"listen", opts.listen,
		"transport", transportName(opts.serialPath),
		"tick", opts.tick.String(),
		"maxNodes", cfg.MaxNodes, "maxMessages", cfg.MaxMessages)

	mailbox := capabilities.NewMailbox(64)
	runner := runloop.New(net, transport, mailbox, opts.tick)
	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	log.Info("flowgrid runtime stopped")
	return nil
}

func transportName(serialPath string) string {
	if serialPath != "" {
		return "serial:" + serialPath
	}
	return "websocket"
}
