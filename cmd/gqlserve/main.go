package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	eventbus "github.com/davmik/gqlserve/internal/eventbus"
	logging "github.com/davmik/gqlserve/internal/logging"
	otel "github.com/davmik/gqlserve/internal/otel"
	server "github.com/davmik/gqlserve/internal/server"
	today "github.com/davmik/gqlserve/internal/today"
)

var rootCmd = &cobra.Command{
	Use:   "gqlserve",
	Short: "gqlserve hosts a GraphQL service over the resolver-driven execution engine.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP GraphQL endpoint with the sample today service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.String("addr", ":8080", "HTTP listen address")
	flags.Bool("pretty", false, "pretty-print JSON responses")
	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.Bool("graphiql", true, "serve the GraphiQL IDE on GET requests")
	flags.StringSlice("cors-origin", nil, "allowed CORS origin, repeatable")
	flags.StringSlice("metadata-header", nil, "HTTP header to forward into backend metadata, repeatable")
	flags.Int64("max-body-bytes", 1<<20, "request body size limit, 0 for unlimited")
	flags.String("loglevel", "info", "log level (trace, debug, info, warn, error)")
	flags.String("otel-endpoint", "", "OTLP collector endpoint, empty disables tracing")
	flags.String("otel-service", "gqlserve", "OpenTelemetry service name")

	viper.SetEnvPrefix("gqlserve")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	eventbus.Use(eventbus.New())
	logger := logging.Setup(viper.GetString("loglevel"))

	shutdownTracing, err := otel.Setup(viper.GetString("otel-endpoint"), viper.GetString("otel-service"))
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	service := today.NewService(sampleAppointments(), sampleTasks(), sampleFolders())

	opts := []server.Option{
		server.WithTimeout(viper.GetDuration("timeout")),
		server.WithMaxBodyBytes(viper.GetInt64("max-body-bytes")),
		server.WithGraphiQL(viper.GetBool("graphiql")),
	}
	if viper.GetBool("pretty") {
		opts = append(opts, server.WithPretty())
	}
	if origins := viper.GetStringSlice("cors-origin"); len(origins) > 0 {
		opts = append(opts, server.WithCORS(origins...))
	}
	if headers := viper.GetStringSlice("metadata-header"); len(headers) > 0 {
		opts = append(opts, server.WithMetadataHeaders(headers...))
	}

	handler := server.New(service.Request(), opts...)

	srv := &http.Server{
		Addr:    viper.GetString("addr"),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func sampleAppointments() []today.Appointment {
	return []today.Appointment{
		{ID: []byte("appointment1"), When: "2025-07-08T14:00:00Z", Subject: "Design review", IsNow: false},
		{ID: []byte("appointment2"), When: "2025-07-08T15:30:00Z", Subject: "Standup", IsNow: true},
	}
}

func sampleTasks() []today.Task {
	return []today.Task{
		{ID: []byte("task1"), Title: "Write tests", IsComplete: false},
		{ID: []byte("task2"), Title: "Ship it", IsComplete: false},
	}
}

func sampleFolders() []today.Folder {
	return []today.Folder{
		{ID: []byte("folder1"), Name: "Inbox", UnreadCount: 3},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
