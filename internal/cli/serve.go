package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amterp/ra"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/api"
	"github.com/amterp/dairy/internal/scheduler"
	"github.com/amterp/dairy/internal/service"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Serve the record API and run scheduled aggregation")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (default: port setting; will try incrementally if in use)").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(opts options, port int) {
	app, err := NewApp(opts.DataDir, false)
	if err != nil {
		Fatal(err)
	}
	defer func() { _ = app.Logger.Sync() }()

	if port == 0 {
		port = app.Settings.Port
	}
	actualPort := findAvailablePort(port)

	services := &service.Services{
		Animals: app.AnimalService,
		Staff:   app.StaffService,
		Milk:    app.MilkService,
		Auth:    app.AuthService,
	}
	handler := api.NewHandler(services, app.Settings, app.Logger.Named("api"))
	server := api.NewServer(handler, actualPort, app.Paths.DataDir(), app.Logger)

	sched := scheduler.NewScheduler(app.Settings, app.MilkService, handler.Locked, app.Logger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		Fatal(err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	PrintSuccess("Dairy API running at %s", RenderURL(fmt.Sprintf("http://localhost:%d", actualPort)))
	if sched.Enabled() {
		PrintInfo("Daily aggregation scheduled: %s", app.Settings.AggregateCron)
	}
	fmt.Println(RenderMuted("Press Ctrl+C to stop"))

	select {
	case err := <-errCh:
		if err != nil {
			Fatal(err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// Let the server fail on the original port.
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
