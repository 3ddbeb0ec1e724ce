package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmolinelli/ercolino/pkg/config"
	"github.com/dmolinelli/ercolino/pkg/ercolino"
	"github.com/dmolinelli/ercolino/pkg/printer"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use a mocked robot instead of a serial port")
		quietFlag  = flag.Bool("quiet", false, "Suppress all robot output (counts are still reported)")
		statsFlag  = flag.Int("stats", -1, "Data samples per stats summary (0 = disabled, overrides config)")
		listFlag   = flag.Bool("list", false, "List available serial ports and exit")
	)
	flag.Parse()

	if *listFlag {
		ports, err := ercolino.Ports()
		if err != nil {
			log.Fatalf("Failed to list serial ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p.Name)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Override stats window if provided via command line
	if *statsFlag >= 0 {
		cfg.Telemetry.StatsWindow = *statsFlag
	}

	flags := cfg.ResolvedFlags()
	if *quietFlag {
		flags.PrintInfo = false
		flags.PrintData = false
	}

	var link ercolino.Link
	if *mockFlag {
		link = ercolino.NewMock(&cfg.Mock)
	} else {
		link = ercolino.New(cfg.Serial.Port, cfg.Serial.BaudRate, 0)
	}

	if err := link.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	// Push the configured telemetry period while the configuration
	// subsystem is active; the firmware ignores it otherwise.
	if flags.EnableConfig && cfg.Telemetry.Period > 0 {
		if err := link.SetTelemetryPeriod(cfg.Telemetry.Period); err != nil {
			log.Printf("Failed to set telemetry period: %v", err)
		}
	}

	p := printer.New(flags, os.Stdout, cfg.Telemetry.StatsWindow)

	done := make(chan struct{})
	go func() {
		p.Process(link.Messages())
		close(done)
	}()

	// Wait for an interrupt or the end of the stream
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Printf("Shutting down")
		if err := link.Close(); err != nil {
			log.Printf("Failed to close link: %v", err)
		}
		<-done
	case <-done:
	}

	counts := p.Counts()
	log.Printf("Processed %d info and %d data messages (%d suppressed)",
		counts.Info, counts.Data, counts.Suppressed)
}
