package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/braheezy/kilo/internal/editor"
	"github.com/braheezy/kilo/internal/terminal"
	"github.com/braheezy/kilo/internal/textfile"
)

func main() {
	var (
		logPath     string
		showVersion bool
	)
	flag.StringVar(&logPath, "log", "", "Append debug log to this file")
	flag.BoolVar(&showVersion, "version", false, "Show kilo version")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println("kilo", editor.Version)
		return
	}

	if err := run(flag.Arg(0), logPath); err != nil {
		fmt.Fprintf(os.Stderr, "kilo: %v\n", err)
		os.Exit(1)
	}
}

func run(path, logPath string) (err error) {
	logger := log.New(io.Discard, "", 0)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "kilo: ", log.LstdFlags|log.Lmicroseconds)
	}

	tty, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if err := tty.EnableRawMode(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tty.Write([]byte("\x1b[2J\x1b[H"))
		}
		if restoreErr := tty.Restore(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	rows, cols, err := tty.WindowSize()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	ed := editor.New(editor.Config{
		Input:  tty,
		Output: tty,
		Store:  textfile.Disk{},
		Logger: logger,
		Rows:   rows,
		Cols:   cols,
	})
	if path != "" {
		if err := ed.Open(path); err != nil {
			return err
		}
	}
	ed.SetStatusMessage(editor.HelpMessage)

	if err := ed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
