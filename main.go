package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.unix.lgbt/diamondburned/stringbar/stringbar"
	"git.unix.lgbt/diamondburned/stringbar/stringbar/journal"
	"github.com/pkg/errors"
)

var (
	configFile  string
	journalFile string
	sinkCommand = "xsetroot"
	useStdout   bool
	oneshot     bool
)

func init() {
	configDir, err := os.UserConfigDir()
	if err == nil {
		configFile = filepath.Join(configDir, "stringbar", stringbar.ConfigName)
		journalFile = filepath.Join(configDir, "stringbar", "journal.json")
	}

	flag.StringVar(&configFile, "c", configFile, "config file path")
	flag.StringVar(&journalFile, "j", journalFile, "journal file path")
	flag.StringVar(&sinkCommand, "s", sinkCommand, "root window name setter command")
	flag.BoolVar(&useStdout, "o", useStdout, "print lines to stdout instead of running the setter")
	flag.BoolVar(&oneshot, "1", oneshot, "render a single line and exit")
	flag.Usage = func() {
		f := func(f string, v ...interface{}) {
			fmt.Fprintf(flag.CommandLine.Output(), f, v...)
		}

		f("Usage:\n")
		f("  %s [-c <config>] [-j <journal>] [-o|-s <setter>] [-1]\n", filepath.Base(os.Args[0]))
		f("\n")
		f("Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Both are empty only when the config directory can't be resolved and
	// no explicit paths were given, which we can't recover from.
	if configFile == "" {
		log.Fatalln("cannot resolve config directory; missing -c path to config file")
	}
	if journalFile == "" {
		log.Fatalln("cannot resolve config directory; missing -j path to journal file")
	}
}

func main() {
	if err := start(); err != nil {
		log.Fatalln(err)
	}
}

func start() error {
	j, err := journal.NewFileLockJournaler(journalFile)
	if err != nil {
		if errors.Is(err, journal.ErrLockedElsewhere) {
			// Non-fatal error.
			log.Println("stringbar is already running")
			return nil
		}

		return errors.Wrap(err, "failed to acquire journal lock")
	}
	defer j.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	journaler := journal.MultiWriter(j, journal.NewHumanWriter(os.Stderr))
	journaler.Write(&stringbar.EventAcquired{})

	var sink stringbar.Sink = stringbar.NewXRootSink(sinkCommand)
	if useStdout {
		sink = stringbar.WriterSink{W: os.Stdout}
	}

	bar, err := stringbar.NewBar(configFile, sink, journaler)
	if err != nil {
		return errors.Wrap(err, "failed to start bar")
	}

	if oneshot {
		return bar.RenderOnce(ctx)
	}

	return bar.Run(ctx)
}
