// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exercise

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kurafs/zdebug/pkg/cli"
	"github.com/kurafs/zdebug/pkg/log"
	"github.com/kurafs/zdebug/pkg/zdebug"
)

var ExerciseCmd = &cli.Command{
	Run:       exerciseCmdRun,
	UsageLine: "exercise [-writers n] [-entries n] [-max-size bytes] [-flags list] [-settings file] [-recover] [-panic-every n] [-find substr] [-dump] [-tag tag] [-log-level level]",
	Short:     "run concurrent writers through the entry points",
	Long: `
Exercise initializes a message log, starts -writers goroutines each issuing
-entries rounds of instrumentation (a trim trace, an unconditional dbgmsg and,
every -panic-every rounds, a panic-or-recover decision), then reports what the
log retained.

The flag registry is populated from -settings (a JSON settings file) when
given, and from -flags, -recover and -max-size otherwise. Recording is always
enabled for the run.

Without -recover a panic-or-recover decision aborts the process (STRICT), which
is the way to observe the abort path end to end.

With -dump the retained log is printed between DBGMSG(tag) markers. With -find
the command fails unless some retained message contains the substring.
    `,
}

type config struct {
	writers    int
	entries    int
	maxSize    int
	categories string
	settings   string
	recover    bool
	panicEvery int
	find       string
	dump       bool
	tag        string
	logLevel   string
}

func exerciseCmdRun(cmd *cli.Command, args []string) error {
	var cfg config
	cmd.FlagSet.IntVar(&cfg.writers, "writers", 4, "Number of concurrent writers")
	cmd.FlagSet.IntVar(&cfg.entries, "entries", 1000, "Rounds of instrumentation per writer")
	cmd.FlagSet.IntVar(&cfg.maxSize, "max-size", zdebug.DefaultMaxSize, "Byte cap of the message log")
	cmd.FlagSet.StringVar(&cfg.categories, "flags", "trim", "Comma-separated instrumentation categories (or 'all')")
	cmd.FlagSet.StringVar(&cfg.settings, "settings", "", "JSON settings file, overrides -flags, -recover and -max-size")
	cmd.FlagSet.BoolVar(&cfg.recover, "recover", true, "Log and continue past panics instead of aborting")
	cmd.FlagSet.IntVar(&cfg.panicEvery, "panic-every", 0, "Issue a panic-or-recover decision every n rounds (0 disables)")
	cmd.FlagSet.StringVar(&cfg.find, "find", "", "Fail unless a retained message contains this substring")
	cmd.FlagSet.BoolVar(&cfg.dump, "dump", false, "Print the retained messages")
	cmd.FlagSet.StringVar(&cfg.tag, "tag", "exercise", "Tag framing the dump")
	cmd.FlagSet.StringVar(&cfg.logLevel, "log-level", "info", "Console log level (debug|info|warn|error|off)")
	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if cfg.writers < 1 || cfg.entries < 0 || cfg.panicEvery < 0 {
		return cli.CmdParseError(errors.New("-writers must be positive, -entries and -panic-every non-negative"))
	}
	mode, err := log.ParseLevel(cfg.logLevel)
	if err != nil {
		return cli.CmdParseError(err)
	}

	writer := log.SynchronizedWriter(os.Stderr)
	logf := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile | log.Lmode
	logger := log.New(log.Writer(writer), log.Flags(logf), log.Level(mode))

	return run(cfg, logger, os.Stdout)
}

// newDebug builds the flag registry and message log for a run.
func newDebug(cfg config, logger *log.Logger) (*zdebug.Debug, error) {
	flags := zdebug.NewFlags()
	d := zdebug.New(flags, zdebug.Console(logger), zdebug.LogOptions(zdebug.MaxSize(cfg.maxSize)))

	if cfg.settings != "" {
		s, err := zdebug.LoadSettings(cfg.settings)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(d); err != nil {
			return nil, err
		}
		logger.Infof("loaded settings from %s", cfg.settings)
	} else {
		mask, err := zdebug.ParseCategories(cfg.categories)
		if err != nil {
			return nil, err
		}
		flags.SetMask(mask)
		flags.SetRecover(cfg.recover)
	}
	flags.SetRecordingEnabled(true)
	return d, nil
}

func run(cfg config, logger *log.Logger, out io.Writer) error {
	d, err := newDebug(cfg, logger)
	if err != nil {
		return err
	}
	d.Init()
	defer d.Fini()

	flags := d.Flags()
	logger.Infof("starting %d writers x %d rounds (flags=%s, recover=%t, max-size=%d)",
		cfg.writers, cfg.entries, flags.Mask(), flags.Recover(), d.Log().MaxSize())

	var wg sync.WaitGroup
	for w := 0; w < cfg.writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < cfg.entries; i++ {
				d.Dprintf(zdebug.DebugTrim, func(printf zdebug.Printf) {
					printf("writer %d trimming extent %d", w, i)
				})
				d.Dbgmsg("writer %d round %d", w, i)
				if cfg.panicEvery > 0 && (i+1)%cfg.panicEvery == 0 {
					d.PanicRecover("writer %d hit injected fault at round %d", w, i)
				}
			}
		}(w)
	}
	wg.Wait()

	logger.Infof("log retains %d messages, %d of %d bytes", d.Log().Len(), d.Log().Size(), d.Log().MaxSize())

	if cfg.dump {
		if err := d.Print(cfg.tag, out); err != nil {
			return err
		}
	}
	if cfg.find != "" {
		if !d.Find(cfg.find) {
			return fmt.Errorf("no retained message contains %q", cfg.find)
		}
		fmt.Fprintf(out, "found %q\n", cfg.find)
	}
	return nil
}
