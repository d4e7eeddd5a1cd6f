// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFlags struct {
	Recursive bool
	Events    []string
	Command   string
	File      string
	Jobs      int
	Portable  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]...",
	Short: "Run handlers on filesystem changes",
	Long: `Listen on filesystem changes of the given directories and run
handlers for them.

The -c flag registers a command handler, which uses the syntax of package
text/template with the fields {{.Path}} and {{.Event}}. The rendered string is
run with the system shell, NOTIFY_PATH and NOTIFY_EVENT are set in its
environment. The -f flag reads the template from a file instead.

Paths given on the command line replace the watches of the configuration
file. Without any, the current directory is watched. If no handler is
specified each event is logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCmdRun(cmd, args)
	},
}

func watchCmdRun(cmd *cobra.Command, args []string) (err error) {
	defer Wrap(&err)

	log := getLogger()

	cfg, err := configure(cmd, args, log)
	if err != nil {
		return
	}

	injector := newInjector(cfg, log)
	defer func() {
		if err := injector.Shutdown(); err != nil {
			log.Errorw("Failed to shut down.", "error", err)
		}
	}()

	ws, err := do.Invoke[*watchers](injector)
	if err != nil {
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		err = &ErrCancelBySignal{Signal: sig}
	case err = <-ws.failed:
	}

	var cancelBySignal *ErrCancelBySignal
	if errors.As(err, &cancelBySignal) {
		log.Infow("Signal received, exiting...",
			"signal", cancelBySignal.Signal,
		)
		err = nil
	}
	return
}

// configure reads the configuration file, if any, and applies the flags
// and arguments on top of it.
func configure(cmd *cobra.Command, args []string, log *zap.SugaredLogger) (cfg *Config, err error) {
	content := []byte{}
	if flags.CfgPath != "" {
		content, err = os.ReadFile(flags.CfgPath)
		if err != nil {
			log.Errorw("Failed to read configuration from file.",
				"file", flags.CfgPath,
				"error", err)
			return
		}
	}

	cfg, err = Load(content, log)
	if err != nil {
		return
	}

	f := cmd.Flags()
	if f.Changed("command") {
		cfg.Command = watchFlags.Command
	}
	if f.Changed("file") {
		cfg.File = watchFlags.File
	}
	if f.Changed("jobs") {
		cfg.Jobs = watchFlags.Jobs
	}
	if f.Changed("portable") {
		cfg.Portable = watchFlags.Portable
	}
	if len(args) != 0 || len(cfg.Watches) == 0 {
		if len(args) == 0 {
			args = []string{"."}
		}
		cfg.Watches = cfg.Watches[:0]
		for _, path := range args {
			cfg.Watches = append(cfg.Watches, &Watch{
				Path:      path,
				Recursive: watchFlags.Recursive,
				Events:    watchFlags.Events,
			})
		}
	}

	if err = cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	f := watchCmd.Flags()
	f.BoolVarP(&watchFlags.Recursive, "recursive", "r", false,
		"watch the whole subtree of each path")
	f.StringSliceVarP(&watchFlags.Events, "events", "e", nil,
		"events to listen on: create, modify, attributes, delete or all")
	f.StringVarP(&watchFlags.Command, "command", "c", "",
		"command to run on received event")
	f.StringVarP(&watchFlags.File, "file", "f", "",
		"script file to execute on received event")
	f.IntVarP(&watchFlags.Jobs, "jobs", "j", defaultJobs,
		"number of handlers allowed to run at once")
	f.BoolVar(&watchFlags.Portable, "portable", false,
		"use the portable fsnotify backend")

	rootCmd.AddCommand(watchCmd)
}
