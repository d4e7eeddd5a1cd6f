// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/notifyio/notify/process"
	"github.com/notifyio/notify/stream"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
)

var runFlags struct {
	Terminal bool
	Dir      string
}

var runCmd = &cobra.Command{
	Use:   "run [--pty] [--dir D] -- command [arg]...",
	Short: "Run a command and exit with its status",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmdRun(args)
	},
}

// pipe copies src to dst until the end of src. Reading a terminal whose
// child has exited fails with EIO, which ends the output as well.
func pipe(dst io.Writer, src stream.Source) error {
	_, err := io.Copy(dst, src)
	if errors.Is(err, syscall.EIO) {
		return nil
	}
	return err
}

func runCmdRun(args []string) (err error) {
	log := getLogger()

	opts := []process.Opt{process.WithLogger(log)}
	if runFlags.Dir != "" {
		opts = append(opts, process.WithDir(runFlags.Dir))
	}
	if runFlags.Terminal {
		opts = append(opts, process.WithTerminal())
	}

	p, err := process.New(args, opts...)
	if err != nil {
		return
	}

	go func() {
		if _, err := io.Copy(p.Stdin(), os.Stdin); err != nil {
			log.Debugw("Stopped forwarding input.", "error", err)
		}
		if !runFlags.Terminal {
			p.Stdin().Close()
		}
	}()

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := pipe(os.Stdout, p.Stdout()); err != nil {
			log.Warnw("Failed to forward output.", "error", err)
		}
	})
	wg.Go(func() {
		if err := pipe(os.Stderr, p.Stderr()); err != nil {
			log.Warnw("Failed to forward error output.", "error", err)
		}
	})
	wg.Wait()

	code, err := p.Wait()
	if err != nil {
		return
	}
	if code != 0 {
		return &ErrExitStatus{Code: code}
	}
	return nil
}

func init() {
	f := runCmd.Flags()
	f.BoolVar(&runFlags.Terminal, "pty", false,
		"attach the command to a pseudo-terminal")
	f.StringVar(&runFlags.Dir, "dir", "",
		"working directory of the command")

	rootCmd.AddCommand(runCmd)
}
