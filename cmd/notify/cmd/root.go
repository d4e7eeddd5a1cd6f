// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package cmd implements the notify command line.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	CfgPath string
	Debug   bool
}

var rootCmd = &cobra.Command{
	Use:           "notify",
	Short:         "Listen on filesystem changes and forward them to handlers",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// getLogger returns the logger of the command. With --debug it is a zap
// development logger printing every message.
func getLogger() *zap.SugaredLogger {
	if !flags.Debug {
		return logger.Get("notify")
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Default().Printf("Failed to use zap development logger: %v", err)
		log.Default().Printf("Fallback to default logger.")
		return logger.Get("notify")
	}
	return l.Sugar()
}

func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var status *ErrExitStatus
	if errors.As(err, &status) {
		os.Exit(status.Code)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flags.CfgPath,
		"config", os.Getenv("NOTIFY_CONFIG"),
		"the configuration file to use",
	)
	rootCmd.PersistentFlags().BoolVar(
		&flags.Debug,
		"debug", false,
		"print debug messages",
	)
}
