// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/notifyio/notify/internal/platform"
	"github.com/spf13/cobra"
)

// Version is set at link time.
var Version = "devel"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "notify %s (%s)\n", Version, platform.Current())
		return
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
