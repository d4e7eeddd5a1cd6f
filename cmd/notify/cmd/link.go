// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/notifyio/notify/symlink"
	"github.com/spf13/cobra"
)

var linkFlags struct {
	Exact bool
}

var linkCmd = &cobra.Command{
	Use:   "link [--exact] target link",
	Short: "Create a symbolic link",
	Long: `Create a symbolic link named link pointing at target. The target is
cleaned first unless --exact is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if linkFlags.Exact {
			return symlink.CreateExact(args[1], args[0])
		}
		return symlink.Create(args[1], args[0])
	},
}

var readlinkCmd = &cobra.Command{
	Use:   "readlink [--exact] link",
	Short: "Print the target of a symbolic link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var target string
		if linkFlags.Exact {
			target, err = symlink.ReadExact(args[0])
		} else {
			target, err = symlink.Read(args[0])
		}
		if err != nil {
			return
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
		return
	},
}

func init() {
	for _, c := range []*cobra.Command{linkCmd, readlinkCmd} {
		c.Flags().BoolVar(&linkFlags.Exact, "exact", false,
			"keep the target exactly as written")
		rootCmd.AddCommand(c)
	}
}
