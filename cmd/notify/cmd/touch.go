// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/notifyio/notify/metadata"
	"github.com/spf13/cobra"
)

var touchFlags struct {
	Mtime    string
	Atime    string
	Ctime    string
	Mode     string
	NoFollow bool
}

var touchCmd = &cobra.Command{
	Use:   "touch [--mtime T] [--atime T] [--ctime T] [--mode M] path...",
	Short: "Change file times and permissions",
	Long: `Change the times and permissions of files, creating missing ones.
Times are given in RFC 3339 format or as "now". Without any of the flags the
access and modification times are set to the current time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return touchCmdRun(cmd, args)
	},
}

func parseTime(s string) (time.Time, error) {
	if s == "now" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// touchAttributes builds the attributes to set from the flags.
func touchAttributes(cmd *cobra.Command) (attrs []metadata.Attribute, err error) {
	defer Wrap(&err, "parse attributes")

	f := cmd.Flags()
	for _, t := range []struct {
		flag  string
		value string
		attr  func(time.Time) metadata.Attribute
	}{
		{"mtime", touchFlags.Mtime, func(t time.Time) metadata.Attribute { return metadata.LastModifiedTime(t) }},
		{"atime", touchFlags.Atime, func(t time.Time) metadata.Attribute { return metadata.LastAccessTime(t) }},
		{"ctime", touchFlags.Ctime, func(t time.Time) metadata.Attribute { return metadata.CreationTime(t) }},
	} {
		if !f.Changed(t.flag) {
			continue
		}
		var tm time.Time
		if tm, err = parseTime(t.value); err != nil {
			return
		}
		attrs = append(attrs, t.attr(tm))
	}
	if f.Changed("mode") {
		var perm uint64
		if perm, err = strconv.ParseUint(touchFlags.Mode, 8, 32); err != nil {
			return
		}
		attrs = append(attrs, metadata.ModeAttribute(
			metadata.NewFileMode(0, metadata.Permission(perm))))
	}
	if len(attrs) == 0 {
		now := time.Now()
		attrs = append(attrs,
			metadata.LastModifiedTime(now),
			metadata.LastAccessTime(now),
		)
	}
	return
}

func touchCmdRun(cmd *cobra.Command, paths []string) (err error) {
	attrs, err := touchAttributes(cmd)
	if err != nil {
		return
	}
	for _, path := range paths {
		if _, err = os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			var f *os.File
			if f, err = os.Create(path); err != nil {
				return
			}
			f.Close()
		} else if err != nil {
			return
		}
		if err = metadata.SetAttributes(path, !touchFlags.NoFollow, attrs...); err != nil {
			return
		}
	}
	return
}

func init() {
	f := touchCmd.Flags()
	f.StringVar(&touchFlags.Mtime, "mtime", "now", "modification time")
	f.StringVar(&touchFlags.Atime, "atime", "now", "access time")
	f.StringVar(&touchFlags.Ctime, "ctime", "now", "creation time")
	f.StringVar(&touchFlags.Mode, "mode", "", "permission bits in octal")
	f.BoolVar(&touchFlags.NoFollow, "no-dereference", false,
		"affect symbolic links instead of their targets")

	rootCmd.AddCommand(touchCmd)
}
