// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/notifyio/notify/metadata"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statFlags struct {
	Follow bool
	Output string
}

var statCmd = &cobra.Command{
	Use:   "stat [-L] [-o text|yaml] path...",
	Short: "Print file metadata",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return statCmdRun(cmd.OutOrStdout(), args)
	},
}

// Stat is the printable metadata of a single file.
type Stat struct {
	Path       string    `yaml:"path"`
	Kind       string    `yaml:"kind"`
	Size       int64     `yaml:"size"`
	Created    time.Time `yaml:"created"`
	Modified   time.Time `yaml:"modified"`
	Accessed   time.Time `yaml:"accessed"`
	Mode       string    `yaml:"mode,omitempty"`
	Inode      uint64    `yaml:"inode,omitempty"`
	Links      uint64    `yaml:"links,omitempty"`
	UID        *uint32   `yaml:"uid,omitempty"`
	GID        *uint32   `yaml:"gid,omitempty"`
	Attributes []string  `yaml:"attributes,omitempty"`
}

func NewStat(path string, md metadata.FileMetadata) *Stat {
	st := &Stat{
		Path:     path,
		Kind:     md.Kind().String(),
		Size:     md.Size(),
		Created:  md.CreationTime(),
		Modified: md.ModTime(),
		Accessed: md.AccessTime(),
	}
	switch md := md.(type) {
	case *metadata.Unix:
		st.Mode = md.Mode.String()
		st.Inode = md.Ino
		st.Links = md.Nlink
		st.UID, st.GID = &md.UID, &md.GID
	case *metadata.Windows:
		for _, a := range []struct {
			name string
			set  bool
		}{
			{"readonly", md.ReadOnly},
			{"archive", md.Archive},
			{"system", md.System},
			{"hidden", md.Hidden},
		} {
			if a.set {
				st.Attributes = append(st.Attributes, a.name)
			}
		}
	}
	return st
}

func (st *Stat) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s, %d bytes\n", st.Path, st.Kind, st.Size)
	fmt.Fprintf(&b, "  created:  %s\n", st.Created.Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "  modified: %s\n", st.Modified.Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "  accessed: %s\n", st.Accessed.Format(time.RFC3339Nano))
	if st.Mode != "" {
		fmt.Fprintf(&b, "  mode:     %s\n", st.Mode)
		fmt.Fprintf(&b, "  owner:    %d:%d\n", *st.UID, *st.GID)
	}
	if len(st.Attributes) != 0 {
		fmt.Fprintf(&b, "  attributes: %s\n", strings.Join(st.Attributes, ","))
	}
	return b.String()
}

func statCmdRun(out io.Writer, paths []string) (err error) {
	defer Wrap(&err)

	if statFlags.Output != "text" && statFlags.Output != "yaml" {
		return ErrBadOutput
	}

	stats := make([]*Stat, 0, len(paths))
	for _, path := range paths {
		var md metadata.FileMetadata
		if md, err = metadata.Stat(path, statFlags.Follow); err != nil {
			return
		}
		stats = append(stats, NewStat(path, md))
	}

	if statFlags.Output == "yaml" {
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(stats)
	}
	for _, st := range stats {
		if _, err = io.WriteString(out, st.String()); err != nil {
			return
		}
	}
	return
}

func init() {
	f := statCmd.Flags()
	f.BoolVarP(&statFlags.Follow, "dereference", "L", false,
		"follow symbolic links")
	f.StringVarP(&statFlags.Output, "output", "o", "text",
		"output format: text or yaml")

	rootCmd.AddCommand(statCmd)
}
