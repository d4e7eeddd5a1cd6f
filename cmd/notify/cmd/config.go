// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"fmt"
	"path/filepath"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/go-playground/validator/v10"
	"github.com/notifyio/notify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the watch command.
type Config struct {
	Watches  []*Watch `yaml:"watches" validate:"dive,required"`
	Command  string   `yaml:"command"`
	File     string   `yaml:"file"`
	Jobs     int      `yaml:"jobs" validate:"min=1,max=64"`
	Portable bool     `yaml:"portable"`

	log *zap.SugaredLogger
}

// Watch is a single directory to listen on.
type Watch struct {
	Path      string   `yaml:"path" validate:"required"`
	Recursive bool     `yaml:"recursive"`
	Events    []string `yaml:"events" validate:"dive,required"`

	mask notify.Event
}

// Mask returns the set of events the watch asks for.
func (w *Watch) Mask() notify.Event {
	return w.mask
}

const defaultJobs = 1

// Load parses and checks a YAML configuration.
func Load(content []byte, log *zap.SugaredLogger) (ret *Config, err error) {
	defer Wrap(&err, "load configuration")

	cfg := &Config{Jobs: defaultJobs}
	cfg.log = log
	if cfg.log == nil {
		cfg.log = zap.NewNop().Sugar()
	}

	err = yaml.Unmarshal(content, cfg)
	if err != nil {
		Wrap(&err, "unmarshal configuration")
		return
	}

	err = cfg.check()
	if err != nil {
		return
	}

	ret = cfg
	return
}

func (c *Config) check() (err error) {
	defer Wrap(&err, "check configuration")

	var validator = validator.New()
	err = validator.Struct(c)
	if err != nil {
		err = fmt.Errorf("validator: %w", err)
		return
	}

	seen := make(map[string]struct{}, len(c.Watches))
	for _, w := range c.Watches {
		if w.Path, err = filepath.Abs(w.Path); err != nil {
			return
		}
		if _, ok := seen[w.Path]; ok {
			err = fmt.Errorf("%w: %s", ErrDuplicateWatch, w.Path)
			return
		}
		seen[w.Path] = struct{}{}

		if w.mask, err = parseEvents(w.Events); err != nil {
			return
		}
	}

	if len(c.Watches) == 0 {
		c.log.Debugw("No watches in config.")
	}

	return
}

// parseEvents turns event names into a mask; no names means all events.
func parseEvents(names []string) (notify.Event, error) {
	if len(names) == 0 {
		return notify.All, nil
	}
	var mask notify.Event
	for _, name := range names {
		e, ok := notify.ParseEvent(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
		}
		mask |= e
	}
	return mask, nil
}
