// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"text/template"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/notifyio/notify"
	"github.com/notifyio/notify/env"
	"github.com/notifyio/notify/internal/platform"
	"github.com/notifyio/notify/process"
	"go.uber.org/zap"
)

// Event is the value passed to handler templates.
type Event struct {
	Path  string
	Event string
}

var mapping = map[notify.Event]string{
	notify.Create:     "create",
	notify.Modify:     "modify",
	notify.Attributes: "attributes",
	notify.Delete:     "delete",
}

func NewEvent(e notify.Event, path string) Event {
	return Event{
		Path:  path,
		Event: mapping[e],
	}
}

// Handler runs a shell command rendered from a template for every event.
type Handler struct {
	tmpl *template.Template
	out  io.Writer
	log  *zap.SugaredLogger
}

func NewHandler(text string, out io.Writer, log *zap.SugaredLogger) (*Handler, error) {
	tmpl, err := template.New("cmd.Handler").Parse(text)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{tmpl: tmpl, out: out, log: log}, nil
}

// Render produces the command line for e.
func (h *Handler) Render(e Event) (string, error) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, e); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// Run renders the command for e and runs it with the system shell, copying
// its output. A non-zero exit code is reported as *ErrExitStatus.
func (h *Handler) Run(e Event) (err error) {
	defer Wrap(&err, "run handler for %s on %q", e.Event, e.Path)

	s, err := h.Render(e)
	if err != nil {
		return
	}

	vars := env.Map()
	vars["NOTIFY_PATH"] = e.Path
	vars["NOTIFY_EVENT"] = e.Event

	p, err := process.New(
		append(platform.Current().Shell(), s),
		process.WithEnv(vars),
		process.WithMergedStderr(),
		process.WithLogger(h.log),
	)
	if err != nil {
		return
	}
	p.Stdin().Close()

	if _, err = io.Copy(h.out, p.Stdout()); err != nil {
		p.Destroy(true)
		p.Wait()
		return
	}

	code, err := p.Wait()
	if err != nil {
		return
	}
	if code != 0 {
		err = &ErrExitStatus{Code: code}
	}
	return
}

// loadHandlers builds the handlers named by cfg. The file handler reads its
// template from cfg.File.
func loadHandlers(cfg *Config, log *zap.SugaredLogger) (hs []*Handler, err error) {
	defer Wrap(&err, "load handlers")

	if cfg.Command != "" {
		var h *Handler
		if h, err = NewHandler(cfg.Command, os.Stdout, log); err != nil {
			return
		}
		hs = append(hs, h)
	}
	if cfg.File != "" {
		var p []byte
		if p, err = os.ReadFile(cfg.File); err != nil {
			return
		}
		var h *Handler
		if h, err = NewHandler(string(p), os.Stdout, log); err != nil {
			return
		}
		hs = append(hs, h)
	}
	return
}
