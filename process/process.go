// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package process spawns child processes with their standard streams
// connected to the parent and decodes their exit status.
package process

import (
	"errors"
	"os"
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/notifyio/notify/env"
	"github.com/notifyio/notify/stream"
	"go.uber.org/zap"
)

// Process is a running or finished child process. Its streams are released by
// Wait or Destroy, whichever comes first.
type Process struct {
	pid  int
	argv []string

	dir      string
	env      []string
	merged   bool
	terminal bool
	log      *zap.SugaredLogger

	stdin  stream.Sink
	stdout stream.Source
	stderr stream.Source
	pty    *os.File

	native native
	closed sync.Once
}

// native is the per-OS handle on the child.
type native interface {
	alive() bool
	wait() (int, error)
	terminate(force bool) error
	release()
}

// Opt configures a Process before it is started.
type Opt func(p *Process) (ret *Process, err error)

// WithDir sets the working directory of the child.
func WithDir(dir string) Opt {
	return func(p *Process) (*Process, error) {
		p.dir = dir
		return p, nil
	}
}

// WithEnv replaces the whole environment of the child. Without it the child
// inherits the environment of the parent.
func WithEnv(m map[string]string) Opt {
	return func(p *Process) (*Process, error) {
		p.env = env.Environ(m)
		return p, nil
	}
}

// WithMergedStderr sends the standard error of the child to its standard
// output. Stderr of the Process is then always empty.
func WithMergedStderr() Opt {
	return func(p *Process) (*Process, error) {
		p.merged = true
		return p, nil
	}
}

// WithTerminal attaches the child to a new pseudo-terminal. Stdin and Stdout
// both talk to the terminal, Stderr is empty.
func WithTerminal() Opt {
	return func(p *Process) (*Process, error) {
		p.terminal = true
		return p, nil
	}
}

// WithLogger sets the logger of the process. Defaults to a no-op logger.
func WithLogger(log *zap.SugaredLogger) Opt {
	return func(p *Process) (*Process, error) {
		p.log = log
		return p, nil
	}
}

// New starts command. The first element names the program; a name without a
// path separator is searched for in PATH. Failing to start the program is
// reported here rather than on the first read.
func New(command []string, opts ...Opt) (p *Process, err error) {
	defer Wrap(&err, "start process %q", command)

	if len(command) == 0 {
		return nil, ErrNoCommand
	}

	p = &Process{
		argv: command,
		log:  zap.NewNop().Sugar(),
	}
	for i := range opts {
		p, err = opts[i](p)
		if err != nil {
			return nil, err
		}
	}

	attr := &os.ProcAttr{Dir: p.dir, Env: p.env}
	if p.terminal {
		err = p.openTerminal(attr)
	} else {
		err = p.openPipes(attr)
	}
	if err != nil {
		return nil, err
	}

	proc, err := start(p.argv, attr)
	closeFiles(attr.Files)
	if err != nil {
		p.closeIO()
		return nil, err
	}
	p.pid = proc.Pid
	if p.native, err = attach(proc); err != nil {
		p.closeIO()
		return nil, err
	}

	p.log.Debugw("Process started.",
		"pid", p.pid,
		"command", p.argv,
		"dir", p.dir,
		"terminal", p.terminal,
	)
	return p, nil
}

func (p *Process) Pid() int { return p.pid }

func (p *Process) Stdin() stream.Sink { return p.stdin }

func (p *Process) Stdout() stream.Source { return p.stdout }

func (p *Process) Stderr() stream.Source { return p.stderr }

// IsAlive reports whether the child has not exited yet. It never blocks.
func (p *Process) IsAlive() bool {
	return p.native.alive()
}

// Wait blocks until the child exits and returns its exit code. On unix a
// child killed by a signal yields 128 plus the signal number. The streams
// are closed afterwards; later calls return the same code.
func (p *Process) Wait() (code int, err error) {
	defer Wrap(&err, "wait for process %d", p.pid)

	code, err = p.native.wait()
	p.closeIO()
	p.native.release()
	if err != nil {
		return -1, err
	}
	p.log.Debugw("Process exited.", "pid", p.pid, "code", code)
	return code, nil
}

// Destroy asks the child to terminate, or kills it when force is set, and
// closes the streams. It does not wait for the child to exit.
func (p *Process) Destroy(force bool) (err error) {
	defer Wrap(&err, "destroy process %d", p.pid)

	p.log.Debugw("Destroying process.", "pid", p.pid, "force", force)
	err = p.native.terminate(force)
	p.closeIO()
	return err
}

// Resize changes the window size of the terminal the child is attached to.
func (p *Process) Resize(rows, cols uint16) (err error) {
	defer Wrap(&err, "resize terminal of process %d", p.pid)

	if p.pty == nil {
		return ErrNoTerminal
	}
	return resize(p.pty, rows, cols)
}

func (p *Process) openPipes(attr *os.ProcAttr) (err error) {
	var parent []*os.File
	defer func() {
		if err != nil {
			closeFiles(attr.Files)
			closeFiles(parent)
			attr.Files = nil
		}
	}()

	inR, inW, err := os.Pipe()
	if err != nil {
		return err
	}
	attr.Files = append(attr.Files, inR)
	parent = append(parent, inW)

	outR, outW, err := os.Pipe()
	if err != nil {
		return err
	}
	attr.Files = append(attr.Files, outW)
	parent = append(parent, outR)

	p.stderr = stream.Empty
	if p.merged {
		attr.Files = append(attr.Files, outW)
	} else {
		var errR, errW *os.File
		if errR, errW, err = os.Pipe(); err != nil {
			return err
		}
		attr.Files = append(attr.Files, errW)
		p.stderr = stream.NewHandle(errR)
	}

	p.stdin = stream.NewHandle(inW)
	p.stdout = stream.NewHandle(outR)
	return nil
}

func (p *Process) closeIO() {
	p.closed.Do(func() {
		var errs []error
		for _, c := range []interface{ Close() error }{p.stdin, p.stdout, p.stderr} {
			if c != nil {
				errs = append(errs, c.Close())
			}
		}
		if err := errors.Join(errs...); err != nil {
			p.log.Warnw("Failed to close process streams.", "pid", p.pid, "error", err)
		}
	})
}

func closeFiles(files []*os.File) {
	seen := make(map[*os.File]struct{}, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok || f == nil {
			continue
		}
		seen[f] = struct{}{}
		f.Close()
	}
}
