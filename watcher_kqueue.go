// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build (darwin && (kqueue || !cgo)) || dragonfly || freebsd || netbsd || openbsd

package notify

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// kqueue is the backend for BSD systems, and for Darwin when built with the
// kqueue tag or without cgo. kqueue reports changes of open vnodes only: a
// directory write is turned into Create and Delete events by comparing its
// entries with the previous listing, files are opened to learn about their
// modifications.
type kqueue struct {
	kq      int
	pipefds [2]int // written to on close to wake up a blocked kevent
	mask    Event
	log     *zap.SugaredLogger

	mu      sync.Mutex
	dirs    map[int]*kdir
	files   map[int]*kentry
	garbage []int // descriptors closed by the next read, once dispatched
	reading bool
	closed  bool
}

// kdir is a watched directory together with its last listing.
type kdir struct {
	fd      int
	path    string
	entries map[string]*kentry
}

// kentry is a single directory entry. fd is -1 when the entry is not
// watched by itself.
type kentry struct {
	dir   *kdir
	name  string
	ino   uint64
	isDir bool
	fd    int
}

func newNative(mask Event, log *zap.SugaredLogger) (backend, error) {
	return newKqueue(mask, log)
}

func newKqueue(mask Event, log *zap.SugaredLogger) (_ *kqueue, err error) {
	k := &kqueue{
		kq:      -1,
		pipefds: [2]int{-1, -1},
		mask:    mask,
		log:     log,
		dirs:    make(map[int]*kdir),
		files:   make(map[int]*kentry),
	}
	defer func() {
		if err != nil {
			k.release()
		}
	}()
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, os.NewSyscallError("kqueue", err)
	}
	k.kq = kq
	unix.CloseOnExec(k.kq)
	var p [2]int
	if err = unix.Pipe(p[:]); err != nil {
		return nil, os.NewSyscallError("pipe", err)
	}
	k.pipefds = p
	unix.CloseOnExec(k.pipefds[0])
	unix.CloseOnExec(k.pipefds[1])
	var kev [1]unix.Kevent_t
	unix.SetKevent(&kev[0], k.pipefds[0], unix.EVFILT_READ, unix.EV_ADD)
	if _, err = unix.Kevent(k.kq, kev[:], nil, nil); err != nil {
		return nil, os.NewSyscallError("kevent", err)
	}
	return k, nil
}

func (k *kqueue) add(path string, recursive bool) (int, error) {
	if recursive {
		return -1, errNoNativeRecursion
	}
	fd, err := k.register(path, unix.O_DIRECTORY, noteDir)
	if err != nil {
		return -1, err
	}
	d := &kdir{fd: fd, path: path, entries: make(map[string]*kentry)}
	ents, err := os.ReadDir(path)
	if err != nil {
		unix.Close(fd)
		return -1, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.dirs[fd] = d
	for _, de := range ents {
		var st unix.Stat_t
		if err := unix.Lstat(join(path, de.Name()), &st); err != nil {
			continue
		}
		k.track(d, de.Name(), &st)
	}
	return fd, nil
}

// register opens path and adds a vnode filter for it to the queue.
func (k *kqueue) register(path string, flags int, notes uint32) (int, error) {
	fd, err := unix.Open(path, openNotes|unix.O_CLOEXEC|unix.O_NONBLOCK|flags, 0)
	if err != nil {
		return -1, &os.PathError{Op: "open", Path: path, Err: err}
	}
	var kev [1]unix.Kevent_t
	unix.SetKevent(&kev[0], fd, unix.EVFILT_VNODE, unix.EV_ADD|unix.EV_CLEAR)
	kev[0].Fflags = notes
	if _, err = unix.Kevent(k.kq, kev[:], nil, nil); err != nil {
		unix.Close(fd)
		return -1, &os.PathError{Op: "kevent", Path: path, Err: err}
	}
	return fd, nil
}

// track records a directory entry, watching it when it is a regular file and
// file events were asked for. It expects k.mu to be held.
func (k *kqueue) track(d *kdir, name string, st *unix.Stat_t) *kentry {
	ent := &kentry{
		dir:   d,
		name:  name,
		ino:   uint64(st.Ino),
		isDir: st.Mode&unix.S_IFMT == unix.S_IFDIR,
		fd:    -1,
	}
	d.entries[name] = ent
	if st.Mode&unix.S_IFMT != unix.S_IFREG || k.mask&(Modify|Attributes) == 0 {
		return ent
	}
	fd, err := k.register(join(d.path, name), 0, noteFile)
	if err != nil {
		k.log.Debugw("Failed to watch file.", "path", join(d.path, name), "error", err)
		return ent
	}
	ent.fd = fd
	k.files[fd] = ent
	return ent
}

// forget stops tracking a directory entry. It expects k.mu to be held.
func (k *kqueue) forget(ent *kentry) {
	delete(ent.dir.entries, ent.name)
	if ent.fd != -1 {
		delete(k.files, ent.fd)
		k.garbage = append(k.garbage, ent.fd)
		ent.fd = -1
	}
}

// drop stops tracking a directory and its entries. It expects k.mu to be
// held.
func (k *kqueue) drop(d *kdir) {
	for _, ent := range d.entries {
		k.forget(ent)
	}
	delete(k.dirs, d.fd)
	k.garbage = append(k.garbage, d.fd)
}

func (k *kqueue) collect() (err error) {
	for _, fd := range k.garbage {
		if e := unix.Close(fd); e != nil && err == nil {
			err = os.NewSyscallError("close", e)
		}
	}
	k.garbage = k.garbage[:0]
	return err
}

func (k *kqueue) remove(wd int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	d, ok := k.dirs[wd]
	if !ok {
		return nil
	}
	k.drop(d)
	return nil
}

func (k *kqueue) read() ([]rawEvent, error) {
	var kevs [32]unix.Kevent_t
	for {
		k.mu.Lock()
		if k.closed {
			k.mu.Unlock()
			return nil, errClosed
		}
		// The previous batch may still name dropped descriptors, so they
		// are not closed, and their numbers not reused, before it is
		// dispatched.
		if err := k.collect(); err != nil {
			k.log.Debugw("Failed to close descriptors.", "error", err)
		}
		k.reading = true
		k.mu.Unlock()

		n, err := unix.Kevent(k.kq, nil, kevs[:], nil)

		k.mu.Lock()
		k.reading = false
		if k.closed {
			k.mu.Unlock()
			k.release()
			return nil, errClosed
		}
		switch {
		case errors.Is(err, unix.EINTR):
			k.mu.Unlock()
			continue
		case err != nil:
			k.mu.Unlock()
			return nil, os.NewSyscallError("kevent", err)
		}
		var batch []rawEvent
		for i := range kevs[:n] {
			batch = k.process(batch, &kevs[i])
		}
		k.mu.Unlock()
		if len(batch) != 0 {
			return batch, nil
		}
	}
}

// process appends the raw events a single kevent stands for to batch. It
// expects k.mu to be held.
func (k *kqueue) process(batch []rawEvent, kev *unix.Kevent_t) []rawEvent {
	fd := int(kev.Ident)
	if d, ok := k.dirs[fd]; ok {
		if kev.Fflags&noteGone != 0 {
			k.drop(d)
			return append(batch, rawEvent{wd: fd, invalidated: true})
		}
		if kev.Fflags&unix.NOTE_WRITE != 0 {
			batch = k.rescan(batch, d)
		}
		if kev.Fflags&unix.NOTE_ATTRIB != 0 {
			batch = append(batch, rawEvent{wd: fd, kind: Attributes, isDir: yes})
		}
		return batch
	}
	if ent, ok := k.files[fd]; ok {
		if e := decodeKqueue(kev.Fflags); e != 0 {
			batch = append(batch, rawEvent{wd: ent.dir.fd, name: ent.name, kind: e, isDir: no})
		}
	}
	return batch
}

// rescan compares the entries of d with its previous listing. An entry that
// changed its inode was replaced and gives Delete followed by Create.
func (k *kqueue) rescan(batch []rawEvent, d *kdir) []rawEvent {
	ents, err := os.ReadDir(d.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			k.log.Debugw("Failed to list directory.", "path", d.path, "error", err)
		}
		return batch
	}
	type stat struct {
		name string
		st   unix.Stat_t
	}
	current := make(map[string]*stat, len(ents))
	list := make([]*stat, 0, len(ents))
	for _, de := range ents {
		s := &stat{name: de.Name()}
		if err := unix.Lstat(join(d.path, s.name), &s.st); err != nil {
			continue
		}
		current[s.name] = s
		list = append(list, s)
	}

	var gone []string
	for name, ent := range d.entries {
		if s, ok := current[name]; !ok || uint64(s.st.Ino) != ent.ino {
			gone = append(gone, name)
		}
	}
	sort.Strings(gone)
	for _, name := range gone {
		ent := d.entries[name]
		k.forget(ent)
		batch = append(batch, rawEvent{wd: d.fd, name: name, kind: Delete, isDir: boolean(ent.isDir)})
	}
	for _, s := range list {
		if _, ok := d.entries[s.name]; ok {
			continue
		}
		ent := k.track(d, s.name, &s.st)
		batch = append(batch, rawEvent{wd: d.fd, name: s.name, kind: Create, isDir: boolean(ent.isDir)})
	}
	return batch
}

// close releases the queue, unless a read is blocked on it: the read is
// woken up and releases it instead.
func (k *kqueue) close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	if k.reading {
		defer k.mu.Unlock()
		if _, err := unix.Write(k.pipefds[1], []byte{0}); err != nil {
			return os.NewSyscallError("write", err)
		}
		return nil
	}
	k.mu.Unlock()
	return k.release()
}

func (k *kqueue) release() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, d := range k.dirs {
		k.drop(d)
	}
	for _, fd := range []int{k.pipefds[0], k.pipefds[1], k.kq} {
		if fd != -1 {
			k.garbage = append(k.garbage, fd)
		}
	}
	k.pipefds = [2]int{-1, -1}
	k.kq = -1
	return k.collect()
}
