// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/notifyio/notify"
	. "github.com/notifyio/notify/cmd/notify/cmd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		Fail("Failed to read configuration " + path + ": " + err.Error())
	}
	return Load(content, nil)
}

var _ = Describe("Configuration", func() {
	Context("load from valid configuration", func() {
		It("should fill every field.", func() {
			cfg, err := load("testdata/example_config.yaml")
			Expect(err).To(BeNil())
			Expect(cfg.Watches).To(HaveLen(2))
			Expect(cfg.Jobs).To(Equal(4))
			Expect(cfg.Command).To(Equal(`echo "{{.Event}} {{.Path}}"`))

			Expect(filepath.IsAbs(cfg.Watches[0].Path)).To(BeTrue())
			Expect(cfg.Watches[0].Recursive).To(BeTrue())
			Expect(cfg.Watches[0].Mask()).To(Equal(notify.Create | notify.Delete))

			wd, err := os.Getwd()
			Expect(err).To(BeNil())
			Expect(cfg.Watches[1].Path).To(Equal(wd))
			Expect(cfg.Watches[1].Mask()).To(Equal(notify.All))
		})

		It("should use defaults for an empty file.", func() {
			cfg, err := load("testdata/empty.yaml")
			Expect(err).To(BeNil())
			Expect(cfg.Watches).To(BeEmpty())
			Expect(cfg.Jobs).To(Equal(1))
			Expect(cfg.Portable).To(BeFalse())
		})
	})

	DescribeTable("load from invalid configuration",
		func(path string, expectErr error) {
			_, err := load(path)
			Expect(err).To(MatchError(expectErr))
		},
		Entry("unknown event", "testdata/unknown_event.yaml", ErrUnknownEvent),
		Entry("duplicate watch", "testdata/duplicate_watch.yaml", ErrDuplicateWatch),
	)

	DescribeTable("load from configuration rejected by validator",
		func(path string) {
			_, err := load(path)
			var verr validator.ValidationErrors
			Expect(errors.As(err, &verr)).To(BeTrue(), "%v", err)
		},
		Entry("too many jobs", "testdata/too_many_jobs.yaml"),
		Entry("missing path", "testdata/missing_path.yaml"),
	)

	It("should reject malformed YAML.", func() {
		_, err := Load([]byte("watches: {"), nil)
		Expect(err).NotTo(BeNil())
	})
})

var _ = Describe("Handler", func() {
	It("should render the template with the event.", func() {
		h, err := NewHandler(`echo {{.Event}} {{.Path}}`, nil, nil)
		Expect(err).To(BeNil())
		s, err := h.Render(NewEvent(notify.Modify, "/tmp/a.txt"))
		Expect(err).To(BeNil())
		Expect(s).To(Equal("echo modify /tmp/a.txt"))
	})

	It("should reject a broken template.", func() {
		_, err := NewHandler(`echo {{.Event`, nil, nil)
		Expect(err).NotTo(BeNil())
	})

	It("should run the command with the event in its environment.", func() {
		if runtime.GOOS == "windows" {
			Skip("uses a POSIX shell")
		}
		var out bytes.Buffer
		h, err := NewHandler(`echo "$NOTIFY_EVENT:$NOTIFY_PATH"`, &out, nil)
		Expect(err).To(BeNil())
		Expect(h.Run(NewEvent(notify.Create, "/tmp/b.txt"))).To(Succeed())
		Expect(out.String()).To(Equal("create:/tmp/b.txt\n"))
	})

	It("should report a failing command.", func() {
		if runtime.GOOS == "windows" {
			Skip("uses a POSIX shell")
		}
		h, err := NewHandler(`exit 3`, &bytes.Buffer{}, nil)
		Expect(err).To(BeNil())
		err = h.Run(NewEvent(notify.Delete, "/tmp/c.txt"))
		var status *ErrExitStatus
		Expect(errors.As(err, &status)).To(BeTrue())
		Expect(status.Code).To(Equal(3))
	})
})

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Command Suite")
}
