// Package clipboardx copies assistant code blocks and editor selections to
// the system clipboard, trying several backends and always keeping an
// in-process copy so paste works even on a headless terminal.
package clipboardx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Backend is one way of reaching a system clipboard.
type Backend interface {
	Name() string
	Write(text string) error
	Read() (string, error)
}

var ErrUnavailable = errors.New("no clipboard backend available")

type Clipboard struct {
	mu       sync.Mutex
	backends []Backend
	internal string
	log      *zap.Logger
}

// New uses the given backends in order. With none, the system defaults
// apply: the native clipboard library, then the common CLI tools, then an
// OSC 52 escape on stdout.
func New(log *zap.Logger, backends ...Backend) *Clipboard {
	if log == nil {
		log = zap.NewNop()
	}
	if len(backends) == 0 {
		backends = []Backend{nativeBackend{}, commandBackend{}, osc52Backend{out: os.Stdout}}
	}
	return &Clipboard{backends: backends, log: log}
}

// Write stores text and pushes it to every backend that accepts it. The
// in-process copy is kept even when all backends fail.
func (c *Clipboard) Write(text string) error {
	c.mu.Lock()
	c.internal = text
	c.mu.Unlock()

	var errs []error
	ok := false
	for _, b := range c.backends {
		if err := b.Write(text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		ok = true
	}
	if ok {
		return nil
	}
	err := errors.Join(append([]error{ErrUnavailable}, errs...)...)
	c.log.Debug("clipboard write fell back to memory", zap.Error(err))
	return err
}

// Read returns the first non-empty backend content, or the in-process copy.
func (c *Clipboard) Read() string {
	for _, b := range c.backends {
		if text, err := b.Read(); err == nil && text != "" {
			return text
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internal
}

type nativeBackend struct{}

func (nativeBackend) Name() string { return "native" }

func (nativeBackend) Write(text string) error { return clipboard.WriteAll(text) }

func (nativeBackend) Read() (string, error) { return clipboard.ReadAll() }

type command struct {
	name string
	args []string
}

var (
	copyCommands = []command{
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy"},
		{name: "clip.exe"},
	}
	pasteCommands = []command{
		{name: "wl-paste", args: []string{"--no-newline"}},
		{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--output"}},
		{name: "pbpaste"},
		{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
	}
)

// commandBackend shells out to whichever clipboard tool is installed.
type commandBackend struct{}

func (commandBackend) Name() string { return "command" }

func (commandBackend) Write(text string) error {
	for _, c := range copyCommands {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}

func (commandBackend) Read() (string, error) {
	for _, c := range pasteCommands {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		if out, err := exec.Command(c.name, c.args...).Output(); err == nil && len(out) > 0 {
			return string(out), nil
		}
	}
	return "", ErrUnavailable
}

// osc52Backend asks the terminal itself to set the clipboard. It is
// write-only and only used when out is a terminal.
type osc52Backend struct {
	out *os.File
}

func (osc52Backend) Name() string { return "osc52" }

func (b osc52Backend) Write(text string) error {
	if text == "" {
		return ErrUnavailable
	}
	fi, err := b.out.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return ErrUnavailable
	}
	return WriteOSC52(b.out, text)
}

func (osc52Backend) Read() (string, error) { return "", ErrUnavailable }

// WriteOSC52 emits the escape sequence that sets the clipboard to text.
func WriteOSC52(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}
