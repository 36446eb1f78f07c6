package browser

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"runtime"
)

// Navigator sends the user to a URL, the way a page redirect would.
type Navigator interface {
	Open(target string) error
}

// System opens URLs with the platform's default handler and prints the URL
// when that is not possible.
type System struct {
	Out  io.Writer
	GOOS string
	run  func(name string, args ...string) error
}

func NewSystem(out io.Writer) *System {
	if out == nil {
		out = os.Stdout
	}

	return &System{
		Out:  out,
		GOOS: runtime.GOOS,
		run:  startDetached,
	}
}

// startDetached starts the opener without waiting for it and reaps it in the
// background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func (s *System) Open(target string) error {
	if err := checkURL(target); err != nil {
		return err
	}

	name, args := opener(s.GOOS, target)
	if name == "" || s.run == nil {
		return Printer{Out: s.Out}.Open(target)
	}

	fmt.Fprintf(s.Out, "Opening %s\n", target)
	if err := s.run(name, args...); err != nil {
		fmt.Fprintf(s.Out, "Could not launch a browser (%v). Open this link to continue:\n%s\n", err, target)
	}

	return nil
}

// Printer only prints the URL.
type Printer struct {
	Out io.Writer
}

func (p Printer) Open(target string) error {
	if err := checkURL(target); err != nil {
		return err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	_, err := fmt.Fprintf(out, "Open this link to continue:\n%s\n", target)
	return err
}

func opener(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}
	default:
		return "", nil
	}
}

// checkURL accepts absolute http(s) URLs only; anything else would be handed
// to a local program.
func checkURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", target, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open non-http url %q", target)
	}
	return nil
}
