package device

import (
	"context"
	"net"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ai-interviewer.app/device"))

// HostFingerprinter derives a stable identifier from attributes of the host.
// When no attribute can be read it falls back to a random identifier, which is
// still stable once persisted.
type HostFingerprinter struct {
	hostname   func() (string, error)
	username   func() (string, error)
	interfaces func() ([]net.Interface, error)
}

func NewHostFingerprinter() *HostFingerprinter {
	return &HostFingerprinter{
		hostname: os.Hostname,
		username: func() (string, error) {
			u, err := user.Current()
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		interfaces: net.Interfaces,
	}
}

// Fingerprint returns 32 lowercase hex characters.
func (h *HostFingerprinter) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	attrs := h.attributes()
	if len(attrs) == 0 {
		return compact(uuid.New()), nil
	}

	// OS and architecture alone are shared by too many hosts to be useful.
	attrs = append(attrs, "os="+runtime.GOOS, "arch="+runtime.GOARCH)

	return compact(uuid.NewSHA1(fingerprintNamespace, []byte(strings.Join(attrs, "\n")))), nil
}

func (h *HostFingerprinter) attributes() []string {
	var attrs []string

	if h.hostname != nil {
		if name, err := h.hostname(); err == nil && strings.TrimSpace(name) != "" {
			attrs = append(attrs, "host="+strings.TrimSpace(name))
		}
	}

	if h.username != nil {
		if name, err := h.username(); err == nil && strings.TrimSpace(name) != "" {
			attrs = append(attrs, "user="+strings.TrimSpace(name))
		}
	}

	if h.interfaces != nil {
		if ifaces, err := h.interfaces(); err == nil {
			if mac := firstHardwareAddr(ifaces); mac != "" {
				attrs = append(attrs, "mac="+mac)
			}
		}
	}

	return attrs
}

func firstHardwareAddr(ifaces []net.Interface) string {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr.String()
	}
	return ""
}

func compact(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
