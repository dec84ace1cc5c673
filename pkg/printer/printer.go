package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Transport kinds accepted by NewTransportFromConfig.
const (
	TransportUSB     = "usb"
	TransportNetwork = "network"
	TransportNone    = "none"
)

// AutoDetect as a USB path scans the printer-class device files.
const AutoDetect = "auto"

// KnownVendorIDs are USB vendor ids of the receipt printers the shop deploys.
var KnownVendorIDs = []uint16{0x0416, 0x0FE6, 0x1A86}

// ErrNoDevice is returned when discovery finds no printer-class device.
var ErrNoDevice = errors.New("printer: no USB printer device found")

// Transport opens a byte sink to a physical printer. Nothing is ever read
// back from the device.
type Transport interface {
	// Open establishes the connection. The returned writer stays open until
	// the channel drops it.
	Open(ctx context.Context) (io.WriteCloser, error)
	// Available reports whether a device looks present without opening it.
	Available() bool
	Kind() string
	Target() string
}

// --- USB Printer (Linux printer-class device file, e.g. /dev/usb/lp0) ---

type usbTransport struct {
	path    string
	devGlob string
	sysRoot string
}

// NewUSBTransport creates a transport that writes to a USB device file.
// Pass AutoDetect to pick the first device from a known vendor.
func NewUSBTransport(devicePath string) Transport {
	return &usbTransport{
		path:    devicePath,
		devGlob: "/dev/usb/lp*",
		sysRoot: "/sys",
	}
}

func (t *usbTransport) resolve() (string, error) {
	if t.path != AutoDetect {
		return t.path, nil
	}
	return DiscoverUSB(t.devGlob, t.sysRoot)
}

func (t *usbTransport) Open(ctx context.Context) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := t.resolve()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("printer: failed to open USB device %s: %w", path, err)
	}
	return f, nil
}

func (t *usbTransport) Available() bool {
	path, err := t.resolve()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (t *usbTransport) Kind() string   { return TransportUSB }
func (t *usbTransport) Target() string { return t.path }

// DiscoverUSB returns the first device file matching devGlob whose sysfs
// idVendor is in KnownVendorIDs, falling back to the first match of any vendor.
func DiscoverUSB(devGlob, sysRoot string) (string, error) {
	matches, err := filepath.Glob(devGlob)
	if err != nil {
		return "", fmt.Errorf("printer: bad device pattern %q: %w", devGlob, err)
	}
	if len(matches) == 0 {
		return "", ErrNoDevice
	}
	for _, dev := range matches {
		if vendor, ok := readVendorID(sysRoot, filepath.Base(dev)); ok && isKnownVendor(vendor) {
			return dev, nil
		}
	}
	return matches[0], nil
}

func readVendorID(sysRoot, name string) (uint16, bool) {
	// "device" is a symlink to the USB interface; the vendor id sits on its parent.
	// The path is built by hand so ".." is resolved by the kernel, not cleaned away.
	raw, err := os.ReadFile(sysRoot + "/class/usbmisc/" + name + "/device/../idVendor")
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func isKnownVendor(id uint16) bool {
	for _, known := range KnownVendorIDs {
		if id == known {
			return true
		}
	}
	return false
}

// --- Network Printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkTransport struct {
	address string
	timeout time.Duration
}

// NewNetworkTransport creates a transport that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkTransport(address string) Transport {
	return &networkTransport{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (t *networkTransport) Open(ctx context.Context) (io.WriteCloser, error) {
	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.address)
	if err != nil {
		return nil, fmt.Errorf("printer: failed to connect to %s: %w", t.address, err)
	}
	return conn, nil
}

func (t *networkTransport) Available() bool {
	conn, err := net.DialTimeout("tcp", t.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (t *networkTransport) Kind() string   { return TransportNetwork }
func (t *networkTransport) Target() string { return t.address }

// NewTransportFromConfig creates the appropriate Transport based on type.
// A nil Transport with a nil error means printing is not configured.
//
//	printerType: "usb", "network", or "none"
//	usbPath: device path for USB printers (e.g. "/dev/usb/lp0" or "auto")
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
func NewTransportFromConfig(printerType, usbPath, address string) (Transport, error) {
	switch printerType {
	case TransportUSB:
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		if runtime.GOOS != "linux" {
			return nil, fmt.Errorf("%w: USB device files need linux, running on %s", ErrUnsupported, runtime.GOOS)
		}
		return NewUSBTransport(usbPath), nil
	case TransportNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkTransport(address), nil
	case TransportNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
