// Package identity derives the stable device identifier used to name the
// broker session and to tag every published sample.
package identity

import (
	"fmt"
	"net"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
)

const sessionPrefix = "SmartDesk_"

// Provider holds the identity computed once at startup.
type Provider struct {
	id string
}

// New formats the 64-bit hardware value as a 4-digit high part and an
// 8-digit low part, uppercase hex.
func New(hardwareID uint64) *Provider {
	return &Provider{id: fmt.Sprintf("%04X%08X", uint16(hardwareID>>32), uint32(hardwareID))}
}

// FromHardwareAddr packs a MAC address with the first octet in the least
// significant byte, the layout of the ESP32 efuse MAC word.
func FromHardwareAddr(addr net.HardwareAddr) uint64 {
	var hardwareID uint64
	for i := len(addr) - 1; i >= 0; i-- {
		hardwareID = hardwareID<<8 | uint64(addr[i])
	}
	return hardwareID
}

// Resolve reads the hardware address once. An explicit address in the
// configuration wins over interface discovery.
func Resolve(conf entities.DeviceConfig) (*Provider, error) {
	if conf.HardwareAddress != "" {
		addr, err := net.ParseMAC(conf.HardwareAddress)
		if err != nil {
			return nil, errors.Wrap(err, "parse configured hardware address")
		}
		return New(FromHardwareAddr(addr)), nil
	}

	addr, err := lookupHardwareAddr(conf.Interface)
	if err != nil {
		return nil, err
	}
	return New(FromHardwareAddr(addr)), nil
}

func lookupHardwareAddr(name string) (net.HardwareAddr, error) {
	if name != "" {
		iface, err := net.InterfaceByName(name)
		if err != nil {
			return nil, errors.Wrapf(err, "lookup interface %s", name)
		}
		if len(iface.HardwareAddr) == 0 {
			return nil, errors.Errorf("interface %s has no hardware address", name)
		}
		return iface.HardwareAddr, nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "list interfaces")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr, nil
	}
	return nil, errors.New("no interface with a hardware address")
}

// DeviceIdentity returns the 12-character device token.
func (p *Provider) DeviceIdentity() string {
	return p.id
}

// SessionName is the broker client id. It must differ between desks sharing
// a broker, otherwise the broker keeps kicking one session to admit the other.
func (p *Provider) SessionName() string {
	return sessionPrefix + p.id
}
