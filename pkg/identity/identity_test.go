package identity

import (
	"net"
	"regexp"
	"strings"
	"testing"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityFormat = regexp.MustCompile(`^[0-9A-F]{12}$`)

func TestNewFormatsHighAndLowParts(t *testing.T) {
	provider := New(0x0000A1B2C3D4E5F6)
	assert.Equal(t, "A1B2C3D4E5F6", provider.DeviceIdentity())
}

func TestNewPadsWithZeros(t *testing.T) {
	provider := New(0x1)
	assert.Equal(t, "000000000001", provider.DeviceIdentity())
}

func TestNewIgnoresBitsAboveFortyEight(t *testing.T) {
	provider := New(0xFFFF000000000001)
	assert.Equal(t, "000000000001", provider.DeviceIdentity())
}

func TestFromHardwareAddrUsesEfuseByteOrder(t *testing.T) {
	addr, err := net.ParseMAC("24:0a:c4:12:34:56")
	require.NoError(t, err)

	assert.Equal(t, uint64(0x563412C40A24), FromHardwareAddr(addr))
	assert.Equal(t, "563412C40A24", New(FromHardwareAddr(addr)).DeviceIdentity())
}

func TestDeviceIdentityIsStable(t *testing.T) {
	provider, err := Resolve(entities.DeviceConfig{HardwareAddress: "24:0a:c4:12:34:56"})
	require.NoError(t, err)

	first := provider.DeviceIdentity()
	second := provider.DeviceIdentity()
	assert.Equal(t, first, second)
	assert.Regexp(t, identityFormat, first)
}

func TestSessionNameCarriesIdentity(t *testing.T) {
	provider := New(0x563412C40A24)
	name := provider.SessionName()
	assert.True(t, strings.HasPrefix(name, "SmartDesk_"))
	assert.Equal(t, "SmartDesk_563412C40A24", name)
}

func TestResolveWhenInvalidHardwareAddressThenError(t *testing.T) {
	_, err := Resolve(entities.DeviceConfig{HardwareAddress: "not-a-mac"})
	assert.Error(t, err)
}

func TestResolveWhenUnknownInterfaceThenError(t *testing.T) {
	_, err := Resolve(entities.DeviceConfig{Interface: "smartdesk-missing0"})
	assert.Error(t, err)
}
