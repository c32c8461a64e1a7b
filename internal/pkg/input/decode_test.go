package input

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devices = `I: Bus=0019 Vendor=0000 Product=0001 Version=0000
N: Name="Power Button"
P: Phys=LNXPWRBN/button/input0
S: Sysfs=/devices/LNXSYSTM:00/LNXPWRBN:00/input/input0
U: Uniq=
H: Handlers=kbd event0 
B: PROP=0
B: EV=3
B: KEY=10000000000000 0

I: Bus=0003 Vendor=046d Product=c077 Version=0111
N: Name="Logitech USB Optical Mouse"
P: Phys=usb-0000:00:14.0-2/input0
S: Sysfs=/devices/pci0000:00/0000:00:14.0/usb1/1-2/1-2:1.0/0003:046D:C077.0001/input/input5
U: Uniq=
H: Handlers=mouse0 event5 
B: PROP=0
B: EV=17
B: KEY=70000 0 0 0 0
B: REL=903
B: MSC=10

`

func TestUnmarshal(t *testing.T) {
	infos, err := unmarshal([]byte(devices))
	require.NoError(t, err)
	require.Equal(t, 2, len(infos))

	mouse := infos[1]
	assert.Equal(t, "Logitech USB Optical Mouse", mouse.Name)
	assert.Equal(t, InputID{Bus: 0x3, Vendor: 0x46d, Product: 0xc077, Version: 0x111}, mouse.ID)
	assert.Equal(t, []string{"mouse0", "event5"}, mouse.Handlers)
	assert.Equal(t, "/dev/input/event5", mouse.EventPath())
	assert.Equal(t, PhysicalID("usb-0000:00:14.0-2"), mouse.PhysicalUUID())
	assert.True(t, mouse.Supports(evdev.EV_SYN, evdev.EV_KEY, evdev.EV_REL, evdev.EV_MSC))
	assert.False(t, mouse.Supports(evdev.EV_ABS))

	assert.False(t, infos[0].IsPointer())
	assert.True(t, mouse.IsPointer())

	found := pointers(infos)
	assert.Equal(t, 1, len(found))
	assert.Equal(t, "event5", found[0].Event())
}

func TestUnmarshalEmpty(t *testing.T) {
	infos, err := unmarshal(nil)
	assert.Equal(t, nil, err)
	assert.Empty(t, infos)
}

func TestUnmarshalMalformed(t *testing.T) {
	_, err := unmarshal([]byte("I: Bus=zz"))
	assert.Error(t, err)
}

func TestDiffPointers(t *testing.T) {
	infos, err := unmarshal([]byte(devices))
	require.NoError(t, err)
	mouse := infos[1]

	fresh, missing := diffPointers(map[string]DeviceInfo{}, []DeviceInfo{mouse})
	assert.Equal(t, 1, len(fresh))
	assert.Empty(t, missing)

	fresh, missing = diffPointers(map[string]DeviceInfo{mouse.EventPath(): mouse}, nil)
	assert.Empty(t, fresh)
	assert.Equal(t, 1, len(missing))
}
