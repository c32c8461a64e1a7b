package input

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
)

type PhysicalID string

// DeviceInfo contains information of every reported event device
// it is supposed to be created by unmarshal function only
type DeviceInfo struct {
	ID       InputID  // ID of the device
	Name     string   // name of the device
	Phys     string   // physical path to the device in the system hierarchy
	Sysfs    string   // sysfs path
	Uniq     string   // unique identification code for the device (if device has it)
	Handlers []string // list of input handles associated with the device
	EV       uint64   // bitmap of supported event types
}

type InputID struct {
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func (i *InputID) String() string {
	return fmt.Sprintf("0x%04x 0x%04x 0x%04x 0x%04x", i.Bus, i.Vendor, i.Product, i.Version)
}

func (d *DeviceInfo) String() string {
	return fmt.Sprintf("\"%s\" (%s, %s)", d.Name, d.ID.String(), d.EventPath())
}

// Event returns event name, like "event0" for /dev/input/event0
func (d *DeviceInfo) Event() string {
	for _, h := range d.Handlers {
		if strings.HasPrefix(h, "event") {
			return h
		}
	}
	return ""
}

// EventPath returns a /dev/input/event filepath for given handler
func (d *DeviceInfo) EventPath() string {
	event := d.Event()
	if event == "" {
		return ""
	}
	return fmt.Sprintf("/dev/input/%s", event)
}

// Supports tells if the handler reports every given event type.
func (d *DeviceInfo) Supports(types ...evdev.EvType) bool {
	for _, t := range types {
		if d.EV&(1<<uint(t)) == 0 {
			return false
		}
	}
	return true
}

// IsPointer tells if the handler is a relative pointing device with buttons.
func (d *DeviceInfo) IsPointer() bool {
	if !d.Supports(evdev.EV_SYN, evdev.EV_KEY, evdev.EV_REL) {
		return false
	}
	for _, h := range d.Handlers {
		if strings.HasPrefix(h, "mouse") {
			return true
		}
	}
	return false
}

// PhysicalUUID returns unique UUID based on connection of given USB port
// The main usage is to identify groups of handlers that represent one physical device
func (d *DeviceInfo) PhysicalUUID() PhysicalID {
	phys := strings.Split(d.Phys, "/")
	return PhysicalID(phys[0])
}

// FindPointers returns every pointer handler available in the system.
func FindPointers() ([]DeviceInfo, error) {
	infos, err := GetHandlers()
	if err != nil {
		return nil, fmt.Errorf("listing input handlers failed: %w", err)
	}
	return pointers(infos), nil
}

func pointers(infos []DeviceInfo) []DeviceInfo {
	var found []DeviceInfo
	for _, di := range infos {
		if di.IsPointer() && di.EventPath() != "" {
			found = append(found, di)
		}
	}
	return found
}
