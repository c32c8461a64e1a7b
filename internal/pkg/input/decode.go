package input

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const devicesFile = "/proc/bus/input/devices"

// GetHandlers returns a list of available input handlers in the system.
// Note: there is non-zero probability that returned list may be incomplete,
// handlers appearing during the read are reported on the next call.
func GetHandlers() ([]DeviceInfo, error) {
	data, err := os.ReadFile(devicesFile)
	if err != nil {
		return nil, err
	}

	return unmarshal(data)
}

// unmarshal parses /proc/bus/input/devices file
func unmarshal(data []byte) ([]DeviceInfo, error) {
	var devices = make([]DeviceInfo, 0)

	var device DeviceInfo
	var pending bool

	flush := func() {
		if pending {
			devices = append(devices, device)
		}
		device = DeviceInfo{}
		pending = false
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(line) < 3 {
			return devices, fmt.Errorf("malformed line: %q", line)
		}
		pending = true

		label := line[:1]
		info := line[3:]

		switch label {
		case "I":
			for _, param := range strings.Fields(info) {
				l, v, ok := strings.Cut(param, "=")
				if !ok {
					return devices, fmt.Errorf("malformed id field: %q", param)
				}
				uv, err := strconv.ParseUint(v, 16, 16)
				if err != nil {
					return devices, fmt.Errorf("hex decoding failed: %v", err)
				}
				switch l {
				case "Bus":
					device.ID.Bus = uint16(uv)
				case "Vendor":
					device.ID.Vendor = uint16(uv)
				case "Product":
					device.ID.Product = uint16(uv)
				case "Version":
					device.ID.Version = uint16(uv)
				}
			}
		case "N":
			device.Name = strings.Trim(strings.TrimPrefix(info, "Name="), "\"")
		case "P":
			device.Phys = strings.TrimPrefix(info, "Phys=")
		case "S":
			device.Sysfs = strings.TrimPrefix(info, "Sysfs=")
		case "U":
			device.Uniq = strings.TrimPrefix(info, "Uniq=")
		case "H":
			// If there is at least one handler, there is additional space at the end of the line
			device.Handlers = strings.Fields(strings.TrimPrefix(info, "Handlers="))
		case "B":
			l, v, ok := strings.Cut(info, "=")
			if !ok || l != "EV" {
				continue
			}
			uv, err := strconv.ParseUint(v, 16, 64)
			if err != nil {
				return devices, fmt.Errorf("hex decoding failed: %v", err)
			}
			device.EV = uv
		}
	}
	flush()

	return devices, nil
}
