package display

import (
	"fmt"
	"sync"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	shittyLogger "github.com/d2r2/go-logger"
	"github.com/gethiox/paralexui/internal/pkg/logger"
)

var log = logger.GetLogger()

func getDisplay(addr uint8, bus int, lcdType device.LcdType) (*device.Lcd, *i2c.I2C, error) {
	shittyLogger.ChangePackageLogLevel("i2c", shittyLogger.InfoLevel)

	lcdRaw, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, nil, err
	}

	lcd, err := device.NewLcd(lcdRaw, lcdType)
	if err != nil {
		return nil, lcdRaw, err
	}

	return lcd, lcdRaw, nil
}

func loadCustomCharacters(lcd *device.Lcd, characters [][]byte) {
	for i, char := range characters {
		var location = uint8(i) & 0x7

		lcd.Command(device.CMD_CGRAM_Set | (location << 3))
		lcd.Write(char)
	}

}

var barMap = map[rune]byte{
	'▁': 0,
	'▂': 1,
	'▃': 2,
	'▄': 3,
	'▅': 4,
	'▆': 5,
	'▇': 6,
	'█': 7,
}

var exitMap = map[rune]byte{
	'❤': 0,
	'░': 1,
}

// replaceCharsForDisplay maps glyphs onto loaded custom character slots,
// other non-ascii runes are not available on the controller.
func replaceCharsForDisplay(s string, charset map[rune]byte) string {
	var ns = make([]byte, 0, len(s))
	for _, r := range s {
		n, ok := charset[r]
		switch {
		case ok:
			ns = append(ns, n)
		case r > 0x7f:
			ns = append(ns, '?')
		default:
			ns = append(ns, byte(r))
		}
	}
	return string(ns)
}

var exitChars = [][]byte{
	{0x00, 0x00, 0x0A, 0x1F, 0x1F, 0x0E, 0x04, 0x00}, // "❤"
	{0x06, 0x0C, 0x1B, 0x13, 0x10, 0x00, 0x00, 0x00}, // "░"
}

type DisplayData struct {
	Lines   [4]string
	LastMsg bool // inform LCD about loading exit message to load differrent custom character set
}

func HandleDisplay(wg *sync.WaitGroup, cfg Config, dd <-chan DisplayData) {
	defer wg.Done()
	lcd, bus, err := getDisplay(cfg.Address, cfg.Bus, cfg.Size.Type)
	if err != nil {
		if bus != nil {
			bus.Close()
		}
		log.Info(fmt.Sprintf("display unavailable: %s", err), logger.Warning)
		for range dd {
		}
		return
	}

	var barChars = [][]byte{
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F}, // "▁"
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F}, // "▂"
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F}, // "▃"
		{0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F}, // "▄"
		{0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▅"
		{0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▆"
		{0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▇"
		{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "█"
	}

	loadCustomCharacters(lcd, barChars)

	lcd.BacklightOn()
	lcd.Clear()

	var last [4]string
	var charset = barMap
	for data := range dd {
		if data.LastMsg {
			loadCustomCharacters(lcd, exitChars)
			lcd.Clear()
			charset = exitMap
			last = [4]string{}
		}
		for i, s := range data.Lines {
			if s == last[i] {
				continue
			}
			lcd.SetPosition(i, 0)
			lcd.Write([]byte(replaceCharsForDisplay(s, charset)))
		}
		last = data.Lines
	}

	bus.Close()
	log.Info("display closed", logger.Debug)
}
