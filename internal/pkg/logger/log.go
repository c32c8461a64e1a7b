package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Messages = make(chan []byte, 128)

const (
	ErrorLvl   = 0
	WarningLvl = 1
	InfoLvl    = 2
	ActionLvl  = 3
	ValueLvl   = 4
	GestureLvl = 5

	DebugLvl = 378
)

var (
	Error   = zap.Int("level", ErrorLvl)
	Warning = zap.Int("level", WarningLvl)
	Info    = zap.Int("level", InfoLvl)
	Action  = zap.Int("level", ActionLvl)
	Value   = zap.Int("level", ValueLvl)
	Gesture = zap.Int("level", GestureLvl)

	Debug = zap.Int("level", DebugLvl)
)

type chanWriter struct {
	sync.Mutex
}

func (w *chanWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	var newSlice = make([]byte, len(p))
	copy(newSlice, p)
	select {
	case Messages <- newSlice:
	default:
		// nobody drains the channel (tests, headless runs), dropping
	}
	w.Unlock()
	return len(p), nil
}

func (w *chanWriter) Sync() error {
	return nil
}

func GetLogger() *zap.Logger {
	writer := &chanWriter{}
	cfg := zap.NewProductionEncoderConfig()
	cfg.SkipLineEnding = true
	cfg.EncodeTime = zapcore.EpochNanosTimeEncoder
	cfg.LevelKey = ""
	encoder := zapcore.NewJSONEncoder(cfg)
	noSync := zapcore.Lock(writer)

	logger := zap.New(
		zapcore.NewCore(encoder, noSync, zap.DebugLevel),
		zap.AddCaller(),
	)

	return logger
}

// Nop is handed to components that were asked to stay quiet.
func Nop() *zap.Logger {
	return zap.NewNop()
}
