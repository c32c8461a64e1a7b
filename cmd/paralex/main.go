package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/awesome-gocui/gocui"
	"github.com/gethiox/paralexui/internal/pkg/display"
	"github.com/gethiox/paralexui/internal/pkg/led"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/utils"
	"github.com/logrusorgru/aurora"
	"github.com/lucasb-eyer/go-colorful"
)

var log = logger.GetLogger()

var logLevels = []int{logger.InfoLvl, logger.ActionLvl, logger.ValueLvl, logger.GestureLvl, logger.DebugLvl}

var (
	grab     = flag.Bool("grab", false, "grab pointer devices for exclusive usage")
	ui       = flag.Bool("ui", false, "engage interactive ui")
	force256 = flag.Bool("256", false, "force 256 color mode")
	nocolor  = flag.Bool("nocolor", false, "disable color")
	panelArg = flag.String("panel", "", "panel to show, overrides the config file")
	logLevel = flag.Int("loglevel", 1,
		"logging level, each level enables additional information class (0-4, default: 1)\n"+
			"\navailable options:\n"+
			"0: general info (eg. panel and pointer status)\n"+
			"1: actions (toggles, commands, selection)\n"+
			"2: parameter values\n"+
			"3: gestures\n"+
			"4: debug",
	)
	silent = flag.Bool("silent", false, "no output logging")
)

func threshold(level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(logLevels) {
		level = len(logLevels) - 1
	}
	return logLevels[level]
}

func handleSigs(sigs <-chan os.Signal, cancel func()) {
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		cancel()
		counter++
	}
}

func runUI(ctx context.Context, commands chan<- command, sigs chan<- os.Signal) *gocui.Gui {
	g, err := GetCli(ctx, commands)
	if err != nil {
		panic(err)
	}

	go func() {
		err := g.MainLoop()
		if err != nil && err != gocui.ErrQuit {
			log.Info(fmt.Sprintf("ui failed: %v", err), logger.Error)
		}
		select {
		case sigs <- syscall.SIGINT: // pretend that we received signal when exited from gui
		default:
		}
	}()

	return g
}

func printLogs(colors bool, level int) {
	au := aurora.NewAurora(colors)
	for data := range logger.Messages {
		msg, err := unpack(data)
		if err != nil {
			fmt.Printf("%s\n", string(data))
			continue
		}
		m := prepareString(msg, au, -1, level)
		if m != "" {
			fmt.Printf("%s\n", m)
		}
	}
}

func drain[T any](c <-chan T) {
	for range c {
	}
}

// fills turns snapshots into knob fill colors for the LED sink.
func fills(snapshots <-chan Snapshot) <-chan []colorful.Color {
	out := make(chan []colorful.Color)
	go func() {
		defer close(out)
		for s := range snapshots {
			colors := make([]colorful.Color, len(s.Views))
			for i, v := range s.Views {
				colors[i] = v.Fill
			}
			out <- colors
		}
	}()
	return out
}

func main() {
	flag.Parse()
	if *force256 {
		os.Setenv("TERM", "xterm-256color")
	}

	err := createConfigDirectoryIfNeeded()
	if err != nil {
		panic(err)
	}

	var cfg = LoadParalexConfig(configFile)
	if *panelArg != "" {
		cfg.Paralex.Panel = *panelArg
	}
	log.Info(fmt.Sprintf("paralex config: %+v", cfg), logger.Debug)

	level := threshold(*logLevel)
	interactive := *ui && !*silent

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	commands := make(chan command, 64)
	snapshots := make(chan Snapshot, 1)
	fan := utils.NewDynamicFanOut[Snapshot](snapshots)

	var g *gocui.Gui
	if interactive {
		g = runUI(ctx, commands, sigs)
	}

	// this wait-group has to be propagated everywhere where usual logging appear
	wg := sync.WaitGroup{}

	go handleSigs(sigs, cancel)

	spawn := func() <-chan Snapshot {
		_, out, err := fan.SpawnOutput()
		if err != nil {
			panic(err)
		}
		return out
	}

	screenSnapshots := spawn()
	wg.Add(1)
	dd := GenerateDisplayData(ctx, &wg, cfg.Screen, screenSnapshots)
	ddOut := utils.NewDynamicFanOut(dd)
	_, dd1, _ := ddOut.SpawnOutput()
	_, dd2, _ := ddOut.SpawnOutput()

	if cfg.Screen.Enabled {
		wg.Add(1)
		go display.HandleDisplay(&wg, cfg.Screen, dd1)
	} else {
		go drain(dd1)
	}

	ledSnapshots := spawn()
	if cfg.OpenRGB.Enabled {
		wg.Add(1)
		go led.HandleLEDs(ctx, &wg, cfg.OpenRGB, fills(ledSnapshots))
	} else {
		go drain(ledSnapshots)
	}

	if interactive {
		go logView(g, !*nocolor, level, cfg.Paralex.LogBufferSize, cfg.Paralex.LogViewRate)
		go panelView(g, !*nocolor, spawn())
		go lcdView(g, dd2)
	} else {
		go drain(dd2)
		if *silent {
			go drain(logger.Messages)
		} else {
			fmt.Printf("for interactive control use -ui flag\n")
			go printLogs(!*nocolor, level)
		}
	}

	wg.Add(1)
	go runPointers(ctx, &wg, cfg, *grab, commands)

	wg.Add(1)
	go runHost(ctx, &wg, cancel, newHost(configDir, cfg.Paralex.Panel, cfg.Gesture), commands, snapshots)

	<-ctx.Done()
	log.Info("waiting...", logger.Debug)
	if g != nil {
		g.Close()
	}

	// closing logger can be safely invoked only when all internally running goroutines (that may emit logs) are done
	wg.Wait()
	<-fan.Done()
	<-ddOut.Done()
	close(logger.Messages)
}
