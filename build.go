//go:build ignore

// Cross-compiles paralex for the supported platforms: go run build.go -platforms linux-arm64
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

type platform struct {
	goos, goarch, goarm string
}

func (p platform) String() string {
	if p.goarm != "" {
		return fmt.Sprintf("%s-%s-v%s", p.goos, p.goarch, p.goarm)
	}
	return fmt.Sprintf("%s-%s", p.goos, p.goarch)
}

func (p platform) env() []string {
	env := append(os.Environ(), "GOOS="+p.goos, "GOARCH="+p.goarch, "CGO_ENABLED=0")
	if p.goarm != "" {
		env = append(env, "GOARM="+p.goarm)
	}
	return env
}

var platforms = []platform{
	{goos: "linux", goarch: "arm", goarm: "6"},
	{goos: "linux", goarch: "arm", goarm: "7"},
	{goos: "linux", goarch: "arm64"},
	{goos: "linux", goarch: "386"},
	{goos: "linux", goarch: "amd64"},
}

var (
	selection = flag.String("platforms", "all", "comma-separated platform list")
	project   = flag.String("project", "./cmd/paralex/", "project directory")
	basename  = flag.String("base", "paralex", "base filename for output binaries")
	race      = flag.Bool("race", false, "include race detector")
	output    = flag.String("output", "./builds", "output directory")
)

func selectPlatforms(selection string) ([]platform, error) {
	if selection == "all" {
		return platforms, nil
	}
	var selected []platform
outer:
	for _, name := range strings.Split(selection, ",") {
		for _, p := range platforms {
			if p.String() == name {
				selected = append(selected, p)
				continue outer
			}
		}
		return nil, fmt.Errorf("platform not found: %s", name)
	}
	return selected, nil
}

func build(p platform) error {
	args := []string{"build", "-trimpath", "-o", filepath.Join(*output, fmt.Sprintf("%s-%s", *basename, p))}
	if *race {
		args = append(args, "-race")
	}
	args = append(args, *project)

	var stderr bytes.Buffer
	cmd := exec.Command("go", args...)
	cmd.Env = p.env()
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w\n%s", p, err, stderr.String())
	}
	return nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	selected, err := selectPlatforms(*selection)
	if err != nil {
		log.Fatal(err)
	}

	var failed bool
	var mutex sync.Mutex
	wg := sync.WaitGroup{}
	for _, p := range selected {
		wg.Add(1)
		go func(p platform) {
			defer wg.Done()
			log.Printf("building %s", p)
			if err := build(p); err != nil {
				mutex.Lock()
				failed = true
				mutex.Unlock()
				log.Printf("building %s failed: %s", p, err)
				return
			}
			log.Printf("building %s done", p)
		}(p)
	}
	wg.Wait()

	if failed {
		os.Exit(1)
	}
}
