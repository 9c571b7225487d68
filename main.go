package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"glitchsplash/assets"
	"glitchsplash/internal/splash"
)

func main() {
	skip := flag.Bool("skip", false, "skip the splash entirely")
	scene := flag.String("scene", "materialize", "scene preset ("+sceneNames()+")")
	seed := flag.Int64("seed", 0, "fix the animation's random seed (0 = random)")
	flag.Parse()

	preset, ok := assets.Scenes[*scene]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scene %q (have: %s)\n", *scene, sceneNames())
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	splash.NewRunner(screen, preset(), *seed, *skip, nil).Run()
}

func sceneNames() string {
	names := make([]string, 0, len(assets.Scenes))
	for name := range assets.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
