// heightgen writes fractal-noise heightmaps for the terrain viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"

	"github.com/Faultbox/heightfield/internal/heightgen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heightgen - fractal heightmap generator

Usage:
  heightgen <command> [options]

Commands:
  generate [options] <out.png>   Generate a grayscale heightmap
  info <file.png>                Show size and height range of a heightmap

Examples:
  heightgen generate -size 1025 -seed 42 assets/heightmap.png
  heightgen generate -octaves 8 -frequency 2 rough.png
  heightgen info assets/heightmap.png`)
}

func cmdGenerate(args []string) {
	def := heightgen.DefaultParams()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	size := fs.Int("size", 0, "width and height in pixels (overrides -width/-height)")
	width := fs.Int("width", def.Width, "width in pixels")
	height := fs.Int("height", def.Height, "height in pixels")
	seed := fs.Int64("seed", def.Seed, "noise seed")
	octaves := fs.Int("octaves", def.Octaves, "number of noise octaves")
	frequency := fs.Float64("frequency", def.Frequency, "noise cycles across the map")
	persistence := fs.Float64("persistence", def.Persistence, "amplitude ratio between octaves")
	lacunarity := fs.Float64("lacunarity", def.Lacunarity, "frequency ratio between octaves")
	workers := fs.Int("workers", 0, "worker goroutines (0 = one per CPU)")
	quiet := fs.Bool("quiet", false, "hide the progress bar")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: heightgen generate [options] <out.png>")
		os.Exit(1)
	}
	out := fs.Arg(0)

	p := heightgen.Params{
		Width:       *width,
		Height:      *height,
		Seed:        *seed,
		Octaves:     *octaves,
		Frequency:   *frequency,
		Persistence: *persistence,
		Lacunarity:  *lacunarity,
		Workers:     *workers,
	}
	if *size > 0 {
		p.Width, p.Height = *size, *size
	}
	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var onRow func()
	if !*quiet {
		pb := progressbar.Default(int64(p.Height), "generating")
		defer pb.Close()
		onRow = func() { pb.Add(1) }
	}

	img, err := heightgen.Generate(ctx, p, onRow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeFile(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d, seed %d)\n", out, p.Width, p.Height, p.Seed)
}

func writeFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := heightgen.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: heightgen info <file.png>")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	lo, hi := uint8(255), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			lo = min(lo, g)
			hi = max(hi, g)
		}
	}

	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("Size:    %dx%d\n", b.Dx(), b.Dy())
	fmt.Printf("Heights: %d..%d\n", lo, hi)
}
