package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var CLI struct {
	Render RenderCmd `cmd:"" default:"withargs" help:"Render a scene to a PNG file"`
	Scenes ScenesCmd `cmd:"" help:"List the built-in scenes"`
}

type RenderCmd struct {
	Scene   string `name:"scene" default:"default" help:"Built-in scene name or path to a .yaml scene file"`
	Output  string `name:"output" short:"o" help:"Output PNG path (default output/<scene>/render_<timestamp>.png)"`
	Samples int    `name:"samples" help:"Samples per pixel (0 keeps the scene's value)"`
	Depth   int    `name:"depth" help:"Maximum ray bounce depth (0 keeps the scene's value)"`
	Workers int    `name:"workers" help:"Rows rendered concurrently (0 uses every CPU)"`
	Seed    int64  `name:"seed" help:"Base random seed (0 keeps the scene's value)"`
	Width   int    `name:"width" help:"Image width in pixels (0 keeps the scene's value)"`
	Height  int    `name:"height" help:"Image height in pixels (0 keeps the scene's value)"`
}

func (c *RenderCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := c.render(ctx, renderer.NewDefaultLogger())
	return err
}

// render renders the selected scene and returns the path of the written PNG
func (c *RenderCmd) render(ctx context.Context, logger core.Logger) (string, error) {
	selected, err := scene.Load(c.Scene)
	if err != nil {
		return "", err
	}
	logger.Printf("Using scene %q (%d spheres)\n", selected.Name, selected.GetPrimitiveCount())

	camera, err := selected.NewCamera(c.Width, c.Height)
	if err != nil {
		return "", err
	}

	raytracer := selected.NewRaytracer(camera, renderer.SamplingConfig{
		SamplesPerPixel: c.Samples,
		MaxDepth:        c.Depth,
		NumWorkers:      c.Workers,
		Seed:            c.Seed,
	}, logger)

	pixels, stats, err := raytracer.Render(ctx)
	if err != nil {
		return "", err
	}

	img, err := renderer.ToImage(pixels, camera.Width(), camera.Height())
	if err != nil {
		return "", err
	}
	logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := c.Output
	if filename == "" {
		// Create timestamped filename
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", selected.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := gg.SavePNG(filename, img); err != nil {
		return "", fmt.Errorf("saving PNG: %w", err)
	}

	logger.Printf("Render saved as %s (%d samples in %v)\n", filename, stats.TotalSamples, stats.Duration)
	return filename, nil
}

type ScenesCmd struct{}

func (c *ScenesCmd) Run() error {
	fmt.Println("Built-in scenes:")
	for _, name := range scene.BuiltinNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("Any path ending in .yaml or .yml is loaded as a scene file.")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pathtracer"),
		kong.Description("CPU Monte-Carlo sphere path tracer"),
	)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
