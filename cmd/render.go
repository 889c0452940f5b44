package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/integrator"
	"github.com/lumeray/lumeray/pkg/renderer"
)

// RenderFrame renders a single frame of a built-in scene to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	sc, err := sceneByName(ctx.String("scene"), width, height)
	if err != nil {
		return err
	}
	if err := sc.Preprocess(); err != nil {
		return err
	}

	overrides := core.SamplingConfig{
		SamplesPerPixel:   ctx.Int("spp"),
		MaxDepth:          ctx.Int("depth"),
		AdaptiveThreshold: ctx.Float64("adaptive-threshold"),
	}
	if ctx.Bool("no-adaptive") {
		overrides.AdaptiveThreshold = -1
	}

	config := renderer.Config{
		Width:      width,
		Height:     height,
		TileSize:   ctx.Int("tile-size"),
		NumWorkers: ctx.Int("workers"),
		Seed:       int64(ctx.Int("seed")),
		Sampling:   overrides,
		MaxPasses:  ctx.Int("passes"),
	}

	var integratorInst core.Integrator
	switch name := ctx.String("integrator"); name {
	case "path":
		integratorInst = integrator.NewPathTracingIntegrator(sc.GetSamplingConfig().Merge(overrides))
	case "whitted":
		ambient := ctx.Float64("ambient")
		integratorInst = integrator.NewWhittedIntegrator(
			sc.GetSamplingConfig().Merge(overrides),
			core.NewVec3(ambient, ambient, ambient),
		)
	default:
		return fmt.Errorf("unknown integrator %q; supported: path, whitted", name)
	}

	r := renderer.NewRenderer(sc, integratorInst, config)

	// Interrupts cancel the render between tiles
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %dx%d frame with %d samples per pixel", width, height, r.SamplingConfig().SamplesPerPixel)

	var fb *renderer.Framebuffer
	var stats renderer.FrameStats
	if config.MaxPasses > 1 {
		fb, stats, err = r.RenderProgressive(renderCtx, func(pass renderer.PassResult) {
			logger.Infof("pass %d done: %d samples per pixel in %s", pass.PassNumber, pass.TargetSamples, pass.Elapsed)
		})
	} else {
		fb, stats, err = r.Render(renderCtx)
	}
	if err != nil {
		return err
	}

	displayFrameStats(stats)

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, fb.ToImage(ctx.Float64("gamma"))); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Samples", "Render time"})
	for _, ws := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", ws.WorkerID),
			fmt.Sprintf("%d", ws.Tiles),
			fmt.Sprintf("%d", ws.Samples),
			fmt.Sprintf("%s", ws.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("avg %.1f spp", stats.Render.AverageSamples), fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
