package renderer

import (
	"context"
	"time"

	"github.com/lumeray/lumeray/log"
	"github.com/lumeray/lumeray/pkg/core"
)

var logger = log.New("renderer")

// Config contains the scheduling configuration for a render
type Config struct {
	Width      int   // Output width in pixels
	Height     int   // Output height in pixels
	TileSize   int   // Tile edge length in pixels (0 = 64)
	NumWorkers int   // Worker goroutines (0 = CPU count)
	Seed       int64 // Base seed for all sample streams

	// Sampling overrides merged over the scene's recommended config
	Sampling core.SamplingConfig

	// Progressive rendering controls
	MaxPasses      int // Number of progressive passes (0 = single pass)
	InitialSamples int // Samples per pixel in the first preview pass (0 = 1)
}

// PassResult is delivered to the progressive callback after each pass
type PassResult struct {
	PassNumber    int
	TargetSamples int
	Framebuffer   *Framebuffer
	Stats         RenderStats
	Elapsed       time.Duration
}

// PassCallback observes completed progressive passes. It runs on the
// renderer's goroutine, never concurrently with itself.
type PassCallback func(PassResult)

// Renderer drives the tile scheduler: it partitions the framebuffer into
// tiles, feeds them to a worker pool, and aggregates the results
type Renderer struct {
	scene      core.Scene
	integrator core.Integrator
	config     Config
	sampling   core.SamplingConfig
}

// NewRenderer creates a renderer for the given scene and integrator
func NewRenderer(scene core.Scene, integratorInst core.Integrator, config Config) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = 64
	}
	return &Renderer{
		scene:      scene,
		integrator: integratorInst,
		config:     config,
		sampling:   scene.GetSamplingConfig().Merge(config.Sampling),
	}
}

// SamplingConfig returns the effective sampling configuration
func (r *Renderer) SamplingConfig() core.SamplingConfig {
	return r.sampling
}

// Render renders a complete frame. Cancelling the context stops the render
// between tiles; tiles finished before cancellation remain intact in the
// returned framebuffer, and the context error is returned. A worker
// failure aborts the render with its error: a silently partial frame is
// worse than no frame.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, FrameStats, error) {
	fb := NewFramebuffer(r.config.Width, r.config.Height)
	frameStats := FrameStats{}

	start := time.Now()
	stats, err := r.renderPass(ctx, fb, r.sampling.SamplesPerPixel, &frameStats)
	frameStats.Render = stats
	frameStats.RenderTime = time.Since(start)

	return fb, frameStats, err
}

// RenderProgressive renders the frame in passes of increasing sample
// counts, invoking the callback after each pass so callers can display
// intermediate results
func (r *Renderer) RenderProgressive(ctx context.Context, callback PassCallback) (*Framebuffer, FrameStats, error) {
	fb := NewFramebuffer(r.config.Width, r.config.Height)
	frameStats := FrameStats{}

	maxPasses := r.config.MaxPasses
	if maxPasses <= 0 {
		maxPasses = 1
	}

	start := time.Now()
	accumulated := 0
	for pass := 1; pass <= maxPasses; pass++ {
		target := r.samplesForPass(pass, maxPasses)
		if target <= accumulated && pass < maxPasses {
			continue
		}

		logger.Debugf("pass %d/%d: %d samples per pixel", pass, maxPasses, target)

		passStart := time.Now()
		stats, err := r.renderPass(ctx, fb, target, &frameStats)
		frameStats.Render.merge(stats)
		if err != nil {
			frameStats.RenderTime = time.Since(start)
			return fb, frameStats, err
		}

		if callback != nil {
			callback(PassResult{
				PassNumber:    pass,
				TargetSamples: target,
				Framebuffer:   fb,
				Stats:         stats,
				Elapsed:       time.Since(passStart),
			})
		}
		accumulated = target
	}

	frameStats.RenderTime = time.Since(start)
	return fb, frameStats, nil
}

// samplesForPass computes the cumulative per-pixel sample target for a
// pass: a quick preview first, then the remaining budget spread evenly,
// with the final pass taking whatever is left
func (r *Renderer) samplesForPass(pass, maxPasses int) int {
	total := r.sampling.SamplesPerPixel
	if maxPasses == 1 || pass >= maxPasses {
		return total
	}

	initial := r.config.InitialSamples
	if initial <= 0 {
		initial = 1
	}
	if pass == 1 {
		return min(initial, total)
	}

	perPass := (total - initial) / (maxPasses - 1)
	return min(initial+(pass-1)*perPass, total)
}

// renderPass schedules every tile once and drains the results
func (r *Renderer) renderPass(ctx context.Context, fb *Framebuffer, targetSamples int, frameStats *FrameStats) (RenderStats, error) {
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)

	pool := NewWorkerPool(r.scene, r.integrator, fb, r.sampling, r.config.Seed, r.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	for _, tile := range tiles {
		pool.Submit(TileTask{Tile: tile, TargetSamples: targetSamples})
	}

	workerStats := make(map[int]*WorkerStats)
	passStats := RenderStats{}
	var renderErr error

	for range tiles {
		result := <-pool.Results()
		if result.Err != nil {
			if renderErr == nil {
				renderErr = result.Err
			}
			continue
		}

		passStats.merge(result.Stats)
		ws, ok := workerStats[result.WorkerID]
		if !ok {
			ws = &WorkerStats{WorkerID: result.WorkerID}
			workerStats[result.WorkerID] = ws
		}
		ws.Tiles++
		ws.Samples += result.Stats.TotalSamples
		ws.RenderTime += result.Elapsed
	}
	pool.Stop()

	for id := 0; id < pool.NumWorkers(); id++ {
		if ws, ok := workerStats[id]; ok {
			frameStats.Workers = append(frameStats.Workers, *ws)
		}
	}

	return passStats, renderErr
}
