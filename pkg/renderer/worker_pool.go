package renderer

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/lumeray/lumeray/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool. Workers
// resume from each pixel's accumulated sample count, so progressive passes
// only need the cumulative target.
type TileTask struct {
	Tile          Tile
	TargetSamples int // Total samples per pixel to reach
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileIndex int
	WorkerID  int
	Stats     RenderStats
	Elapsed   time.Duration
	Err       error
}

// WorkerPool manages parallel tile rendering. Workers pull tiles from a
// shared channel, so uneven per-tile cost cannot stall the render behind a
// slow static partition; the channel receive is the only synchronization
// point on the hot path.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup

	scene       core.Scene
	integrator  core.Integrator
	framebuffer *Framebuffer
	seed        int64
	config      core.SamplingConfig
}

// NewWorkerPool creates a worker pool rendering into the given framebuffer
func NewWorkerPool(scene core.Scene, integrator core.Integrator, fb *Framebuffer, config core.SamplingConfig, seed int64, numWorkers, queueDepth int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, queueDepth),
		resultQueue: make(chan TileResult, queueDepth),
		numWorkers:  numWorkers,
		scene:       scene,
		integrator:  integrator,
		framebuffer: fb,
		seed:        seed,
		config:      config,
	}
}

// Start launches the workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx, i)
	}
}

// Stop closes the task queue and waits for all workers to drain
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a tile task
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Results exposes the completed-tile channel
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Each worker owns a private sampler; the
// shared scene and BVH are read-only, so no locks are taken per sample.
func (wp *WorkerPool) run(ctx context.Context, workerID int) {
	defer wp.wg.Done()

	sampler := core.NewRandomSampler(wp.seed)

	for task := range wp.taskQueue {
		// Cancellation is cooperative and checked between tiles only;
		// completed tiles stay intact in the framebuffer
		select {
		case <-ctx.Done():
			wp.resultQueue <- TileResult{TileIndex: task.Tile.Index, WorkerID: workerID, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		stats, err := wp.renderTile(task, sampler)
		wp.resultQueue <- TileResult{
			TileIndex: task.Tile.Index,
			WorkerID:  workerID,
			Stats:     stats,
			Elapsed:   time.Since(start),
			Err:       err,
		}
	}
}

// renderTile renders every pixel of one tile into the shared framebuffer.
// Tiles have disjoint bounds, so the writes race with nothing. A panic in
// the integrator is captured and surfaced as a failed render: a partial
// framebuffer must never be mistaken for a complete one.
func (wp *WorkerPool) renderTile(task TileTask, sampler *core.RandomSampler) (stats RenderStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render worker panicked on tile %d: %v", task.Tile.Index, r)
		}
	}()

	bounds := task.Tile.Bounds
	stats = RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  task.TargetSamples,
		MinSamples:  task.TargetSamples,
	}

	camera := wp.scene.GetCamera()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := wp.framebuffer.Pixel(x, y)
			before := ps.SampleCount

			for ps.SampleCount < task.TargetSamples && !wp.shouldStopSampling(ps, task.TargetSamples) {
				// Reseeding per sample keeps the stream a pure function of
				// (seed, pixel, sample index): results do not depend on
				// which worker renders the tile or in what order
				sampler.Reseed(core.PixelSeed(wp.seed, x, y, ps.SampleCount))
				ray := camera.GetRay(x, y, sampler)
				ps.AddSample(wp.integrator.RayColor(ray, wp.scene, sampler))
			}

			used := ps.SampleCount - before
			stats.TotalSamples += used
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// shouldStopSampling reports whether adaptive sampling has converged for a
// pixel, based on the relative error of its luminance estimate
func (wp *WorkerPool) shouldStopSampling(ps *PixelStats, maxSamples int) bool {
	if wp.config.AdaptiveThreshold <= 0 {
		return false // Adaptive sampling disabled
	}

	minSamples := max(1, int(float64(maxSamples)*wp.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	variance := ps.Variance()

	if mean <= 1e-8 {
		return variance < 1e-6 // Dark pixels converge on absolute variance
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < wp.config.AdaptiveThreshold
}
