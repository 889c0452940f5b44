package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken by any pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// merge combines stats from another tile into this aggregate
func (rs *RenderStats) merge(other RenderStats) {
	if rs.TotalPixels == 0 {
		rs.MinSamples = other.MinSamples
	} else if other.TotalPixels > 0 {
		rs.MinSamples = min(rs.MinSamples, other.MinSamples)
	}
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.MaxSamples = max(rs.MaxSamples, other.MaxSamples)
	rs.MaxSamplesUsed = max(rs.MaxSamplesUsed, other.MaxSamplesUsed)
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// WorkerStats summarizes one worker's share of a finished frame
type WorkerStats struct {
	WorkerID   int
	Tiles      int
	Samples    int
	RenderTime time.Duration
}

// FrameStats summarizes a finished frame for display
type FrameStats struct {
	Render     RenderStats
	Workers    []WorkerStats
	RenderTime time.Duration
}
