package renderer

import "image"

// Tile is a rectangular sub-region of the output image processed as one
// unit of parallel work
type Tile struct {
	Index  int
	Bounds image.Rectangle
}

// NewTileGrid partitions a width×height image into tiles of at most
// tileSize×tileSize pixels. The tiles cover the image exactly: no overlap,
// no gaps, with edge tiles clipped to the image bounds.
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = 64
	}

	var tiles []Tile
	index := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, Tile{Index: index, Bounds: bounds})
			index++
		}
	}
	return tiles
}
