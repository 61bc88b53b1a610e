// Package textures prepares the block texture array on the CPU: decoding,
// scaling every image to one layer size, and substituting solid colours for
// files that cannot be read.
package textures

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// fallbackColors is indexed by texture id.
var fallbackColors = []color.RGBA{
	{134, 96, 67, 255},   // dirt
	{122, 122, 122, 255}, // cobblestone
	{96, 96, 96, 255},    // stone
	{95, 159, 53, 255},   // grass
}

// Fallback returns a solid size*size layer for texture id.
func Fallback(id, size int) *image.RGBA {
	c := color.RGBA{255, 0, 255, 255}
	if id >= 0 && id < len(fallbackColors) {
		c = fallbackColors[id]
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// Decode reads an image file and scales it to size*size with nearest
// neighbour sampling, keeping the pixel-art look.
func Decode(path string, size int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Layers loads one layer per file, in order, so layer i is texture id i.
// Files that fail to load are replaced by Fallback; their errors are
// returned alongside so the caller can log them.
func Layers(files []string, size int) ([]*image.RGBA, []error) {
	layers := make([]*image.RGBA, len(files))
	var errs []error
	for i, path := range files {
		img, err := Decode(path, size)
		if err != nil {
			errs = append(errs, err)
			img = Fallback(i, size)
		}
		layers[i] = img
	}
	return layers, errs
}

// Pack concatenates layers into one tightly packed RGBA buffer.
func Pack(layers []*image.RGBA) []byte {
	if len(layers) == 0 {
		return nil
	}
	stride := len(layers[0].Pix)
	out := make([]byte, 0, stride*len(layers))
	for _, l := range layers {
		out = append(out, l.Pix...)
	}
	return out
}
