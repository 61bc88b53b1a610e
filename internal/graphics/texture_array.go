package graphics

import (
	"fmt"
	"log"

	"mini-voxel/internal/graphics/textures"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// TextureArray is a GL_TEXTURE_2D_ARRAY with one layer per block texture id.
type TextureArray struct {
	ID     uint32
	Layers int
	Size   int
}

// LoadTextureArray builds the array from image files. Unreadable files are
// logged and replaced by a solid colour layer, so this only fails on an
// empty file list.
func LoadTextureArray(files []string, size int) (*TextureArray, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("texture array: no layers")
	}
	layers, errs := textures.Layers(files, size)
	for _, err := range errs {
		log.Printf("textures: using fallback colour: %v", err)
	}
	pix := textures.Pack(layers)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texture)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.RGBA8,
		int32(size),
		int32(size),
		int32(len(layers)),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	return &TextureArray{ID: texture, Layers: len(layers), Size: size}, nil
}

// Bind attaches the array to a texture unit.
func (t *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)
}

func (t *TextureArray) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
