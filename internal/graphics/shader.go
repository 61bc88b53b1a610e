package graphics

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Shader is a linked vertex+fragment program
type Shader struct {
	ID uint32
}

// NewShader reads, compiles and links the two stages
func NewShader(vertexPath, fragmentPath string) (*Shader, error) {
	var src [2]string
	for i, path := range []string{vertexPath, fragmentPath} {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read shader %s: %w", path, err)
		}
		src[i] = string(b)
	}

	program, err := linkProgram(src[0], src[1])
	if err != nil {
		return nil, fmt.Errorf("shader %s + %s: %w", vertexPath, fragmentPath, err)
	}
	return &Shader{ID: program}, nil
}

func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the program
func (s *Shader) Delete() {
	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

func (s *Shader) uniform(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.uniform(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.uniform(name), value)
}

// SetMatrix4 uploads a column-major 4x4 matrix
func (s *Shader) SetMatrix4(name string, value *float32) {
	gl.UniformMatrix4fv(s.uniform(name), 1, false, value)
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileStage(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func compileStage(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return shader, nil
}

// infoLog reads a shader or program log through the matching getters
func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	buf := strings.Repeat("\x00", int(n+1))
	getLog(id, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}
