// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error carrying the driver's info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, log)
	}

	return shader, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return string(buf[:len(buf)-1])
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Pipeline is a linked program with its uniform locations resolved once.
type Pipeline struct {
	Name     string
	Program  uint32
	uniforms map[string]int32
}

// NewPipeline compiles a program and looks up the given uniforms.
func NewPipeline(name, vertexSrc, fragmentSrc string, uniforms ...string) (*Pipeline, error) {
	program, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", name, err)
	}
	p := &Pipeline{
		Name:     name,
		Program:  program,
		uniforms: make(map[string]int32, len(uniforms)),
	}
	for _, u := range uniforms {
		p.uniforms[u] = GetUniform(program, u)
	}
	return p, nil
}

// Use makes the pipeline current.
func (p *Pipeline) Use() {
	gl.UseProgram(p.Program)
}

// Loc returns a cached uniform location. Unknown names return -1, which GL
// ignores on upload.
func (p *Pipeline) Loc(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Pipeline) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Loc(name), 1, false, &m[0])
}

// SetVec3 uploads a vec3.
func (p *Pipeline) SetVec3(name string, v [3]float32) {
	gl.Uniform3f(p.Loc(name), v[0], v[1], v[2])
}

// SetInt uploads an int or sampler unit.
func (p *Pipeline) SetInt(name string, v int32) {
	gl.Uniform1i(p.Loc(name), v)
}

// SetBool uploads a bool as 0 or 1.
func (p *Pipeline) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Loc(name), i)
}

// Destroy deletes the program.
func (p *Pipeline) Destroy() {
	if p.Program != 0 {
		gl.DeleteProgram(p.Program)
		p.Program = 0
	}
}
