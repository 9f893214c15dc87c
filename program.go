package swgl

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// CreateShader creates a shader object of type VERTEX_SHADER or
// FRAGMENT_SHADER.
func (c *Context) CreateShader(typ Enum) uint32 {
	if typ != VERTEX_SHADER && typ != FRAGMENT_SHADER {
		c.invalid("CreateShader", ErrInvalidEnum, "shader type %#x", typ)
		return 0
	}
	return c.shaders.Insert(&Shader{typ: typ})
}

// ShaderSourceByName names the builtin program a shader stands for. The
// name is resolved by the program loader when the shader is attached.
func (c *Context) ShaderSourceByName(handle uint32, name string) {
	s := c.shaders.Find(handle)
	if s == nil {
		c.invalid("ShaderSourceByName", ErrInvalidValue, "shader %d", handle)
		return
	}
	s.name = name
	if c.opts.loader == nil {
		c.log.Warn("swgl: no program loader", "shader", name)
	}
}

// DeleteShader deletes a shader object.
func (c *Context) DeleteShader(handle uint32) {
	if handle != 0 {
		c.shaders.Erase(handle)
	}
}

// CreateProgram creates an empty program object.
func (c *Context) CreateProgram() uint32 {
	return c.programs.Insert(nil)
}

// DeleteProgram deletes a program. The program in use is only marked and
// is deleted once another program is used.
func (c *Context) DeleteProgram(handle uint32) {
	if handle == 0 {
		return
	}
	if handle == c.currentProgram {
		if p := c.programs.Find(handle); p != nil {
			p.deleted = true
		}
		return
	}
	c.programs.Erase(handle)
}

// AttachShader instantiates the program named by the shader's source, if
// the program has no implementation yet. Either stage names the whole
// program.
func (c *Context) AttachShader(program, handle uint32) {
	p := c.programs.Find(program)
	s := c.shaders.Find(handle)
	if p == nil || s == nil {
		c.invalid("AttachShader", ErrInvalidValue, "program %d shader %d", program, handle)
		return
	}
	if p.impl != nil || s.name == "" || c.opts.loader == nil {
		return
	}
	impl, ok := c.opts.loader(s.name)
	if !ok {
		c.log.Warn("swgl: unknown program", "name", s.name)
		return
	}
	p.impl = impl
}

// program returns the linked implementation of a program handle.
func (c *Context) program(op string, handle uint32) shader.Program {
	p := c.programs.Find(handle)
	if p == nil || p.impl == nil {
		c.invalid(op, ErrInvalidOperation, "program %d has no implementation", handle)
		return nil
	}
	return p.impl
}

// LinkProgram resolves the shader stages of a program.
func (c *Context) LinkProgram(handle uint32) {
	impl := c.program("LinkProgram", handle)
	if impl == nil {
		return
	}
	p := c.programs.Find(handle)
	if p.vs == nil {
		p.vs = impl.VertexShader()
	}
	if p.fs == nil {
		p.fs = impl.FragmentShader()
	}
	if n := p.vs.NumVaryings(); n > shader.MaxVaryings {
		c.invalid("LinkProgram", ErrInvalidOperation, "%s uses %d varyings", impl.Name(), n)
		p.vs, p.fs = nil, nil
		return
	}
	c.log.Debug("swgl: program linked", "program", handle, "name", impl.Name())
}

// GetLinkStatus reports whether a program has an implementation.
func (c *Context) GetLinkStatus(handle uint32) bool {
	p := c.programs.Find(handle)
	return p != nil && p.impl != nil
}

// BindAttribLocation assigns an attribute location before linking.
func (c *Context) BindAttribLocation(program uint32, index uint32, name string) {
	if impl := c.program("BindAttribLocation", program); impl != nil {
		impl.BindAttribLocation(name, int(index))
	}
}

// GetAttribLocation returns the location of a named attribute, or -1.
func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	if impl := c.program("GetAttribLocation", program); impl != nil {
		return int32(impl.AttribLocation(name))
	}
	return -1
}

// GetUniformLocation returns the location of a named uniform, or -1.
func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	if impl := c.program("GetUniformLocation", program); impl != nil {
		return int32(impl.UniformLocation(name))
	}
	return -1
}

// UseProgram makes a program current. A program deleted while current is
// erased when it stops being current.
func (c *Context) UseProgram(handle uint32) {
	if c.currentProgram != 0 && handle != c.currentProgram {
		if p := c.programs.Find(c.currentProgram); p != nil && p.deleted {
			c.programs.Erase(c.currentProgram)
		}
	}
	c.currentProgram = handle
}

// currentImpl returns the implementation of the program in use, or nil.
func (c *Context) currentImpl() *Program {
	if c.currentProgram == 0 {
		return nil
	}
	p := c.programs.Find(c.currentProgram)
	if p == nil || p.impl == nil {
		return nil
	}
	return p
}

// Uniform1i sets an integer uniform of the program in use.
func (c *Context) Uniform1i(loc int32, v int32) {
	if p := c.currentImpl(); p != nil {
		p.impl.SetUniformInt(int(loc), v)
	}
}

// Uniform4fv sets a vec4 uniform of the program in use. Only single
// values are supported.
func (c *Context) Uniform4fv(loc int32, v []float32) {
	if len(v) != 4 {
		c.invalid("Uniform4fv", ErrInvalidValue, "%d floats", len(v))
		return
	}
	if p := c.currentImpl(); p != nil {
		p.impl.SetUniformVec4(int(loc), mgl32.Vec4{v[0], v[1], v[2], v[3]})
	}
}

// UniformMatrix4fv sets a column-major mat4 uniform of the program in
// use. Transposition is not supported.
func (c *Context) UniformMatrix4fv(loc int32, transpose bool, m mgl32.Mat4) {
	if transpose {
		c.invalid("UniformMatrix4fv", ErrInvalidValue, "transpose")
		return
	}
	if p := c.currentImpl(); p != nil {
		p.impl.SetUniformMat4(int(loc), m)
	}
}

// unitSamplers resolves sampler uniforms against the texture units of a
// Context.
type unitSamplers struct {
	c *Context
}

var _ shader.TextureUnits = unitSamplers{}

func (u unitSamplers) Sampler(unit int, kind sampler.Kind) *sampler.Sampler {
	if unit < 0 || unit >= maxTextureUnits {
		return sampler.New(nil, kind)
	}
	tu := &u.c.units[unit]
	h := tu.tex2D
	switch kind {
	case sampler.KindRect:
		h = tu.texRect
	case sampler.Kind2DArray:
		h = tu.tex2DArray
	}
	return sampler.New(u.c.textures.Find(h), kind)
}
