// Package swgl is a software implementation of a small OpenGL ES 3 style
// rendering pipeline.
//
// # Overview
//
// swgl rasterizes triangles, quads and lines into RGBA8 or R8 color
// buffers with a 16-bit run-length encoded depth buffer, texture sampling
// and a closed set of blend modes. It needs no GPU and no cgo. Output
// buffers can be supplied by the host, so swgl can render directly into
// a window surface or an image that another consumer reads.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/swgl"
//		"github.com/gogpu/swgl/programs"
//	)
//
//	d := swgl.NewDispatcher()
//	ctx := d.CreateContext(swgl.WithProgramLoader(programs.Load))
//	defer d.DestroyContext(ctx)
//
//	ctx.InitDefaultFramebuffer(0, 0, 256, 256, 0, nil)
//	ctx.SetViewport(0, 0, 256, 256)
//	ctx.ClearColor(1, 1, 1, 1)
//	ctx.Clear(swgl.COLOR_BUFFER_BIT)
//
// # Shaders
//
// Shader source is never compiled. A shader's source names a program,
// which the Context obtains from its program loader when the shader is
// attached. Programs are plain Go values implementing the interfaces of
// package shader; package programs provides a few builtin ones.
//
// # Entry points
//
// Every GL entry point is a method on Context and follows GL semantics
// unless documented otherwise. Entry points do not return errors: an
// invalid call panics when the Context is strict and is otherwise logged
// and ignored. GetError always reports NO_ERROR.
//
// # Coordinate System
//
// Viewport, scissor, clear and readback rectangles are in host surface
// coordinates. A texture supplied with an offset (see
// InitDefaultFramebuffer) occupies that position in the host surface.
// Row 0 is the first row in memory.
//
// # Concurrency
//
// A Context and its Dispatcher must be used from one goroutine at a time.
// A framebuffer locked with LockFramebuffer may be read from another
// goroutine until it is unlocked.
package swgl

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
