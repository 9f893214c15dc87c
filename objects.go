package swgl

// GenQueries creates n query objects and returns their handles.
func (c *Context) GenQueries(n int) []uint32 { return genObjects(c.queries, n) }

// GenBuffers creates n buffer objects and returns their handles.
func (c *Context) GenBuffers(n int) []uint32 { return genObjects(c.buffers, n) }

// GenTextures creates n texture objects and returns their handles.
func (c *Context) GenTextures(n int) []uint32 { return genObjects(c.textures, n) }

// GenRenderbuffers creates n renderbuffer objects and returns their handles.
func (c *Context) GenRenderbuffers(n int) []uint32 { return genObjects(c.renderbuffers, n) }

// GenFramebuffers creates n framebuffer objects and returns their handles.
func (c *Context) GenFramebuffers(n int) []uint32 { return genObjects(c.framebuffers, n) }

// GenVertexArrays creates n vertex array objects and returns their handles.
func (c *Context) GenVertexArrays(n int) []uint32 { return genObjects(c.vertexArrays, n) }

type inserter[T any] interface {
	Insert(obj *T) uint32
}

// genObjects inserts n fresh records. Handles the store cannot provide
// are returned as 0.
func genObjects[T any](s inserter[T], n int) []uint32 {
	handles := make([]uint32, max(n, 0))
	for i := range handles {
		handles[i] = s.Insert(nil)
	}
	return handles
}

// DeleteQueries deletes queries, unbinding them first.
func (c *Context) DeleteQueries(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		unlink(&c.timeElapsedQuery, h)
		unlink(&c.samplesPassedQuery, h)
		c.queries.Erase(h)
	}
}

// DeleteBuffers deletes buffers, unbinding them first. Vertex attributes
// still pointing at a deleted buffer read as zero.
func (c *Context) DeleteBuffers(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		unlink(&c.pixelPackBuffer, h)
		unlink(&c.pixelUnpackBuffer, h)
		unlink(&c.arrayBuffer, h)
		unlink(&c.uniformBuffer, h)
		if c.buffers.Erase(h) {
			c.validateVertexArray = true
		}
	}
}

// DeleteTextures deletes textures, unbinding them from every unit. Locked
// textures cannot be deleted.
func (c *Context) DeleteTextures(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		if t := c.textures.Find(h); t != nil && t.Locked() {
			c.invalid("DeleteTextures", ErrLocked, "texture %d", h)
			continue
		}
		c.deleteTexture(h)
	}
}

// deleteTexture unbinds and erases a texture. Framebuffer attachments are
// left dangling, as in GL; they resolve to no texture.
func (c *Context) deleteTexture(h uint32) {
	if h == 0 {
		return
	}
	for i := range c.units {
		c.units[i].unlink(h)
	}
	if t := c.textures.Find(h); t != nil {
		if t.Locked() {
			c.log.Warn("swgl: deleting locked texture", "texture", h)
			return
		}
		t.Cleanup()
	}
	c.textures.Erase(h)
}

// detachTexture removes a texture from every framebuffer attachment. A
// detached color attachment resets the layer to 0.
func (c *Context) detachTexture(h uint32) {
	if h == 0 {
		return
	}
	for _, fb := range c.framebuffers.All() {
		if unlink(&fb.color, h) {
			fb.layer = 0
		}
		unlink(&fb.depth, h)
	}
}

// DeleteRenderbuffers deletes renderbuffers and the textures backing them.
func (c *Context) DeleteRenderbuffers(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		unlink(&c.renderbuffer, h)
		c.renderbuffers.Erase(h)
	}
}

// DeleteFramebuffers deletes framebuffers, unbinding them first. The
// default framebuffer 0 cannot be deleted.
func (c *Context) DeleteFramebuffers(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		unlink(&c.readFramebuffer, h)
		unlink(&c.drawFramebuffer, h)
		c.framebuffers.Erase(h)
	}
}

// DeleteVertexArrays deletes vertex arrays. Deleting the bound array
// rebinds the default one.
func (c *Context) DeleteVertexArrays(handles ...uint32) {
	for _, h := range handles {
		if h == 0 {
			continue
		}
		if unlink(&c.currentVertexArray, h) {
			c.validateVertexArray = true
		}
		c.vertexArrays.Erase(h)
	}
}
