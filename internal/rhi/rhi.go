// Package rhi is the render hardware interface boundary (spec §6): an
// OpenGL-backed implementation of meshalloc.GPUBuffer, the GPU buffer
// capability set internal/meshalloc needs.
// Grounded on the teacher's
// internal/graphics/renderables/blocks/atlas.go (ensureAtlasCapacity's
// grow-and-rebind pattern) and internal/graphics/renderer/api.go (the
// Renderable lifecycle interface), generalized from package-global VAO/VBO
// state into an explicit type so more than one mesh allocator arena can
// exist side by side (one per LOD tier, per spec.md §4.12).
package rhi

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/dantero-ps/voxelworld/internal/meshalloc"
)

// VertexLayout describes one float attribute of the fixed 14-float mesh
// vertex (internal/meshing.Vertex), in attribute-index order.
type VertexLayout struct {
	Index      uint32
	Components int32
}

// DefaultVertexLayout matches internal/meshing.VertexFloats: position(3),
// color(3), normal(3), uv(2), tileID(1), skylight(1), blocklight(1).
var DefaultVertexLayout = []VertexLayout{
	{Index: 0, Components: 3}, // position
	{Index: 1, Components: 3}, // color
	{Index: 2, Components: 3}, // normal
	{Index: 3, Components: 2}, // uv
	{Index: 4, Components: 1}, // tileID
	{Index: 5, Components: 1}, // skylight
	{Index: 6, Components: 1}, // blocklight
}

const vertexStrideBytes = 14 * 4

// Buffer is a growable OpenGL ARRAY_BUFFER that satisfies
// meshalloc.GPUBuffer. Every GL call must run on the single main RHI
// thread, per spec.md §5.
type Buffer struct {
	vao, vbo uint32
	capacity int
	layout   []VertexLayout
}

var _ meshalloc.GPUBuffer = (*Buffer)(nil)

// NewBuffer creates a VAO/VBO pair with initialCapacityBytes of backing
// storage, bound according to layout.
func NewBuffer(initialCapacityBytes int, layout []VertexLayout) *Buffer {
	b := &Buffer{layout: layout}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	b.Grow(initialCapacityBytes)
	return b
}

// Capacity returns the buffer's current size in bytes.
func (b *Buffer) Capacity() int { return b.capacity }

// Grow reallocates the underlying VBO to newCapacity bytes and copies the
// old contents into its start, so ranges internal/meshalloc has already
// handed out keep their vertex data.
func (b *Buffer) Grow(newCapacity int) {
	old, oldCap := b.vbo, b.capacity
	if oldCap > 0 {
		gl.GenBuffers(1, &b.vbo)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, newCapacity, nil, gl.DYNAMIC_DRAW)
	if oldCap > 0 {
		gl.BindBuffer(gl.COPY_READ_BUFFER, old)
		gl.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.ARRAY_BUFFER, 0, 0, oldCap)
		gl.BindBuffer(gl.COPY_READ_BUFFER, 0)
		gl.DeleteBuffers(1, &old)
	}
	b.capacity = newCapacity

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	var offset int
	for _, attr := range b.layout {
		gl.EnableVertexAttribArray(attr.Index)
		gl.VertexAttribPointer(attr.Index, attr.Components, gl.FLOAT, false, vertexStrideBytes, gl.PtrOffset(offset))
		offset += int(attr.Components) * 4
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Write uploads data at offsetBytes via glBufferSubData.
func (b *Buffer) Write(offsetBytes int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offsetBytes, len(data), gl.Ptr(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Bind binds the buffer's VAO for drawing.
func (b *Buffer) Bind() {
	gl.BindVertexArray(b.vao)
}

// DrawArrays issues a non-indexed draw over [firstVertex, firstVertex+count).
func (b *Buffer) DrawArrays(firstVertex, count int32) {
	b.Bind()
	gl.DrawArrays(gl.TRIANGLES, firstVertex, count)
	gl.BindVertexArray(0)
}

// Dispose releases the GL objects.
func (b *Buffer) Dispose() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
}
