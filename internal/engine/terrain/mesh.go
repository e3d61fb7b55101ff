package terrain

// Generate converts a decoded heightmap into an interleaved vertex buffer and a
// triangle index buffer. It touches no GPU state and returns no buffers on error.
//
// Vertex i sits at grid (i mod width, i div width); downstream index math relies
// on that ordering.
func Generate(pixels []byte, width, height, channels int, heightScale, xzScale float32, opts Options) (*Mesh, error) {
	hm, err := NewHeightmap(pixels, width, height, channels, heightScale, xzScale)
	if err != nil {
		return nil, err
	}
	return hm.Mesh(opts), nil
}

// Mesh builds the grid mesh for this heightmap.
func (h *Heightmap) Mesh(opts Options) *Mesh {
	width, height := h.Width, h.Height
	stride := opts.Stride()
	vertexCount := width * height
	indexCount := (width - 1) * (height - 1) * 6

	vertices := make([]float32, 0, vertexCount*stride)
	indices := make([]uint32, 0, indexCount)

	bounds := Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}

	for i := 0; i < vertexCount; i++ {
		x := i % width
		z := i / width

		pos := [3]float32{
			float32(x) * h.XZScale,
			float32(h.Pix[i*h.Channels]) / 255 * h.HeightScale,
			float32(z) * h.XZScale,
		}
		updateBounds(&bounds, pos)

		normal, tangent, bitangent := up, unitX, unitZ
		if opts.Normals == NormalsComputed {
			normal, tangent, bitangent = h.surfaceFrame(x, z)
		}

		vertices = append(vertices,
			pos[0], pos[1], pos[2],
			normal[0], normal[1], normal[2],
			float32(x)/float32(width), float32(z)/float32(height),
		)
		if opts.Tangents {
			vertices = append(vertices,
				tangent[0], tangent[1], tangent[2],
				bitangent[0], bitangent[1], bitangent[2],
			)
		}
	}

	cells := (width - 1) * (height - 1)
	for j := 0; j < cells; j++ {
		x := j % (width - 1)
		z := j / (width - 1)
		v := uint32(z*width + x)
		w := uint32(width)

		indices = append(indices,
			v, v+w, v+w+1,
			v, v+w+1, v+1,
		)
	}

	return &Mesh{
		Vertices:    vertices,
		Indices:     indices,
		VertexCount: vertexCount,
		IndexCount:  indexCount,
		Stride:      stride,
		Width:       width,
		Depth:       height,
		Bounds:      bounds,
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}
