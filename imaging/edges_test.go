package imaging

import "testing"

func TestEdgeMapUniformImage(t *testing.T) {
	luma := constantGrid(32, 32, 128)
	edges := EdgeMap(luma, 50, 150)
	for i, v := range edges.Data {
		if v != 0 {
			t.Fatalf("uniform image has edge at index %d", i)
		}
	}
}

func TestEdgeMapStrongStep(t *testing.T) {
	luma := NewGrid(32, 32)
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			luma.Set(x, y, 255)
		}
	}

	edges := EdgeMap(luma, 50, 150)

	// Edges should land near the step column, away from the borders.
	found := false
	for y := 4; y < 28; y++ {
		for x := 13; x < 20; x++ {
			if edges.At(x, y) == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no edge detected near the luminance step")
	}

	// Flat areas stay edge-free.
	for y := 4; y < 28; y++ {
		for x := 0; x < 8; x++ {
			if edges.At(x, y) == 1 {
				t.Fatalf("false edge at (%d,%d) in flat region", x, y)
			}
		}
	}
}

func TestEdgeMapOutputIsBinary(t *testing.T) {
	luma := NewGrid(16, 16)
	for i := range luma.Data {
		luma.Data[i] = float64((i * 37) % 256)
	}
	edges := EdgeMap(luma, 50, 150)
	for i, v := range edges.Data {
		if v != 0 && v != 1 {
			t.Fatalf("edge map value %f at %d, want 0 or 1", v, i)
		}
	}
}
