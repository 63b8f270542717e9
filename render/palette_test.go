package render

import "testing"

func TestDefaultPaletteLayout(t *testing.T) {
	p := DefaultPalette()

	if len(p) != PaletteSize {
		t.Fatalf("Expected %d entries, got %d", PaletteSize, len(p))
	}

	if p[IdxBackground] != (RGB{0, 0, 0}) {
		t.Errorf("Expected black background, got %v", p[IdxBackground])
	}

	// Every band must fit inside the table.
	if int(IdxGlowBase)+GlowLevels > PaletteSize {
		t.Error("Glow band overflows palette")
	}
	if int(IdxTrailBase)+TrailLevels > PaletteSize {
		t.Error("Trail band overflows palette")
	}
	if int(IdxHeatBase)+HeatLevels > PaletteSize {
		t.Error("Heat band overflows palette")
	}
	if int(IdxCoreHotBase)+CoreLevels > PaletteSize {
		t.Error("Core band overflows palette")
	}
}

func TestPaletteOrderingForCompositing(t *testing.T) {
	// Brightness-max compositing depends on the global ordering: scene
	// colors below the markers, markers below the particle ramps.
	if IdxIdleMarker <= IdxWire {
		t.Error("Idle marker must outrank the wire it travels over")
	}
	if IdxFlowMarker <= IdxWire {
		t.Error("Flow marker must outrank the wire it travels over")
	}
	if IdxTrailBase <= IdxGlowBase+GlowLevels-1 {
		t.Error("Trail band must outrank the glow band")
	}
	if IdxCoreCoolBase <= IdxHeatBase+HeatLevels-1 {
		t.Error("Core bands must outrank the heat band")
	}
}
