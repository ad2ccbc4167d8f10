package fireworks

import (
	"testing"
	"time"

	"github.com/decker502/fireworks/pkg/config"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name        string
		w, h, dpr   float64
		wantRatio   float64
		wantBacking [2]int
	}{
		{"standard display", 800, 600, 1, 1, [2]int{800, 600}},
		{"retina", 800, 600, 2, 2, [2]int{1600, 1200}},
		{"dense phone capped", 390, 844, 3, 2, [2]int{780, 1688}},
		{"unknown ratio", 800, 600, 0, 1, [2]int{800, 600}},
		{"fractional ratio", 1001, 500, 1.5, 1.5, [2]int{1502, 750}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.w, tt.h, tt.dpr, 2)
			if v.PixelRatio != tt.wantRatio {
				t.Errorf("expected ratio %v, got %v", tt.wantRatio, v.PixelRatio)
			}
			bw, bh := v.BackingSize()
			if bw != tt.wantBacking[0] || bh != tt.wantBacking[1] {
				t.Errorf("expected backing %v, got %dx%d", tt.wantBacking, bw, bh)
			}
		})
	}
}

func TestViewportDevice(t *testing.T) {
	if NewViewport(767, 1000, 1, 2).Device(768) != DeviceMobile {
		t.Error("767px wide should be mobile")
	}
	if NewViewport(768, 1000, 1, 2).Device(768) != DeviceDesktop {
		t.Error("768px wide should be desktop")
	}
	if !NewViewport(0, 100, 1, 2).Empty() {
		t.Error("zero width viewport should be empty")
	}
}

func TestNewShowConvertsDurations(t *testing.T) {
	show := NewShow(config.DefaultFireworksConfig())
	if show.MainLaunchDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms launch delay, got %v", show.MainLaunchDelay)
	}
	if show.AmbientInterval != 1200*time.Millisecond {
		t.Errorf("expected 1.2s ambient interval, got %v", show.AmbientInterval)
	}
	if show.CenterColumn != (Range{0.3, 0.7}) {
		t.Errorf("unexpected centre column %v", show.CenterColumn)
	}
	if len(show.Captions) != 3 {
		t.Errorf("expected 3 captions, got %d", len(show.Captions))
	}
}

func TestTuningProfiles(t *testing.T) {
	tuning := testTuning(t, DeviceDesktop)
	main := tuning.Profile(CategoryMain)
	if main.ShellSpeed != (Range{2.5, 2.5}) || main.LineWidth != 2 || main.SparkTrail != 5 {
		t.Errorf("unexpected main profile %+v", *main)
	}
	ambient := tuning.Profile(CategoryAmbient)
	if ambient.SparkCount != 60 || ambient.SparkTrail != 3 {
		t.Errorf("unexpected ambient profile %+v", *ambient)
	}
	if tuning.Profile(Category(42)) != ambient {
		t.Error("unknown categories should fall back to ambient")
	}
}

func TestNewPaletteRejectsBadColour(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Palette = []string{"hsl(10, 20%, 30%)", "blue"}
	if _, err := NewPalette(cfg); err == nil {
		t.Error("expected an error for a non-hsl palette entry")
	}
}
