package shadow

import "testing"

func TestMapSize(t *testing.T) {
	tests := []struct {
		name             string
		requested, limit int32
		want             int32
	}{
		{"power of two kept", 2048, 16384, 2048},
		{"rounded up", 1500, 16384, 2048},
		{"zero uses default", 0, 16384, DefaultResolution},
		{"negative uses default", -4, 0, DefaultResolution},
		{"capped by limit", 8192, 4096, 4096},
		{"odd limit", 4096, 3000, 2048},
		{"no limit", 3000, 0, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapSize(tt.requested, tt.limit); got != tt.want {
				t.Errorf("MapSize(%d, %d) = %d, want %d", tt.requested, tt.limit, got, tt.want)
			}
		})
	}
}
