// ABOUTME: Tests for AMR-NB constants and header packing
// ABOUTME: Covers mode parsing, frame sizes and IETF header bytes
package amrnb

import "testing"

func TestPackHeader(t *testing.T) {
	for f := FrameType(0); f <= 15; f++ {
		h := PackHeader(f)
		if h != byte(f)<<3 {
			t.Errorf("PackHeader(%d) = %#x, want %#x", f, h, byte(f)<<3)
		}
		if got := UnpackHeader(h); got != f {
			t.Errorf("UnpackHeader(%#x) = %d, want %d", h, got, f)
		}
	}
}

func TestUnpackHeader_IgnoresQualityAndPadding(t *testing.T) {
	// 0x3C is FT=7 with the Q bit set
	if got := UnpackHeader(0x3C); got != FrameMR122 {
		t.Errorf("UnpackHeader(0x3C) = %d, want %d", got, FrameMR122)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"MR122", MR122, false},
		{"mr475", MR475, false},
		{"12.2", MR122, false},
		{"4.75", MR475, false},
		{"7.95", MR795, false},
		{" MR59 ", MR59, false},
		{"MRDTX", 0, true},
		{"13.0", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMode(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPayloadSize(t *testing.T) {
	tests := []struct {
		ft    FrameType
		want  int
		valid bool
	}{
		{FrameMR475, 12, true},
		{FrameMR795, 20, true},
		{FrameMR122, 31, true},
		{FrameSID, 5, true},
		{FrameNoData, 0, true},
		{9, 0, false},
		{14, 0, false},
		{16, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ft.String(), func(t *testing.T) {
			n, ok := tt.ft.PayloadSize()
			if ok != tt.valid {
				t.Fatalf("PayloadSize() ok = %v, want %v", ok, tt.valid)
			}
			if ok && n != tt.want {
				t.Errorf("PayloadSize() = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestModeBitrate(t *testing.T) {
	if MR122.Bitrate() != 12200 {
		t.Errorf("MR122.Bitrate() = %d, want 12200", MR122.Bitrate())
	}
	if MRDTX.Bitrate() != 0 {
		t.Errorf("MRDTX.Bitrate() = %d, want 0", MRDTX.Bitrate())
	}
	if got := Mode(42).String(); got != "Mode(42)" {
		t.Errorf("Mode(42).String() = %q", got)
	}
}
