package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	result := FFT(data)

	// all energy in the DC bin
	if math.Abs(real(result[0])-4) > 1e-9 {
		t.Errorf("DC bin = %v, want 4", result[0])
	}
	for i := 1; i < len(result); i++ {
		if math.Abs(real(result[i])) > 1e-9 || math.Abs(imag(result[i])) > 1e-9 {
			t.Errorf("bin %d = %v, want 0", i, result[i])
		}
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	// pure sine at 8 cycles over 64 samples
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 8 {
		t.Errorf("spectrum peak at bin %d, want 8", maxIdx)
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
	}
	for _, tt := range tests {
		padded := PadPow2(make([]float64, tt.in))
		if len(padded) != tt.want {
			t.Errorf("PadPow2(len %d) = len %d, want %d", tt.in, len(padded), tt.want)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	// 4 Hz sine sampled at 64 Hz for 2 seconds
	sampleRate := 64.0
	n := 128
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / sampleRate)
	}

	freq, power := DominantFrequency(data, sampleRate)
	if math.Abs(freq-4) > 0.5 {
		t.Errorf("dominant frequency = %v, want ~4", freq)
	}
	if power <= 0 {
		t.Error("expected positive spectral power")
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if freq, _ := DominantFrequency([]float64{1, 2}, 10); freq != 0 {
		t.Errorf("short trace frequency = %v, want 0", freq)
	}
	if freq, _ := DominantFrequency(make([]float64, 64), 10); freq != 0 {
		t.Errorf("flat trace frequency = %v, want 0", freq)
	}
}
