// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample conversion helpers shared by the sinks.
package utils

// Float32ToInt16 converts a float sample in [-1, 1] to 16-bit PCM. Values
// outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for both signs keeps the conversion symmetric.
	return int16(x * 32767.0)
}

// AppendInt16 converts src with Float32ToInt16 and appends the result to
// dst.
func AppendInt16(dst []int16, src []float32) []int16 {
	for _, s := range src {
		dst = append(dst, Float32ToInt16(s))
	}
	return dst
}

// Scale multiplies every sample in place by gain.
func Scale(samples []float32, gain float32) {
	if gain == 1 {
		return
	}
	for i := range samples {
		samples[i] *= gain
	}
}
