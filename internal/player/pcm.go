package player

// pcmSample decodes one little-endian signed sample of width bytes (2 or 3)
// and scales it to [-1, 1).
func pcmSample(b []byte, width int) float64 {
	switch width {
	case 3:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return float64(v) / (1 << 23)
	default:
		v := int16(uint16(b[0]) | uint16(b[1])<<8) //nolint:gosec // audio samples
		return float64(v) / (1 << 15)
	}
}

// fillFrames decodes interleaved PCM bytes into dst and returns the number
// of frames written. Mono input is duplicated to both channels; channels past
// the second are ignored.
func fillFrames(dst [][2]float64, data []byte, width, channels int) int {
	stride := width * channels
	n := 0
	for off := 0; off+stride <= len(data) && n < len(dst); off += stride {
		left := pcmSample(data[off:], width)
		right := left
		if channels > 1 {
			right = pcmSample(data[off+width:], width)
		}
		dst[n] = [2]float64{left, right}
		n++
	}
	return n
}

// int16Frames converts interleaved int16 PCM to stereo frames.
func int16Frames(pcm []int16, channels int) [][2]float64 {
	if channels < 1 {
		channels = 1
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		left := float64(pcm[i*channels]) / (1 << 15)
		right := left
		if channels > 1 {
			right = float64(pcm[i*channels+1]) / (1 << 15)
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}
