package transcode

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/tonegrid/notescan/analysis"
	"github.com/tonegrid/notescan/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono samples in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channel count of the source, before downmix
	Duration   time.Duration `json:"duration"`
	Format     string        `json:"format"`
}

// Waveform adapts the decoded audio to the analysis layer's buffer
func (a *AudioData) Waveform() *analysis.WaveformBuffer {
	return &analysis.WaveformBuffer{
		Samples:    a.PCM,
		SampleRate: a.SampleRate,
	}
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	MaxDuration time.Duration `json:"max_duration"` // 0 means no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		MaxDuration: 0,
	}
}

// Decoder decodes audio files into mono float64 waveforms. WAV is decoded
// with go-audio, MP3 with go-mp3; multi-channel sources are averaged down to
// mono. Decoding happens fully in process, no external binaries.
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a decoder with the given configuration (nil for defaults)
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.GetGlobalLogger(),
	}
}

// DecodeFile decodes an audio file by extension. Empty streams and
// non-positive sample rates are rejected before any analysis can start.
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		data *AudioData
		err  error
	)

	switch ext {
	case ".wav":
		data, err = d.decodeWAV(path)
	case ".mp3":
		data, err = d.decodeMP3(path)
	default:
		return nil, fmt.Errorf("%w: unsupported audio format %q", analysis.ErrInvalidAudioInput, ext)
	}

	if err != nil {
		return nil, err
	}

	if len(data.PCM) == 0 {
		return nil, fmt.Errorf("%w: decoded stream is empty", analysis.ErrInvalidAudioInput)
	}
	if data.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", analysis.ErrInvalidAudioInput, data.SampleRate)
	}

	if d.config.MaxDuration > 0 {
		maxSamples := int(d.config.MaxDuration.Seconds() * float64(data.SampleRate))
		if maxSamples > 0 && len(data.PCM) > maxSamples {
			data.PCM = data.PCM[:maxSamples]
		}
	}

	data.Duration = time.Duration(float64(len(data.PCM)) / float64(data.SampleRate) * float64(time.Second))

	d.logger.Debug("decoded audio file", logging.Fields{
		"path":        path,
		"format":      data.Format,
		"sample_rate": data.SampleRate,
		"channels":    data.Channels,
		"duration":    data.Duration.Seconds(),
	})

	return data, nil
}

// decodeWAV decodes an integer-PCM WAV file and normalizes samples by the
// format's full-scale value.
func (d *Decoder) decodeWAV(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file: %s", analysis.ErrInvalidAudioInput, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav data: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: wav file has no PCM data: %s", analysis.ErrInvalidAudioInput, path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	fullScale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / fullScale
		}
		pcm[i] = sum / float64(channels)
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		Format:     "wav",
	}, nil
}

// decodeMP3 decodes an MP3 file. go-mp3 always emits 16-bit little-endian
// stereo frames; the two channels are averaged.
func (d *Decoder) decodeMP3(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mp3 file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid mp3 file: %v", analysis.ErrInvalidAudioInput, err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mp3 data: %w", err)
	}

	// 4 bytes per stereo frame: L int16, R int16
	frames := len(raw) / 4
	pcm := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(uint16(raw[i*4]) | uint16(raw[i*4+1])<<8)
		right := int16(uint16(raw[i*4+2]) | uint16(raw[i*4+3])<<8)
		pcm[i] = (float64(left) + float64(right)) / (2.0 * float64(math.MaxInt16+1))
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		Format:     "mp3",
	}, nil
}
