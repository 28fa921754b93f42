package transcode

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/tonegrid/notescan/analysis"
)

// writeTestWAV writes a 16-bit PCM WAV of a 440 Hz sine and returns its path
func writeTestWAV(t *testing.T, sampleRate, channels, numFrames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)

	data := make([]int, numFrames*channels)
	for i := 0; i < numFrames; i++ {
		sample := int(0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 32767)
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = sample
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())

	return path
}

func TestDecoder_WAVRoundTrip(t *testing.T) {
	path := writeTestWAV(t, 22050, 1, 22050)

	data, err := NewDecoder(nil).DecodeFile(path)
	require.NoError(t, err)

	require.Equal(t, "wav", data.Format)
	require.Equal(t, 22050, data.SampleRate)
	require.Equal(t, 1, data.Channels)
	require.Len(t, data.PCM, 22050)
	require.InDelta(t, time.Second, data.Duration, float64(time.Millisecond))

	for i, s := range data.PCM {
		require.LessOrEqual(t, math.Abs(s), 1.0, "sample %d out of range", i)
	}
}

func TestDecoder_WAVStereoDownmix(t *testing.T) {
	path := writeTestWAV(t, 44100, 2, 4410)

	data, err := NewDecoder(nil).DecodeFile(path)
	require.NoError(t, err)

	require.Equal(t, 2, data.Channels)
	require.Len(t, data.PCM, 4410, "stereo frames collapse to one mono sample each")
}

func TestDecoder_WAVAnalyzable(t *testing.T) {
	path := writeTestWAV(t, 22050, 1, 22050)

	data, err := NewDecoder(nil).DecodeFile(path)
	require.NoError(t, err)

	wf := data.Waveform()
	require.NoError(t, wf.Validate())
	require.InDelta(t, 1.0, wf.Duration(), 0.001)
}

func TestDecoder_MaxDurationTruncates(t *testing.T) {
	path := writeTestWAV(t, 22050, 1, 44100) // 2s

	data, err := NewDecoder(&DecoderConfig{MaxDuration: time.Second}).DecodeFile(path)
	require.NoError(t, err)

	require.Len(t, data.PCM, 22050)
	require.InDelta(t, time.Second, data.Duration, float64(time.Millisecond))
}

func TestDecoder_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.flac")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	_, err := NewDecoder(nil).DecodeFile(path)
	require.ErrorIs(t, err, analysis.ErrInvalidAudioInput)
}

func TestDecoder_NotAWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFgarbage"), 0o644))

	_, err := NewDecoder(nil).DecodeFile(path)
	require.Error(t, err)
}

func TestDecoder_MissingFile(t *testing.T) {
	_, err := NewDecoder(nil).DecodeFile(filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
}
