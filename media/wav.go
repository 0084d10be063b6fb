package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

var ErrNotWAV = errors.New("not a RIFF/WAVE stream")

// Waveform is a decoded mono signal with samples in [-1, 1].
type Waveform struct {
	Samples    []float64
	SampleRate int
}

func (w *Waveform) Duration() time.Duration {
	if w == nil || w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// DecodeWAVFile reads a WAV file and downmixes it to mono.
func DecodeWAVFile(path string) (*Waveform, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read wav")
	}
	return DecodeWAV(raw)
}

// DecodeWAV parses a RIFF/WAVE buffer holding 8/16/24/32-bit PCM or 32-bit
// float samples. Multi-channel audio is averaged into one channel.
func DecodeWAV(raw []byte) (*Waveform, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		format  *wavFormat
		payload []byte
	)
	pos := 12
	for pos+8 <= len(raw) {
		id := string(raw[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		// streamed writers leave the size unset; take what is there
		if size < 0 || body+size > len(raw) {
			size = len(raw) - body
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, errors.New("wav fmt chunk too short")
			}
			var f wavFormat
			if err := binary.Read(bytes.NewReader(raw[body:body+16]), binary.LittleEndian, &f); err != nil {
				return nil, errors.Wrap(err, "wav fmt chunk")
			}
			if f.AudioFormat == wavFormatExtensible && size >= 26 {
				f.AudioFormat = binary.LittleEndian.Uint16(raw[body+24 : body+26])
			}
			format = &f
		case "data":
			payload = raw[body : body+size]
		}
		pos = body + size + size%2
	}

	if format == nil {
		return nil, errors.New("wav has no fmt chunk")
	}
	if payload == nil {
		return nil, errors.New("wav has no data chunk")
	}
	if format.Channels == 0 || format.SampleRate == 0 {
		return nil, errors.Errorf("wav has invalid format: %d channels at %d Hz", format.Channels, format.SampleRate)
	}

	decode, err := sampleDecoder(format.AudioFormat, format.BitsPerSample)
	if err != nil {
		return nil, err
	}
	width := int(format.BitsPerSample) / 8
	channels := int(format.Channels)
	frame := width * channels
	n := len(payload) / frame

	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		base := i * frame
		for c := 0; c < channels; c++ {
			off := base + c*width
			sum += decode(payload[off : off+width])
		}
		samples[i] = sum / float64(channels)
	}
	return &Waveform{Samples: samples, SampleRate: int(format.SampleRate)}, nil
}

func sampleDecoder(audioFormat, bits uint16) (func([]byte) float64, error) {
	switch {
	case audioFormat == wavFormatPCM && bits == 8:
		return func(b []byte) float64 { return (float64(b[0]) - 128) / 128 }, nil
	case audioFormat == wavFormatPCM && bits == 16:
		return func(b []byte) float64 {
			return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
		}, nil
	case audioFormat == wavFormatPCM && bits == 24:
		return func(b []byte) float64 {
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			return float64(v) / 8388608
		}, nil
	case audioFormat == wavFormatPCM && bits == 32:
		return func(b []byte) float64 {
			return float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648
		}, nil
	case audioFormat == wavFormatFloat && bits == 32:
		return func(b []byte) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}, nil
	}
	return nil, errors.Errorf("unsupported wav encoding: format %d, %d bits", audioFormat, bits)
}

// WriteWAV encodes mono samples as 16-bit PCM.
func WriteWAV(w io.Writer, samples []float64, sampleRate int) error {
	dataLen := uint32(len(samples) * 2)
	hdr := struct {
		Riff     [4]byte
		Size     uint32
		Wave     [4]byte
		Fmt      [4]byte
		FmtSize  uint32
		Format   wavFormat
		Data     [4]byte
		DataSize uint32
	}{
		Riff:    [4]byte{'R', 'I', 'F', 'F'},
		Size:    36 + dataLen,
		Wave:    [4]byte{'W', 'A', 'V', 'E'},
		Fmt:     [4]byte{'f', 'm', 't', ' '},
		FmtSize: 16,
		Format: wavFormat{
			AudioFormat:   wavFormatPCM,
			Channels:      1,
			SampleRate:    uint32(sampleRate),
			ByteRate:      uint32(sampleRate * 2),
			BlockAlign:    2,
			BitsPerSample: 16,
		},
		Data:     [4]byte{'d', 'a', 't', 'a'},
		DataSize: dataLen,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return errors.Wrap(err, "write wav header")
	}
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		pcm[i] = int16(math.Round(s * 32767))
	}
	return errors.Wrap(binary.Write(w, binary.LittleEndian, pcm), "write wav data")
}

// WriteWAVFile is WriteWAV to a new file at path.
func WriteWAVFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create wav")
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
