package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// parseWAV walks the RIFF chunks of a WAV file and returns the format
// plus the raw sample data.
func parseWAV(data []byte) (wavFormat, []byte, error) {
	r := bytes.NewReader(data)

	var riff [4]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil || string(riff[:]) != "RIFF" {
		return wavFormat{}, nil, errors.New("not a RIFF file")
	}
	r.Seek(4, io.SeekCurrent) // file size
	var wave [4]byte
	if _, err := io.ReadFull(r, wave[:]); err != nil || string(wave[:]) != "WAVE" {
		return wavFormat{}, nil, errors.New("not a WAVE file")
	}

	var format wavFormat
	haveFormat := false
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(r, chunkID[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return wavFormat{}, nil, err
		}
		var chunkSize uint32
		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return wavFormat{}, nil, err
		}

		switch string(chunkID[:]) {
		case "fmt ":
			var hdr struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
				return wavFormat{}, nil, err
			}
			format = wavFormat{
				SampleRate: int(hdr.SampleRate),
				Channels:   int(hdr.NumChannels),
				BitDepth:   int(hdr.BitsPerSample),
			}
			haveFormat = true
			if extra := int64(chunkSize) - 16; extra > 0 {
				r.Seek(extra, io.SeekCurrent)
			}
		case "data":
			if !haveFormat {
				return wavFormat{}, nil, errors.New("data chunk before fmt chunk")
			}
			if int64(chunkSize) > int64(r.Len()) {
				return wavFormat{}, nil, fmt.Errorf("data chunk size %d exceeds remaining %d bytes", chunkSize, r.Len())
			}
			samples := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, samples); err != nil {
				return wavFormat{}, nil, fmt.Errorf("short data chunk: %w", err)
			}
			return format, samples, nil
		default:
			r.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}
	return wavFormat{}, nil, errors.New("no data chunk found")
}
