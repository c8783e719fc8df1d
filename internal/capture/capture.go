// Package capture saves rendered frames read back from the GPU.
package capture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fireball/internal/utils"

	"github.com/pierrec/lz4/v4"
)

// Magic starts every raw capture file.
const Magic = "FBCAP001"

// Ext is the extension of raw captures.
const Ext = ".rgba.lz4"

var ErrBadCapture = errors.New("capture: malformed file")

// PixelReader is the part of a GPU device capture needs.
type PixelReader interface {
	ReadPixels(x, y, width, height int32) []byte
}

// Frame is a tightly packed RGBA8 image, top row first.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Grab reads the currently bound framebuffer. GL returns the bottom row
// first, so rows are flipped here.
func Grab(dev PixelReader, width, height int32) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("capture: empty surface %dx%d", width, height)
	}
	pix := dev.ReadPixels(0, 0, width, height)
	if len(pix) != int(width)*int(height)*4 {
		return Frame{}, fmt.Errorf("capture: got %d bytes for %dx%d", len(pix), width, height)
	}
	flipRows(pix, int(width)*4)
	return Frame{Width: int(width), Height: int(height), Pix: pix}, nil
}

func flipRows(pix []byte, stride int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, len(pix)-stride; top < bottom; top, bottom = top+stride, bottom-stride {
		copy(tmp, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bottom:bottom+stride])
		copy(pix[bottom:bottom+stride], tmp)
	}
}

// Image wraps the frame without copying.
func (f Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Save writes f to path. The format follows the extension: PNG for .png,
// the raw LZ4 container for .rgba.lz4.
func Save(path string, f Frame) error {
	var encode func(io.Writer, Frame) error
	switch {
	case strings.HasSuffix(path, Ext):
		encode = WriteRaw
	case strings.EqualFold(filepath.Ext(path), ".png"):
		encode = func(w io.Writer, f Frame) error { return png.Encode(w, f.Image()) }
	default:
		return fmt.Errorf("capture: unknown format for %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := encode(w, f); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	utils.Info("Capture: saved %dx%d frame to %s", f.Width, f.Height, path)
	return out.Close()
}

// WriteRaw writes the header, then the pixels as a single LZ4 block. Pixels
// that do not compress are stored as is.
func WriteRaw(w io.Writer, f Frame) error {
	var c lz4.Compressor
	block := make([]byte, lz4.CompressBlockBound(len(f.Pix)))
	n, err := c.CompressBlock(f.Pix, block)
	if err != nil {
		return err
	}

	compressed := n > 0 && n < len(f.Pix)
	data := f.Pix
	if compressed {
		data = block[:n]
	}

	header := struct {
		Magic            [8]byte
		Width, Height    uint32
		IsLZ4            uint32
		DecompressedSize uint32
		DataSize         uint32
	}{
		Width:            uint32(f.Width),
		Height:           uint32(f.Height),
		DecompressedSize: uint32(len(f.Pix)),
		DataSize:         uint32(len(data)),
	}
	copy(header.Magic[:], Magic)
	if compressed {
		header.IsLZ4 = 1
	}

	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadRaw parses a file produced by WriteRaw.
func ReadRaw(r io.Reader) (Frame, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Frame{}, err
	}
	if string(magic[:]) != Magic {
		return Frame{}, fmt.Errorf("%w: magic %q", ErrBadCapture, magic[:])
	}

	var fields [5]uint32
	if err := binary.Read(r, binary.LittleEndian, &fields); err != nil {
		return Frame{}, err
	}
	width, height, isLZ4, size, dataSize := fields[0], fields[1], fields[2], fields[3], fields[4]
	if uint64(width)*uint64(height)*4 != uint64(size) {
		return Frame{}, fmt.Errorf("%w: %dx%d does not match %d bytes", ErrBadCapture, width, height, size)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return Frame{}, err
	}

	pix := data
	if isLZ4 == 1 {
		utils.Debug("Capture: decompressing LZ4 %d -> %d", dataSize, size)
		pix = make([]byte, size)
		n, err := lz4.UncompressBlock(data, pix)
		if err != nil {
			return Frame{}, err
		}
		if n != int(size) {
			return Frame{}, fmt.Errorf("%w: decompressed %d of %d bytes", ErrBadCapture, n, size)
		}
	} else if dataSize != size {
		return Frame{}, fmt.Errorf("%w: stored %d of %d bytes", ErrBadCapture, dataSize, size)
	}

	return Frame{Width: int(width), Height: int(height), Pix: pix}, nil
}

// Load reads a raw capture from disk.
func Load(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, err
	}
	defer f.Close()
	return ReadRaw(bufio.NewReader(f))
}
