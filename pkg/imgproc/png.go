package imgproc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
	"os"
)

// pngHeaderLen is the fixed prefix of every PNG stream: the 8-byte signature
// plus the 25-byte IHDR chunk. The pHYs chunk must appear before the first
// IDAT, so it is spliced in right after IHDR.
const pngHeaderLen = 8 + 25

const metersPerInch = 0.0254

// EncodePNGWithDPI writes img as a PNG carrying a pHYs chunk with the given
// resolution. The standard library encoder has no DPI support, so the chunk
// is inserted into the encoded stream.
func EncodePNGWithDPI(w io.Writer, img image.Image, dpi int) error {
	if dpi <= 0 {
		return fmt.Errorf("invalid DPI: %d", dpi)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("unable to encode PNG: %w", err)
	}

	encoded := buf.Bytes()
	if len(encoded) < pngHeaderLen {
		return fmt.Errorf("encoded PNG is truncated (%d bytes)", len(encoded))
	}

	if _, err := w.Write(encoded[:pngHeaderLen]); err != nil {
		return err
	}

	if _, err := w.Write(physChunk(dpi)); err != nil {
		return err
	}

	_, err := w.Write(encoded[pngHeaderLen:])
	return err
}

// SavePNG writes img to pathname as a PNG with DPI metadata.
func SavePNG(pathname string, img image.Image, dpi int) error {
	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}

	if err := EncodePNGWithDPI(f, img, dpi); err != nil {
		f.Close()
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return f.Close()
}

// PixelsPerMeter converts a DPI value into the pHYs chunk's unit.
func PixelsPerMeter(dpi int) uint32 {
	return uint32(math.Round(float64(dpi) / metersPerInch))
}

func physChunk(dpi int) []byte {
	ppm := PixelsPerMeter(dpi)

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9) // data length
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: meters

	crc := crc32.ChecksumIEEE(chunk[4:])
	return binary.BigEndian.AppendUint32(chunk, crc)
}
