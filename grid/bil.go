package grid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/flwdir/errs"
)

// ReadFloats32 reads n little-endian float32 values.
func ReadFloats32(fp string, n int) ([]float64, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadFloats32 failed: %v", err)
	}
	if len(b) != 4*n {
		return nil, fmt.Errorf("ReadFloats32 %s: file holds %d bytes, expecting %d: %w", fp, len(b), 4*n, errs.ErrInvalidInput)
	}
	f32 := make([]float32, n)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, f32); err != nil {
		return nil, fmt.Errorf("ReadFloats32 failed: %v", err)
	}
	o := make([]float64, n)
	for i, v := range f32 {
		o[i] = float64(v)
	}
	return o, nil
}

// WriteFloats32 writes f as little-endian float32.
func WriteFloats32(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("WriteFloats32 failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("WriteFloats32 failed: %v", err)
	}
	return nil
}

// WriteInts32 writes i as little-endian int32.
func WriteInts32(fp string, i []int32) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, i); err != nil {
		return fmt.Errorf("WriteInts32 failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("WriteInts32 failed: %v", err)
	}
	return nil
}

// ReadBytes reads a single-byte raster of n cells (e.g. encoded directions).
func ReadBytes(fp string, n int) ([]uint8, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadBytes failed: %v", err)
	}
	if len(b) != n {
		return nil, fmt.Errorf("ReadBytes %s: file holds %d bytes, expecting %d: %w", fp, len(b), n, errs.ErrInvalidInput)
	}
	return b, nil
}

// WriteBytes writes a single-byte raster.
func WriteBytes(fp string, b []uint8) error {
	if err := os.WriteFile(fp, b, 0644); err != nil {
		return fmt.Errorf("WriteBytes failed: %v", err)
	}
	return nil
}
