package ocr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ppiankov/plainspeak/internal/model"
)

func TestDecodeImage_PNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 30, 20))
	src.Set(1, 1, color.White)

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, size, err := DecodeImage(buf.Bytes(), 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if img == nil {
		t.Fatal("Expected image")
	}
	if size != (model.ImageSize{W: 30, H: 20}) {
		t.Errorf("Expected 30x20, got %+v", size)
	}
}

func TestDecodeImage_Empty(t *testing.T) {
	if _, _, err := DecodeImage(nil, 0); !errors.Is(err, model.ErrInput) {
		t.Errorf("Expected ErrInput, got %v", err)
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	if _, _, err := DecodeImage([]byte("not an image"), 0); !errors.Is(err, model.ErrInput) {
		t.Errorf("Expected ErrInput, got %v", err)
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h grayscale
// image with no pixel data behind it
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := make([]byte, 4+13)
	copy(chunk, "IHDR")
	binary.BigEndian.PutUint32(chunk[4:8], w)
	binary.BigEndian.PutUint32(chunk[8:12], h)
	chunk[12] = 8 // bit depth; colour type, compression, filter and interlace stay 0

	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeImage_TooManyPixels(t *testing.T) {
	_, _, err := DecodeImage(pngHeader(20000, 20000), 0)
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("Expected ErrInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "20000x20000") {
		t.Errorf("Expected dimensions in error, got %v", err)
	}
}

func TestDecodeImage_PixelLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 30, 20))); err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, _, err := DecodeImage(buf.Bytes(), 599); !errors.Is(err, model.ErrInput) {
		t.Errorf("Expected ErrInput above the limit, got %v", err)
	}
	if _, _, err := DecodeImage(buf.Bytes(), 600); err != nil {
		t.Errorf("Expected an image at the limit to decode, got %v", err)
	}
}
