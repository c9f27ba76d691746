package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// 将每一帧编码为 jpeg 追加到 MJPEG AVI，尺寸取第一帧
type movieWriter struct {
	path string
	fps  int
	aw   mjpeg.AviWriter
	buf  bytes.Buffer
}

func newMovieWriter(path string, fps int) *movieWriter {
	return &movieWriter{path: path, fps: fps}
}

func (m *movieWriter) add(img image.Image) error {
	b := img.Bounds()
	if m.aw == nil {
		aw, err := mjpeg.New(m.path, int32(b.Dx()), int32(b.Dy()), int32(m.fps))
		if err != nil {
			return fmt.Errorf("create movie %s: %w", m.path, err)
		}
		m.aw = aw
	}
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode movie frame: %w", err)
	}
	if err := m.aw.AddFrame(m.buf.Bytes()); err != nil {
		return fmt.Errorf("write movie frame: %w", err)
	}
	return nil
}

func (m *movieWriter) close() error {
	if m.aw == nil {
		return nil
	}
	return m.aw.Close()
}
