package server

import (
	"bytes"
	"image"
	"image/jpeg"
	"log"
	"net/http"
	"sync/atomic"
)

type frame struct {
	pixels []byte // RGBA, 4 bytes per pixel
	width  int
	height int
}

// FrameRelay mirrors the rendered screen to remote viewers. The render loop
// hands frames over fire-and-forget; when the encoder is busy the frame is
// dropped so relaying can never stall rendering. The most recent JPEG is
// served over HTTP.
type FrameRelay struct {
	frames chan frame
	latest atomic.Pointer[[]byte]
}

func NewFrameRelay() *FrameRelay {
	r := &FrameRelay{frames: make(chan frame, 1)}
	go r.encodeLoop()
	return r
}

// OnFrameReady hands a rendered frame to the relay. The caller gives up
// ownership of pixels. Never blocks.
func (r *FrameRelay) OnFrameReady(pixels []byte, width, height int) {
	if len(pixels) != 4*width*height {
		return
	}
	select {
	case r.frames <- frame{pixels: pixels, width: width, height: height}:
	default:
		// encoder busy, drop the frame
	}
}

func (r *FrameRelay) encodeLoop() {
	for f := range r.frames {
		img := &image.RGBA{
			Pix:    f.pixels,
			Stride: 4 * f.width,
			Rect:   image.Rect(0, 0, f.width, f.height),
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 70}); err != nil {
			log.Printf("frame encode: %v", err)
			continue
		}
		data := buf.Bytes()
		r.latest.Store(&data)
	}
}

// ServeHTTP returns the latest mirrored frame as a JPEG.
func (r *FrameRelay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	data := r.latest.Load()
	if data == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(*data)
}
