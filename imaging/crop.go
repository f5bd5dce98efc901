package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/nfnt/resize"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const (
	// OutputSize is the edge length of every cropped image.
	OutputSize = 800
	// JPEGQuality of cropped output.
	JPEGQuality = 90
	// AutoCropArea is the share of the shorter edge the default crop box covers.
	AutoCropArea = 0.8
	// MaxEdge and MaxPixels bound what is decoded; a small compressed file can still expand
	// to gigabytes of pixels.
	MaxEdge   = 10000
	MaxPixels = 40_000_000
)

var now = time.Now

// Cropped is the re-encoded result of a crop, ready for upload.
type Cropped struct {
	Name        string
	ContentType string
	Data        []byte
}

// DefaultBox returns the centered square covering AutoCropArea of the shorter edge.
func DefaultBox(bounds image.Rectangle) image.Rectangle {
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	side = int(float64(side) * AutoCropArea)
	if side < 1 {
		side = 1
	}
	x := bounds.Min.X + (bounds.Dx()-side)/2
	y := bounds.Min.Y + (bounds.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

// SquareBox clips box to bounds and shrinks it to a square anchored at its top-left corner.
func SquareBox(box, bounds image.Rectangle) (image.Rectangle, error) {
	box = box.Canon().Intersect(bounds)
	if box.Empty() {
		return image.Rectangle{}, errs.NewInvalidFieldError("crop", "crop area lies outside the image")
	}
	side := box.Dx()
	if box.Dy() < side {
		side = box.Dy()
	}
	return image.Rect(box.Min.X, box.Min.Y, box.Min.X+side, box.Min.Y+side), nil
}

// Crop cuts box out of src at a 1:1 aspect and scales it to OutputSize x OutputSize.
// A nil box selects DefaultBox.
func Crop(src image.Image, box *image.Rectangle) (image.Image, error) {
	area := DefaultBox(src.Bounds())
	if box != nil {
		var err error
		if area, err = SquareBox(*box, src.Bounds()); err != nil {
			return nil, err
		}
	}

	square := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(square, square.Bounds(), src, area.Min, draw.Src)
	return resize.Resize(OutputSize, OutputSize, square, resize.Lanczos3), nil
}

// CropJPEG decodes data, crops it and re-encodes it as a JPEG named cropped-<unix millis>.jpg.
func CropJPEG(data []byte, box *image.Rectangle) (Cropped, error) {
	if err := checkDimensions(data); err != nil {
		return Cropped{}, err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Cropped{}, errs.NewFileValidationError(errs.ErrNotAnImage, "image", http.StatusBadRequest)
	}

	out, err := Crop(src, box)
	if err != nil {
		return Cropped{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return Cropped{}, fmt.Errorf("encode cropped image: %w", err)
	}
	return Cropped{
		Name:        fmt.Sprintf("cropped-%d.jpg", now().UnixMilli()),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
	}, nil
}

func checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errs.NewFileValidationError(errs.ErrNotAnImage, "image", http.StatusBadRequest)
	}
	if cfg.Width > MaxEdge || cfg.Height > MaxEdge || cfg.Width*cfg.Height > MaxPixels {
		return errs.NewFileValidationError(errs.ErrImageDimensions, "image", http.StatusRequestEntityTooLarge)
	}
	return nil
}
