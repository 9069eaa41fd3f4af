package bgremove

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type DecodeFunc func(r io.Reader) (image.Image, string, error)

type EncodeFunc func(w io.Writer, img image.Image) error

// Imaging is the image-handling capability: everything that touches a container format
// goes through it. Output is always PNG.
type Imaging struct {
	Decode DecodeFunc
	Encode EncodeFunc
	Logger *slog.Logger
}

func NewImaging() *Imaging {
	return &Imaging{
		Decode: image.Decode,
		Encode: png.Encode,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Acquire builds the default capability and probes it once.
func Acquire() (*Imaging, error) {
	im := NewImaging()
	if err := im.Probe(); err != nil {
		return nil, err
	}
	return im, nil
}

// Probe round-trips a single transparent pixel through the encoder and decoder.
func (im *Imaging) Probe() error {
	fail := func(err error) error {
		return &OpError{
			Op:   "imaging.probe",
			Kind: KindUnavailable,
			Err:  fmt.Errorf("%w: %v", ErrImagingUnavailable, err),
		}
	}
	if im == nil || im.Decode == nil || im.Encode == nil {
		return fail(fmt.Errorf("codec not configured"))
	}

	px := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(px.Pix, Transparent[:])
	var buf bytes.Buffer
	if err := im.Encode(&buf, px); err != nil {
		return fail(err)
	}
	got, _, err := im.Decode(&buf)
	if err != nil {
		return fail(err)
	}
	if got.Bounds().Dx() != 1 || got.Bounds().Dy() != 1 {
		return fail(fmt.Errorf("round trip changed bounds to %v", got.Bounds()))
	}
	return nil
}

func (im *Imaging) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpError{Op: "imaging.load", Kind: KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := im.Decode(f)
	if err != nil {
		return nil, &OpError{Op: "imaging.load", Kind: KindDecode, Path: path, Err: err}
	}
	im.logger().Debug("imaging.loaded", "path", path, "format", format, "bounds", img.Bounds().String())
	return img, nil
}

// Save writes img as PNG to a temporary file beside path and renames it into place,
// so path either keeps its old content or holds the complete new image.
func (im *Imaging) Save(img image.Image, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &OpError{Op: "imaging.save", Kind: KindWrite, Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := im.Encode(tmp, img); err != nil {
		cleanup()
		return &OpError{Op: "imaging.save", Kind: KindEncode, Path: path, Err: err}
	}
	// CreateTemp opens with 0600; an existing target keeps its mode.
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return &OpError{Op: "imaging.save", Kind: KindWrite, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &OpError{Op: "imaging.save", Kind: KindWrite, Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &OpError{Op: "imaging.save", Kind: KindWrite, Path: path, Err: err}
	}
	im.logger().Debug("imaging.saved", "path", path)
	return nil
}

// RemoveBackground loads in, applies pred and writes the result to out.
func (im *Imaging) RemoveBackground(in, out string, pred Predicate) (Stats, error) {
	img, err := im.Load(in)
	if err != nil {
		return Stats{}, err
	}
	res, st := Apply(img, pred)
	if err := im.Save(res, out); err != nil {
		return Stats{}, err
	}
	im.logger().Info("remove.done",
		"input", in,
		"output", out,
		"width", st.Width,
		"height", st.Height,
		"removed", st.Removed,
		"total", st.Total,
	)
	return st, nil
}

func (im *Imaging) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return im.Logger
}
