package sfm

import (
	"context"
	"image"
	// register decoders used to read image dimensions.
	_ "image/jpeg"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/spf13/cast"
	goutils "go.viam.com/utils"
	_ "golang.org/x/image/tiff"

	"go.viam.com/camerainit/logging"
	"go.viam.com/camerainit/utils"
)

// ImageExtensions are the file extensions ViewsFromFolder picks up, compared case-insensitively.
var ImageExtensions = []string{".jpg", ".jpeg", ".tif", ".tiff", ".exr"}

var exifFields = map[exif.FieldName]string{
	exif.Make:                  "Make",
	exif.Model:                 "Model",
	exif.FocalLength:           "Exif:FocalLength",
	exif.FocalLengthIn35mmFilm: "Exif:FocalLengthIn35mmFilm",
	"BodySerialNumber":         "Exif:BodySerialNumber",
	"LensSerialNumber":         "Exif:LensSerialNumber",
}

// IsImageFile reports whether the path has one of ImageExtensions.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ViewID derives a view's identity from its image path.
func ViewID(imagePath string) Index {
	id := Index(xxhash.Sum64String(filepath.ToSlash(imagePath)))
	if id == UndefinedIndex {
		id--
	}
	return id
}

// ViewsFromFolder lists every image below folder and builds a view for each from its EXIF data.
// Images whose dimensions cannot be read are skipped with a warning.
func ViewsFromFolder(ctx context.Context, folder string, logger logging.Logger) (*Data, error) {
	var paths []string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list images in %q", folder)
	}

	views := make([]*View, len(paths))
	err = utils.ParallelForEach(ctx, len(paths), utils.ParallelFactor, func(i int) error {
		width, height, metadata, err := ReadImageMetadata(paths[i])
		if err != nil {
			logger.Warnw("skipping image", "path", paths[i], "error", err)
			return nil
		}
		views[i] = NewView(ViewID(paths[i]), paths[i], width, height, metadata)
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := NewData()
	for _, v := range views {
		if v == nil {
			continue
		}
		if other, ok := data.Views[v.ViewID]; ok {
			return nil, errors.Errorf("images %q and %q have the same view id", other.ImagePath, v.ImagePath)
		}
		data.AddView(v)
	}
	logger.Infof("found %d images in %q", len(data.Views), folder)
	return data, nil
}

// ReadImageMetadata reads an image's pixel dimensions and the EXIF fields views use. Only the
// image header is decoded.
func ReadImageMetadata(path string) (width, height int, metadata map[string]string, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	metadata = map[string]string{}
	x, exifErr := exif.Decode(f)
	if exifErr == nil {
		for field, key := range exifFields {
			if value, ok := exifValue(x, field); ok {
				metadata[key] = value
			}
		}
		width, _ = exifInt(x, exif.PixelXDimension)
		height, _ = exifInt(x, exif.PixelYDimension)
	}

	if width <= 0 || height <= 0 {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return 0, 0, nil, err
		}
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return 0, 0, nil, errors.Wrap(err, "cannot read image dimensions")
		}
		width, height = cfg.Width, cfg.Height
	}
	return width, height, metadata, nil
}

func exifValue(x *exif.Exif, field exif.FieldName) (string, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return "", false
	}
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return "", false
		}
		s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
		return s, s != ""
	case tiff.RatVal:
		r, err := tag.Rat(0)
		if err != nil {
			return "", false
		}
		v, _ := r.Float64()
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case tiff.IntVal:
		n, err := tag.Int64(0)
		if err != nil {
			return "", false
		}
		return cast.ToString(n), true
	case tiff.FloatVal:
		v, err := tag.Float(0)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func exifInt(x *exif.Exif, field exif.FieldName) (int, bool) {
	value, ok := exifValue(x, field)
	if !ok {
		return 0, false
	}
	n, err := cast.ToIntE(value)
	return n, err == nil
}
