package upload

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MaxLogoSize = 2 << 20

var (
	ErrNotImage    = errors.New("logo must be an image")
	ErrLogoTooBig  = errors.New("logo must be at most 2 MiB")
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// ReadImage reads at most MaxLogoSize bytes and sniffs the content type.
func ReadImage(r io.Reader) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return nil, nil, err
	}

	if len(data) == 0 {
		return nil, nil, ErrEmptyUpload
	}

	if len(data) > MaxLogoSize {
		return nil, nil, ErrLogoTooBig
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, nil, ErrNotImage
	}

	return data, mime, nil
}

// DataURL encodes an image inline so it can be stored directly in the profile record.
func DataURL(r io.Reader) (string, error) {
	data, mime, err := ReadImage(r)
	if err != nil {
		return "", err
	}

	return InlineURL(data, mime), nil
}

func InlineURL(data []byte, mime *mimetype.MIME) string {
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}
