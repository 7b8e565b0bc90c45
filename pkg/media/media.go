// Package media encodes image files as inline data URLs.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("not an image")

// EncodeFile reads the image at path and returns it as a data URL together
// with its base name.
func EncodeFile(path string) (dataURL, filename string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	filename = filepath.Base(path)
	dataURL, err = Encode(f, filename)
	if err != nil {
		return "", "", err
	}
	return dataURL, filename, nil
}

// Encode reads an image from r. The content type is sniffed from the data;
// the filename extension is only consulted when sniffing is inconclusive
// (SVG is text to the sniffer).
func Encode(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	contentType := ContentType(data, filename)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s (%s): %w", filename, contentType, ErrNotImage)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ContentType returns the media type of data, without parameters.
func ContentType(data []byte, filename string) string {
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(filename))); err == nil &&
		strings.HasPrefix(byExt, "image/") && (sniffed == "text/xml" || sniffed == "text/plain") {
		return byExt
	}
	return sniffed
}
