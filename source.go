package moji

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	// Decoders for the formats accepted by every source.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.design/x/clipboard"
)

// ErrUnresolvableSource is returned when a source cannot produce a decoded
// image: unreadable path, unreachable URL, empty or non-image clipboard.
var ErrUnresolvableSource = errors.New("moji: unresolvable image source")

// Source is anything that can be resolved into a decoded image.
type Source interface {
	Resolve(ctx context.Context) (image.Image, error)
}

// PathSource is an image file on the local filesystem.
type PathSource string

// URLSource is an image fetched over HTTP or HTTPS. A nil Client means
// http.DefaultClient.
type URLSource struct {
	URL    string
	Client *http.Client
}

// ClipboardSource is the image currently held by the system clipboard.
type ClipboardSource struct{}

// DecodedImage is an image that has already been decoded.
type DecodedImage struct {
	image.Image
}

// ParseSource classifies a locator. "clip" and "clipboard" (any case) select
// the clipboard, http:// and https:// locators are URLs, anything else is a
// path.
func ParseSource(locator string) Source {
	lower := strings.ToLower(locator)

	switch {
	case lower == "clip" || lower == "clipboard":
		return ClipboardSource{}
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return URLSource{URL: locator}
	default:
		return PathSource(locator)
	}
}

func unresolvable(kind string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnresolvableSource, kind, err)
}

// Resolve implements Source.
func (p PathSource) Resolve(ctx context.Context) (image.Image, error) {
	input, err := os.Open(string(p))
	if err != nil {
		return nil, unresolvable("path", err)
	}
	defer input.Close()

	img, _, err := image.Decode(input)
	if err != nil {
		return nil, unresolvable("path "+string(p), err)
	}

	return img, nil
}

// Resolve implements Source.
func (u URLSource) Resolve(ctx context.Context) (image.Image, error) {
	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return nil, unresolvable("url", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, unresolvable("url", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unresolvable("url "+u.URL, errors.New(resp.Status))
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, unresolvable("url "+u.URL, err)
	}

	return img, nil
}

// Resolve implements Source.
func (ClipboardSource) Resolve(ctx context.Context) (image.Image, error) {
	if err := clipboard.Init(); err != nil {
		return nil, unresolvable("clipboard", err)
	}

	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, unresolvable("clipboard", errors.New("no image in clipboard"))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, unresolvable("clipboard", err)
	}

	return img, nil
}

// Resolve implements Source.
func (d DecodedImage) Resolve(ctx context.Context) (image.Image, error) {
	if d.Image == nil {
		return nil, unresolvable("image", errors.New("nil image"))
	}

	return d.Image, nil
}
