package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	bgeraser "github.com/nkoller/background-eraser"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when detection has no pixels to sample.
var ErrEmptyImage = errors.New("utils: image is empty")

type BackgroundMethod int

const (
	// BackgroundMethodBorder picks the most frequent color on the image border.
	BackgroundMethodBorder BackgroundMethod = iota
	// BackgroundMethodKMeans clusters the border pixels and picks the
	// center of the most populated cluster.
	BackgroundMethodKMeans
	// BackgroundMethodDominantColor picks the heaviest dominant color of the
	// whole image.
	BackgroundMethodDominantColor
)

func (m BackgroundMethod) String() string {
	switch m {
	case BackgroundMethodKMeans:
		return "kmeans"
	case BackgroundMethodDominantColor:
		return "dominantcolor"
	default:
		return "border"
	}
}

// ParseBackgroundMethod maps a method name as printed by String back to
// its value.
func ParseBackgroundMethod(s string) (BackgroundMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "border":
		return BackgroundMethodBorder, nil
	case "kmeans":
		return BackgroundMethodKMeans, nil
	case "dominantcolor", "dominant":
		return BackgroundMethodDominantColor, nil
	}
	return 0, fmt.Errorf("unknown background method %q", s)
}

// ParseColor parses a hex color such as "#fff" or "ffffff" into an opaque
// color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return toNRGBA(c), nil
}

// FormatColor renders the non-premultiplied color channels of c as
// "#rrggbb". Alpha is dropped.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// borderPixels returns every pixel on the outermost rows and columns of img,
// each exactly once.
func borderPixels(img image.Image) []color.NRGBA {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	at := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	out := make([]color.NRGBA, 0, 2*(b.Dx()+b.Dy()))
	for x := b.Min.X; x < b.Max.X; x++ {
		out = append(out, at(x, b.Min.Y))
		if b.Dy() > 1 {
			out = append(out, at(x, b.Max.Y-1))
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		out = append(out, at(b.Min.X, y))
		if b.Dx() > 1 {
			out = append(out, at(b.Max.X-1, y))
		}
	}
	return out
}

// BorderBackground returns the most frequent opaque color on the border of
// img. Ties go to the color seen first, scanning the top row first.
func BorderBackground(img image.Image) (color.NRGBA, bool) {
	pixels := borderPixels(img)
	if len(pixels) == 0 {
		return color.NRGBA{}, false
	}
	counts := make(map[color.NRGBA]int, len(pixels))
	order := make([]color.NRGBA, 0)
	for _, p := range pixels {
		p.A = 255
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best, true
}

// KMeansBackground clusters the border pixels of img into at most k groups
// and returns the center of the largest one.
func KMeansBackground(img image.Image, k int) (color.NRGBA, bool) {
	pixels := borderPixels(img)
	if len(pixels) == 0 || k <= 0 {
		return color.NRGBA{}, false
	}
	dataset := make(clusters.Observations, 0, len(pixels))
	for _, p := range pixels {
		dataset = append(dataset, clusters.Coordinates{
			float64(p.R) / 255.0,
			float64(p.G) / 255.0,
			float64(p.B) / 255.0,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return color.NRGBA{}, false
	}
	// Partition skips recentering when the first assignment already converged,
	// leaving the random seeds as centers.
	cc.Recenter()
	// Most populated cluster first.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})
	center := cc[0].Center
	if len(cc[0].Observations) == 0 || len(center) < 3 {
		return color.NRGBA{}, false
	}
	return toNRGBA(colorful.Color{R: center[0], G: center[1], B: center[2]}), true
}

// DominantBackground returns the heaviest dominant color of img.
func DominantBackground(img image.Image) (color.NRGBA, bool) {
	candidates := dominantcolor.FindWeight(img, 4)
	if len(candidates) == 0 {
		return color.NRGBA{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	col, _ := colorful.MakeColor(best.RGBA)
	return toNRGBA(col), true
}

// DetectBackground estimates the background color of img. Methods other
// than border fall back to it when they come up empty.
func DetectBackground(img image.Image, method BackgroundMethod) (color.NRGBA, error) {
	var (
		c  color.NRGBA
		ok bool
	)
	switch method {
	case BackgroundMethodKMeans:
		c, ok = KMeansBackground(img, 3)
	case BackgroundMethodDominantColor:
		c, ok = DominantBackground(img)
	}
	if ok {
		return c, nil
	}
	if method != BackgroundMethodBorder {
		bgeraser.Logger().Warn("background detection returned nothing, falling back to border",
			slog.String("method", method.String()))
	}
	c, ok = BorderBackground(img)
	if !ok {
		return color.NRGBA{}, ErrEmptyImage
	}
	return c, nil
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SaveImage writes img as PNG, creating parent directories as needed.
func SaveImage(img image.Image, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveDebugImages writes the alpha mask and reference map of a built
// remover to dir.
func SaveDebugImages(r *bgeraser.Remover, dir string) error {
	if err := SaveImage(r.AlphaMask(), filepath.Join(dir, "alpha.png")); err != nil {
		return err
	}
	return SaveImage(r.RefImage(), filepath.Join(dir, "refs.png"))
}
