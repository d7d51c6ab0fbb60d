// Package fonts resolves font families to faces and rasterizes text into
// alpha masks for banner-sized text.
package fonts

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrUnknownFamily is returned when a family is neither built in nor found
// in the font directory.
var ErrUnknownFamily = errors.New("fonts: unknown font family")

// Fixed is the bitmap family; its size is always 7x13.
const Fixed = "fixed"

type family struct {
	name string
	otf  *opentype.Font // nil for the bitmap family
	path string
}

type faceKey struct {
	family string
	size   float64
}

// Manager maps family names (case-insensitive) to faces, caching one face
// per family and size. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	dpi      float64
	families map[string]*family
	fonts    map[faceKey]*Font
	logger   *log.Logger
}

// Open registers the built-in families and every *.ttf file in dir.
// An empty dir only registers the built-ins.
func Open(dir string, dpi float64, logger *log.Logger) (*Manager, error) {
	if dpi <= 0 {
		dpi = 72
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		dpi:      dpi,
		families: make(map[string]*family),
		fonts:    make(map[faceKey]*Font),
		logger:   logger,
	}

	m.families[Fixed] = &family{name: Fixed}
	for name, ttf := range map[string][]byte{"Go": gobold.TTF, "Go Mono": gomonobold.TTF} {
		otf, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("fonts: cannot parse built-in %s: %w", name, err)
		}
		m.families[strings.ToLower(name)] = &family{name: name, otf: otf}
	}

	if dir == "" {
		return m, nil
	}
	if err := m.scan(dir); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) scan(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.ttf"))
	if err != nil {
		return fmt.Errorf("fonts: cannot scan %s: %w", dir, err)
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("fonts: cannot read directory: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("fonts: cannot read %s: %w", path, err)
		}
		otf, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("fonts: cannot parse %s: %w", path, err)
		}
		name, err := otf.Name(nil, sfnt.NameIDFamily)
		if err != nil || name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		m.families[strings.ToLower(name)] = &family{name: name, otf: otf, path: path}
		m.logger.Debug("registered font", "family", name, "path", path)
	}
	return nil
}

// Families returns the display names of all known families, sorted.
func (m *Manager) Families() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.families))
	for _, f := range m.families {
		names = append(names, f.name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether a family is known.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.families[strings.ToLower(name)]
	return ok
}

// Path returns the file a family was loaded from, empty for built-ins.
func (m *Manager) Path(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.families[strings.ToLower(name)]; ok {
		return f.path
	}
	return ""
}

// Get returns the font of a family at a pixel size.
func (m *Manager) Get(name string, size float64) (*Font, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{family: strings.ToLower(name), size: size}
	if f, ok := m.fonts[key]; ok {
		return f, nil
	}

	fam, ok := m.families[key.family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}

	var face font.Face = basicfont.Face7x13
	if fam.otf != nil {
		var err error
		face, err = opentype.NewFace(fam.otf, &opentype.FaceOptions{
			Size:    size,
			DPI:     m.dpi,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("fonts: cannot create %s face: %w", fam.name, err)
		}
	}

	f := &Font{Family: fam.name, Size: size, face: face, masks: make(map[string]*image.Alpha)}
	m.fonts[key] = f
	return f, nil
}

// Font is a face at one size. Rasterized strings are cached.
type Font struct {
	Family string
	Size   float64

	mu    sync.Mutex
	face  font.Face
	masks map[string]*image.Alpha
}

// Bounds returns the pixel size a string occupies.
func (f *Font) Bounds(text string) image.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds(text)
}

func (f *Font) bounds(text string) image.Point {
	m := f.face.Metrics()
	adv := font.MeasureString(f.face, text)
	return image.Pt(adv.Ceil(), (m.Ascent + m.Descent).Ceil())
}

// Rasterize draws text into an alpha mask sized to its bounds.
func (f *Font) Rasterize(text string) *image.Alpha {
	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok := f.masks[text]; ok {
		return m
	}

	b := f.bounds(text)
	dst := image.NewAlpha(image.Rect(0, 0, b.X, b.Y))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, f.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	f.masks[text] = dst
	return dst
}
