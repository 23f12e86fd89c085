// Package assets resolves optional export assets: the wide banner image and
// an Arabic-capable TrueType font. Every resolution failure degrades to
// "asset absent" so an export never aborts over a missing file.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hgadco/tabrex/pkg/report/models"
)

// DefaultBannerCandidates mirrors the asset layout of the dashboard shell.
var DefaultBannerCandidates = []string{
	"assets/logo_wide.png",
	"assets/logo_wide.jpg",
	"assets/logo_wide.jpeg",
}

// DefaultFontCandidates lists Arabic-capable fonts in preference order,
// ending with a system fallback.
var DefaultFontCandidates = []string{
	"assets/Cairo-Regular.ttf",
	"assets/Amiri-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// FirstExisting returns the first path that exists as a non-empty regular
// file, or "" when none does.
func FirstExisting(paths []string) string {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() && info.Size() > 0 {
			return p
		}
	}
	return ""
}

// LoadBanner reads and measures the image at path. A missing file yields an
// error the caller treats as "no banner"; a readable file with undecodable
// dimensions still loads, with zero Width/Height so layout falls back to
// the default height.
func LoadBanner(path string) (*models.Banner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read banner %s: %w", path, err)
	}
	b := &models.Banner{
		Path:      path,
		Extension: strings.ToLower(filepath.Ext(path)),
		Data:      data,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		b.Width = cfg.Width
		b.Height = cfg.Height
	}
	return b, nil
}

// FontRegistry resolves the first usable Arabic-capable TrueType font from a
// candidate list, once per process. Registration with a concrete document is
// the renderer's job; the registry only owns path resolution.
type FontRegistry struct {
	candidates []string

	once   sync.Once
	family string
	path   string
	ok     bool
}

// NewFontRegistry creates a registry over the given candidate paths.
// An empty list uses DefaultFontCandidates.
func NewFontRegistry(candidates ...string) *FontRegistry {
	if len(candidates) == 0 {
		candidates = DefaultFontCandidates
	}
	return &FontRegistry{candidates: candidates}
}

// Resolve returns the font family name (the file's base name without
// extension), its path, and whether a usable font was found. The lookup
// runs once; repeated calls return the memoized result.
func (r *FontRegistry) Resolve() (family, path string, ok bool) {
	r.once.Do(func() {
		p := FirstExisting(r.candidates)
		if p == "" {
			return
		}
		base := filepath.Base(p)
		r.family = strings.TrimSuffix(base, filepath.Ext(base))
		r.path = p
		r.ok = true
	})
	return r.family, r.path, r.ok
}
