// Package config loads diagram styles from TOML files.
//
// A style file overrides any subset of [idef0.Style]; omitted keys keep
// their defaults:
//
//	font_size = 14
//	clearance = 24
//	line_gap  = 12
//
// Keys that do not name a style field are rejected so that typos do not
// pass silently.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	idferrors "github.com/matzehuels/idef0/pkg/errors"
	"github.com/matzehuels/idef0/pkg/idef0"
)

// FileName is the style file looked up in the user config directory.
const FileName = "style.toml"

// DefaultPath returns $XDG_CONFIG_HOME/idef0/style.toml, falling back to
// the platform config directory. It returns "" if neither is known.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "idef0", FileName)
}

// Load decodes the style file at path on top of the default style.
func Load(path string) (idef0.Style, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return idef0.Style{}, idferrors.Wrap(idferrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return idef0.Style{}, err
	}
	defer f.Close()

	style, err := Decode(f)
	if err != nil {
		return idef0.Style{}, idferrors.Wrap(idferrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return style, nil
}

// Decode reads a style document from r on top of the default style.
func Decode(r io.Reader) (idef0.Style, error) {
	style := idef0.DefaultStyle()
	md, err := toml.NewDecoder(r).Decode(&style)
	if err != nil {
		return idef0.Style{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return idef0.Style{}, idferrors.New(idferrors.ErrCodeInvalidConfig, "unknown keys: %v", keys)
	}
	if err := Validate(style); err != nil {
		return idef0.Style{}, err
	}
	return style, nil
}

// Validate rejects negative lengths.
func Validate(s idef0.Style) error {
	fields := []struct {
		key string
		v   float64
	}{
		{"font_size", s.FontSize},
		{"box_min_width", s.BoxMinWidth},
		{"box_min_height", s.BoxMinHeight},
		{"box_padding", s.BoxPadding},
		{"anchor_spacing", s.AnchorSpacing},
		{"clearance", s.Clearance},
		{"line_gap", s.LineGap},
		{"side_margin", s.SideMargin},
	}
	for _, f := range fields {
		if f.v < 0 {
			return idferrors.New(idferrors.ErrCodeInvalidConfig, "%s must not be negative, got %v", f.key, f.v)
		}
	}
	return nil
}

// Resolve picks the style for a run. An explicit path must exist. Without
// one, the default path is used when a file is there, and the built-in
// style otherwise. The returned path is "" when no file was read.
func Resolve(explicit string) (idef0.Style, string, error) {
	if explicit != "" {
		s, err := Load(explicit)
		return s, explicit, err
	}
	path := DefaultPath()
	if path == "" {
		return idef0.DefaultStyle(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return idef0.DefaultStyle(), "", nil
	}
	s, err := Load(path)
	return s, path, err
}
