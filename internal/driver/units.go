package driver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shadow-lang/shadowc/internal/ilerr"
)

// shadowExt is the source extension the driver discovers units by.
const shadowExt = ".shadow"

// Unit is one compilation unit: a `Name.shadow` source file plus the
// sibling artifact paths the driver reads timestamps from and writes
// outputs to.
type Unit struct {
	Path       string // Name.shadow
	MetaPath   string // Name.meta
	ObjectPath string // Name.o
	LLPath     string // Name.ll, only written with --human-readable
}

func unitFor(shadowPath string) Unit {
	base := strings.TrimSuffix(shadowPath, shadowExt)
	return Unit{
		Path:       shadowPath,
		MetaPath:   base + ".meta",
		ObjectPath: base + ".o",
		LLPath:     base + ".ll",
	}
}

// DiscoverUnits finds every `.shadow` file directly under root (Shadow
// does not support nested package directories in the scope specified
// here) and returns them sorted by path, so build order — and therefore
// diagnostic order — is deterministic across runs on the same tree.
func DiscoverUnits(root string) ([]Unit, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ilerr.New(ilerr.FileNotFoundErr{Path: root})
		}
		return nil, err
	}
	var units []Unit
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), shadowExt) {
			continue
		}
		units = append(units, unitFor(filepath.Join(root, entry.Name())))
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return units, nil
}

// NeedsRecompile reports whether u's source is newer than its recorded
// metadata, or either artifact is missing — the only two conditions
// under which a rebuild is required. force always answers true, matching
// --force-recompile.
func NeedsRecompile(u Unit, force bool) bool {
	if force {
		return true
	}
	sourceInfo, err := os.Stat(u.Path)
	if err != nil {
		return true
	}
	metaInfo, err := os.Stat(u.MetaPath)
	if err != nil {
		return true
	}
	if _, err := os.Stat(u.ObjectPath); err != nil {
		return true
	}
	return sourceInfo.ModTime().After(metaInfo.ModTime())
}
