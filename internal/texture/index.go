package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks the files that can stand for one texture; decodable
// formats win over DDS.
var extPriority = map[string]int{".tga": 3, ".bmp": 2, ".dds": 1}

// Index maps lowercase texture paths, relative to the data directory and
// without extension, to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans dataDir recursively for TGA, BMP and DDS files.
func BuildIndex(dataDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if extPriority[ext] == 0 {
			return nil
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return nil
		}
		key := stemKey(filepath.ToSlash(rel))

		existing, exists := idx.entries[key]
		if !exists || extPriority[ext] > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[key] = path
		}
		return nil
	})

	return idx
}

func stemKey(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ResolvePath returns the filesystem path for a texture name as stored in a
// model, or ("", false). Names are tried as given, below textures/, and by
// base name alone; the extension is ignored.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	key := stemKey(texName)
	key = strings.TrimPrefix(key, "data files/")
	for _, k := range []string{key, "textures/" + key, "textures/" + filepath.Base(key)} {
		if path, ok := idx.entries[k]; ok {
			return path, true
		}
	}
	return "", false
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
