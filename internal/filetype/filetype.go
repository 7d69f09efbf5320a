// Package filetype maps file extensions to a coarse class table. Table
// membership is an implementation detail, not a contract, but must stay
// stable across runs.
package filetype

import "github.com/arnegard/fq/internal/criteria"

var classByExt = buildTable()

func buildTable() map[string]criteria.FileType {
	table := map[string]criteria.FileType{}
	add := func(t criteria.FileType, exts ...string) {
		for _, e := range exts {
			table[e] = t
		}
	}

	add(criteria.TypeText,
		"txt", "md", "markdown", "c", "h", "cpp", "cc", "cxx", "hpp", "rs",
		"go", "py", "js", "mjs", "cjs", "ts", "tsx", "jsx", "json", "yaml",
		"yml", "toml", "xml", "html", "htm", "css", "scss", "sass", "ini",
		"cfg", "conf", "sh", "bash", "zsh", "rb", "php", "java", "kt",
		"swift", "sql", "csv", "tsv", "log", "rst", "tex",
	)
	add(criteria.TypeImage,
		"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "tiff", "tif",
		"ico", "heic", "heif", "avif", "raw", "cr2", "nef",
	)
	add(criteria.TypeVideo,
		"mp4", "mkv", "mov", "avi", "webm", "flv", "wmv", "m4v", "mpg",
		"mpeg", "3gp", "ogv",
	)
	add(criteria.TypeAudio,
		"mp3", "wav", "flac", "ogg", "m4a", "aac", "wma", "opus", "aiff",
		"alac",
	)
	add(criteria.TypeArchive,
		"zip", "tar", "gz", "bz2", "7z", "rar", "xz", "zst", "tgz", "tbz2",
		"lz", "lzma", "cab", "iso",
	)

	return table
}

// ClassOf returns the coarse class for a lowercase extension (without a
// leading dot) and whether it is known.
func ClassOf(ext string) (criteria.FileType, bool) {
	t, ok := classByExt[ext]
	return t, ok
}
