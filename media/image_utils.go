package media

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
)

var photoExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// IsRasterImage reports whether the filename carries an extension accepted
// for soldier photo uploads
func IsRasterImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return photoExtensions[ext]
}
