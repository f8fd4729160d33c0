// services/export_service.go
package services

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"zeroun-site/logger"
)

// directories never included in a website export
var exportSkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"logs":         true,
	"data":         true,
}

// ExportWebsite writes a zip archive of root to w. Transient directories
// (VCS, logs, the live database) are skipped.
func ExportWebsite(root string, w io.Writer) error {
	zw := zip.NewWriter(w)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if exportSkipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := zw.Create(strings.ReplaceAll(rel, string(os.PathSeparator), "/"))
		if err != nil {
			return err
		}
		src, err := os.Open(path) // #nosec G304 -- path comes from walking the export root
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(f, src)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}

	logger.Info.Printf("[ExportWebsite] Archived %s", root)
	return zw.Close()
}
