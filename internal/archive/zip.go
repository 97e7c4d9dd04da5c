// internal/archive/zip.go
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
)

// Zip writes deflate-compressed zip archives with entries named by asset path.
type Zip struct{}

// Extension implements export.ArchiveWriter.
func (Zip) Extension() string { return FormatZip }

// Write implements export.ArchiveWriter.
func (Zip) Write(ctx context.Context, root string, assetPaths []string, outputPath string) (err error) {
	entries, err := resolve(root, assetPaths)
	if err != nil {
		return err
	}

	f, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.dir {
			if _, err := zw.Create(e.asset + "/"); err != nil {
				return err
			}
			continue
		}
		if err := addFileToZip(zw, e.path, e.asset); err != nil {
			return fmt.Errorf("add %s: %w", e.asset, err)
		}
	}
	return zw.Close()
}

func addFileToZip(zw *zip.Writer, srcPath, zipPath string) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = zipPath
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
