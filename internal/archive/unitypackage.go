// internal/archive/unitypackage.go
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vmunix/unipack/internal/host"
)

// UnityPackage writes gzip-compressed tarballs in Unity's .unitypackage layout:
// one folder per asset, named by the asset GUID, holding "pathname", "asset"
// (files only) and "asset.meta" (when the asset has one).
type UnityPackage struct{}

// Extension implements export.ArchiveWriter.
func (UnityPackage) Extension() string { return FormatUnityPackage }

// Write implements export.ArchiveWriter.
func (UnityPackage) Write(ctx context.Context, root string, assetPaths []string, outputPath string) (err error) {
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

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	modTime := time.Now()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Meta files travel inside their asset's folder.
		if strings.HasSuffix(e.asset, ".meta") {
			continue
		}

		guid, err := host.ParseMetaGUID(e.path + ".meta")
		hasMeta := err == nil
		if !hasMeta {
			guid = host.DerivedGUID(e.asset)
		}

		if err := tw.WriteHeader(&tar.Header{Typeflag: tar.TypeDir, Name: guid + "/", Mode: 0755, ModTime: modTime}); err != nil {
			return err
		}
		if err := addBytesToTar(tw, guid+"/pathname", []byte(e.asset), modTime); err != nil {
			return err
		}
		if !e.dir {
			if err := addFileToTar(tw, guid+"/asset", e.path); err != nil {
				return fmt.Errorf("add %s: %w", e.asset, err)
			}
		}
		if hasMeta {
			if err := addFileToTar(tw, guid+"/asset.meta", e.path+".meta"); err != nil {
				return fmt.Errorf("add %s.meta: %w", e.asset, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addBytesToTar(tw *tar.Writer, name string, data []byte, modTime time.Time) error {
	hdr := &tar.Header{Typeflag: tar.TypeReg, Name: name, Mode: 0644, Size: int64(len(data)), ModTime: modTime}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}

func addFileToTar(tw *tar.Writer, name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	hdr := &tar.Header{Typeflag: tar.TypeReg, Name: name, Mode: 0644, Size: info.Size(), ModTime: info.ModTime()}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, file)
	return err
}
