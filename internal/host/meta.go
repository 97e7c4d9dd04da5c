// internal/host/meta.go
package host

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ErrNoGUID indicates a .meta file carries no guid line.
var ErrNoGUID = errors.New("meta file has no guid")

// NewGUID returns a random asset GUID in Unity's 32 hex digit form.
func NewGUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// DerivedGUID returns a stable GUID for an asset path that has no .meta file.
func DerivedGUID(assetPath string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(assetPath))
	return hex.EncodeToString(u[:])
}

// ParseMetaGUID reads the guid from a Unity .meta file.
func ParseMetaGUID(metaPath string) (string, error) {
	f, err := os.Open(metaPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "guid" {
			continue
		}
		if guid := strings.TrimSpace(value); guid != "" {
			return guid, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", metaPath, err)
	}
	return "", fmt.Errorf("%w: %s", ErrNoGUID, metaPath)
}

func metaContent(guid string, folder bool) string {
	var b strings.Builder
	b.WriteString("fileFormatVersion: 2\n")
	b.WriteString("guid: " + guid + "\n")
	if folder {
		b.WriteString("folderAsset: yes\n")
	}
	b.WriteString("DefaultImporter:\n")
	b.WriteString("  externalObjects: {}\n")
	b.WriteString("  userData: \n")
	b.WriteString("  assetBundleName: \n")
	b.WriteString("  assetBundleVariant: \n")
	return b.String()
}
