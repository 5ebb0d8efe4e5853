package common

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// TreeHash digests every regular file under path. The result tags the
// container image so an unchanged tree produces an unchanged image name and
// no redeploy.
func TreeHash(path string) (string, error) {
	h := sha256.New()

	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		io.WriteString(h, p)
		_, err = io.Copy(h, f)
		return err
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil))[:16], nil
}
