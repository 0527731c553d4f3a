package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveProfilePicture copies an uploaded file into dir under a generated
// name and returns the relative URL under which the file is later served
// (e.g. "/uploads/profile-pictures/<name>").  The original filename is
// discarded except for its extension so user input never reaches the
// filesystem path.
func SaveProfilePicture(dir string, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join("/", filepath.ToSlash(dir), name), nil
}
