package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveImage stores an uploaded image under dir together with a 320px-wide
// thumbnail, and returns the stored file name. The caller builds the public
// URL from it.
func SaveImage(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "thumb"), os.ModePerm); err != nil {
		return "", err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".gif" {
		ext = ".jpg"
	}
	filename := uuid.NewString() + ext

	if err := imaging.Save(img, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, "thumb", filename)); err != nil {
		return "", err
	}

	return filename, nil
}
