package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUploadedFile stores an applicant document under destDir. kind labels the
// document ("passport", "credentials") and becomes part of the stored name.
func SaveUploadedFile(file *multipart.FileHeader, destDir, kind string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := kind + "-" + time.Now().Format("20060102150405.000") + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored path to its public URL. The static mount serves
// ./public at the site root, so the public/ prefix is stripped.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	p := filepath.ToSlash(filePath)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "public/")
	return "/" + p
}
