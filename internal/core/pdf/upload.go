package pdf

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const UPLOAD_FILE_NAME = "upload.pdf"

var (
	ErrEmptyUpload    = errors.New("uploaded file is empty")
	ErrNotPDF         = errors.New("uploaded file is not a pdf document")
	ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")
)

var pdfMagic = []byte("%PDF-")

type UploadedFile struct {
	Path     string
	Checksum string
	Size     int64
}

// SaveUpload copies the upload into dir, checking the pdf header and size limit.
// The sha256 of the content is computed while copying.
func SaveUpload(r io.Reader, dir string, max_bytes int64) (*UploadedFile, error) {
	reader := bufio.NewReader(r)
	head, err := reader.Peek(len(pdfMagic))
	if len(head) == 0 {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		return nil, ErrEmptyUpload
	}
	if !bytes.Equal(head, pdfMagic) {
		return nil, ErrNotPDF
	}

	path := filepath.Join(dir, UPLOAD_FILE_NAME)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	hash := sha256.New()
	var src io.Reader = reader
	if max_bytes > 0 {
		// one extra byte tells an exact-limit upload from an oversized one
		src = io.LimitReader(reader, max_bytes+1)
	}

	size, err := io.Copy(io.MultiWriter(file, hash), src)
	if err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if max_bytes > 0 && size > max_bytes {
		return nil, ErrUploadTooLarge
	}

	return &UploadedFile{
		Path:     path,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
		Size:     size,
	}, nil
}
