package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

const MaxProfileImageSize = 5 << 20

var (
	ErrImageTooLarge     = fmt.Errorf("picture too large: maximum size is %d MB", MaxProfileImageSize>>20)
	ErrImageType         = errors.New("picture must be a JPEG, PNG or WebP image")
	ErrImageExtensionBad = errors.New("picture file name does not match its content")
)

// profileImageTypes maps sniffed content types to the file extensions
// accepted for them. The first one is used for storage keys.
var profileImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

// ProfileImage is an accepted profile picture upload.
type ProfileImage struct {
	ContentType string
	Ext         string
}

// InspectProfileImage checks an upload by its content, not by what the client
// claims, and rewinds file afterwards so it can be stored.
func InspectProfileImage(file io.ReadSeeker, header *multipart.FileHeader) (*ProfileImage, error) {
	if header.Size > MaxProfileImageSize {
		return nil, ErrImageTooLarge
	}

	// http.DetectContentType looks at most at 512 bytes
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read picture: %w", err)
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to rewind picture: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	exts, ok := profileImageTypes[contentType]
	if !ok {
		return nil, ErrImageType
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(exts, ext) {
		return nil, ErrImageExtensionBad
	}

	return &ProfileImage{ContentType: contentType, Ext: exts[0]}, nil
}
