package utils

import (
	"context" // Context for upload calls
	"io"      // File stream

	"github.com/cloudinary/cloudinary-go/v2"              // Media host client
	"github.com/cloudinary/cloudinary-go/v2/api/uploader" // Upload API
)

// Uploader stores an image on the media host and returns its public URL.
// Handlers depend on this interface so tests can swap in a stub.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}

// CloudinaryUploader is the production Uploader backed by Cloudinary
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary // Configured Cloudinary client
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL
func NewCloudinaryUploader(url string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// UploadImage uploads the file into the given folder and returns the CDN URL
func (u *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
