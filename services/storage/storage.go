// Package storage uploads venue images to Cloudinary.
package storage

import (
	"context"
	"fmt"

	"haven/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores and removes venue media.
type StorageService interface {
	UploadVenueImage(ctx context.Context, localFilePath, venueID string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService over Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from the CLOUDINARY_URL in config.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not configured")
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadVenueImage uploads an image into the venue's folder and returns its
// public URL.
func (s *CloudinaryStorage) UploadVenueImage(ctx context.Context, localFilePath, venueID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: "venues/" + venueID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload venue image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL")
	}
	return result.SecureURL, nil
}

// DeleteImage removes an uploaded image by its public ID.
func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
