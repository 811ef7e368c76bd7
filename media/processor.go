package media

import (
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	ThumbnailJpegQuality   = 90
	ThumbnailFileExtension = ".jpg"
)

// Processor handles photo transformations. It relies on a Store
// implementation for saving the results.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// SavePhoto stores an uploaded soldier photo under a generated filename,
// keeping the original extension. Returns the relative path within the store.
func (p *Processor) SavePhoto(originalFilename string, data io.Reader) (string, error) {
	photoUUID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID for photo: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".jpg"
	}
	targetFilename := photoUUID.String() + ext

	savedRelPath, err := p.store.Save(AssetTypePhoto, "", targetFilename, data)
	if err != nil {
		return "", fmt.Errorf("failed to save photo via store: %w", err)
	}

	log.Printf("processor: Saved photo %s at %s", originalFilename, savedRelPath)
	return savedRelPath, nil
}

// GenerateThumbnail creates a thumbnail where the longest side fits maxSize,
// saves the result using the Store and returns the relative path to it.
func (p *Processor) GenerateThumbnail(originalImg image.Image, originalRelPath string, maxSize int) (string, error) {
	origBounds := originalImg.Bounds()
	if origBounds.Dx() <= 0 || origBounds.Dy() <= 0 {
		return "", fmt.Errorf("invalid original image dimensions: %dx%d", origBounds.Dx(), origBounds.Dy())
	}

	thumb := imaging.Fit(originalImg, maxSize, maxSize, imaging.Lanczos)

	reader, writer := io.Pipe()
	go func() {
		defer writer.Close()
		err := imaging.Encode(writer, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailJpegQuality))
		if err != nil {
			log.Printf("processor: Failed to encode thumbnail: %v", err)
			writer.CloseWithError(fmt.Errorf("thumbnail encoding failed: %w", err))
		}
	}()

	thumbUUID, err := uuid.NewRandom()
	if err != nil {
		reader.Close()
		return "", fmt.Errorf("failed to generate UUID for thumbnail: %w", err)
	}
	targetFilename := thumbUUID.String() + ThumbnailFileExtension

	savedRelPath, err := p.store.Save(AssetTypeThumbnail, "", targetFilename, reader)
	// reader is automatically closed by io.Copy inside Save, or by the encoding goroutine on error

	if err != nil {
		return "", fmt.Errorf("failed to save thumbnail via store: %w", err)
	}

	log.Printf("processor: Generated and saved thumbnail for %s at %s", originalRelPath, savedRelPath)
	return savedRelPath, nil
}
