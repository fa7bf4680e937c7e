// Package portfolio manages the projects artisans show to clients.
package portfolio

import (
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"artisan/pkg/validation"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"go.uber.org/zap"
)

const (
	imageDir       = "project_images"
	codeSuffixLen  = 3
	codeAttempts   = 3
	alphanumerics  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GalleryTypes are the accepted portfolio image formats.
var GalleryTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"} //nolint: gochecknoglobals

// Options controls how gallery images are processed.
type Options struct {
	MaxDimension int
	MaxBytes     int
	JPEGQuality  int
	// Resolver maps stored paths to the public URLs clients echo back.
	Resolver media.Resolver
}

type portfolio struct {
	options Options
	storage storage.Storage
	media   media.Store
}

func New(storage storage.Storage, media media.Store, options Options) Portfolio {
	return &portfolio{options: options, storage: storage, media: media}
}

// NewCode returns a public project code for userID.
func NewCode(userID domain.UserID) string {
	b := make([]byte, codeSuffixLen)
	for i := range b {
		b[i] = alphanumerics[rand.IntN(len(alphanumerics))] //nolint: gosec
	}

	return "p" + userID.String() + string(b)
}

func invalid(format string, args ...any) error {
	return serrors.With(serrors.ErrUnprocessable, format, args...)
}

func tooManyImages() error {
	return invalid("A project can have at most %d images.", domain.MaxPortfolioImages)
}

func (p portfolio) Create(ctx context.Context, userID domain.UserID, req CreateRequest) (*domain.Portfolio, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Gallery) > domain.MaxPortfolioImages {
		return nil, tooManyImages()
	}

	images, err := p.saveAll(ctx, userID, req.Gallery)
	if err != nil {
		return nil, err
	}

	item := domain.Portfolio{
		UserID:      userID,
		Title:       req.Title,
		Role:        req.Role,
		Description: req.Description,
		Images:      images,
	}

	for range codeAttempts {
		item.Code = NewCode(userID)

		var stored *domain.Portfolio
		stored, err = p.storage.StorePortfolio(ctx, item)
		if err == nil {
			logger.Info(ctx, "portfolio project created", zap.String("code", stored.Code))

			return stored, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			break
		}
	}

	p.deleteAll(ctx, images)

	return nil, fmt.Errorf("could not store portfolio: %w", err)
}

// Update replaces the project's details. Images dropped from the project are
// removed from media storage once the change is stored.
func (p portfolio) Update(ctx context.Context, userID domain.UserID, req UpdateRequest) (*domain.Portfolio, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	current, err := p.owned(ctx, userID, req.Code, "update")
	if err != nil {
		return nil, err
	}

	kept := p.keep(current.Images, req.ExistingImages, req.ImagesToDelete)
	if len(kept)+len(req.Gallery) > domain.MaxPortfolioImages {
		return nil, tooManyImages()
	}

	added, err := p.saveAll(ctx, userID, req.Gallery)
	if err != nil {
		return nil, err
	}

	images := append(kept, added...)
	updated, err := p.storage.UpdatePortfolio(ctx, current.ID, storage.PortfolioUpdates{
		Title:       &req.Title,
		Role:        &req.Role,
		Description: &req.Description,
		Images:      images,
	})
	if err != nil {
		p.deleteAll(ctx, added)

		return nil, fmt.Errorf("could not update portfolio: %w", err)
	}
	if updated == nil {
		p.deleteAll(ctx, added)

		return nil, serrors.With(serrors.ErrNotFound, "Portfolio project not found")
	}

	var removed []string
	for _, img := range current.Images {
		if !slices.Contains(images, img) {
			removed = append(removed, img)
		}
	}
	p.deleteAll(ctx, removed)

	return updated, nil
}

func (p portfolio) Delete(ctx context.Context, userID domain.UserID, code string) error {
	if err := validation.Var("portfolio id", code, "notblank"); err != nil {
		return err
	}

	current, err := p.owned(ctx, userID, code, "delete")
	if err != nil {
		return err
	}

	if _, err := p.storage.DeletePortfolio(ctx, current.ID); err != nil {
		return fmt.Errorf("could not delete portfolio: %w", err)
	}
	p.deleteAll(ctx, current.Images)

	logger.Info(ctx, "portfolio project deleted", zap.String("code", code))

	return nil
}

func (p portfolio) owned(ctx context.Context, userID domain.UserID, code, action string) (*domain.Portfolio, error) {
	current, err := p.storage.PortfolioByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("could not get portfolio: %w", err)
	}
	if current == nil {
		return nil, serrors.With(serrors.ErrNotFound, "Portfolio project not found")
	}
	if current.UserID != userID {
		return nil, serrors.With(serrors.ErrForbidden, "you don't have permission to %s this portfolio project", action)
	}

	return current, nil
}

// keep returns the stored images that survive an update. Entries of existing
// and deleted may be stored paths or their public URLs; unknown ones are
// ignored.
func (p portfolio) keep(stored, existing, deleted []string) []string {
	matches := func(list []string, img string) bool {
		return slices.Contains(list, img) || slices.Contains(list, p.options.Resolver.URL(img))
	}

	kept := make([]string, 0, len(stored))
	for _, img := range stored {
		if existing != nil && !matches(existing, img) {
			continue
		}
		if matches(deleted, img) {
			continue
		}
		kept = append(kept, img)
	}

	return kept
}

func (p portfolio) saveAll(ctx context.Context, userID domain.UserID, uploads []media.Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path, err := p.media.Save(ctx, imageDir, upload, media.SaveOptions{
			Prefix:       "portfolio_" + userID.String(),
			MaxDimension: p.options.MaxDimension,
			JPEGQuality:  p.options.JPEGQuality,
			MaxBytes:     p.options.MaxBytes,
			Accept:       GalleryTypes,
		})
		if err != nil {
			p.deleteAll(ctx, paths)

			return nil, fmt.Errorf("could not save gallery image: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (p portfolio) deleteAll(ctx context.Context, paths []string) {
	for _, path := range paths {
		if strings.HasPrefix(path, "http") {
			continue
		}
		if err := p.media.Delete(ctx, path); err != nil {
			logger.Warn(ctx, "could not delete image", zap.String("path", path), zap.Error(err))
		}
	}
}
