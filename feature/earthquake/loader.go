package earthquake

import (
	"quake-manager/core/storage"
	"quake-manager/feature/earthquake/country"
	"quake-manager/feature/earthquake/provider"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the earthquake feature, wiring the providers, the
// country resolver and the optional raw payload archive.
func NewFeature(db *gorm.DB, cfg provider.Config, archive storage.Client, bucket string, logger *zap.Logger) *Feature {
	resolver := country.NewDefaultResolver()
	providers := provider.All(cfg, resolver, logger)
	svc := NewService(db, providers, resolver, archive, bucket, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "earthquake"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service, used by CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
