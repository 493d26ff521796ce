package settings

import (
	"context"
	"math"
	"net/http"

	"go-attendance/internal/shared/apperror"

	"go.uber.org/zap"
)

var (
	errMissingLocation = apperror.New(
		apperror.CodeInvalidInput,
		"Missing location data. All fields are required",
		http.StatusBadRequest,
	)
	errInvalidLocation = apperror.New(
		apperror.CodeInvalidInput,
		"Latitude and longitude must be finite numbers and radius must be a positive integer",
		http.StatusBadRequest,
	)
	errNotConfigured = apperror.New(
		apperror.CodeNotFound,
		"Location settings not found",
		http.StatusNotFound,
	)
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (LocationResponse, error)
	Save(ctx context.Context, req SaveLocationRequest) (LocationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context) (LocationResponse, error) {
	setting, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("get location settings failed", zap.Error(err))
		return LocationResponse{}, err
	}
	if setting == nil {
		return LocationResponse{}, errNotConfigured
	}
	return LocationResponse{
		Latitude:     setting.Latitude,
		Longitude:    setting.Longitude,
		RadiusMeters: setting.RadiusMeters,
	}, nil
}

// Save validates and upserts the office location. An out-of-range radius is
// rejected here, at configuration time, so the geofence check never has to
// deal with a non-positive radius.
func (s *service) Save(ctx context.Context, req SaveLocationRequest) (LocationResponse, error) {
	if req.Latitude == nil || req.Longitude == nil || req.RadiusMeters == nil {
		return LocationResponse{}, errMissingLocation
	}

	lat, lon, radius := *req.Latitude, *req.Longitude, *req.RadiusMeters
	if math.IsInf(lat, 0) || math.IsNaN(lat) ||
		math.IsInf(lon, 0) || math.IsNaN(lon) ||
		radius <= 0 {
		s.logger.Warn("invalid location settings rejected",
			zap.Float64("latitude", lat),
			zap.Float64("longitude", lon),
			zap.Int("radius_meters", radius),
		)
		return LocationResponse{}, errInvalidLocation
	}

	setting := &LocationSetting{
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radius,
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		s.logger.Error("save location settings failed", zap.Error(err))
		return LocationResponse{}, err
	}

	s.logger.Info("location settings saved",
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon),
		zap.Int("radius_meters", radius),
	)
	return LocationResponse{Latitude: lat, Longitude: lon, RadiusMeters: radius}, nil
}
