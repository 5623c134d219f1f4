package config

import (
	"fmt"

	"pdf-uploader/internal/domain"
	"pdf-uploader/internal/infra/supabase"
	"pdf-uploader/internal/metrics"
	"pdf-uploader/internal/service"
	"pdf-uploader/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all application dependencies
type Container struct {
	Config       domain.Config
	Logger       domain.Logger
	Registry     *prometheus.Registry
	Metrics      *metrics.Recorder
	UploadClient domain.UploadClient
	Sessions     *service.SessionRegistry
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithConfig(NewConfig())
}

// NewContainerWithConfig wires the container around an existing configuration
func NewContainerWithConfig(config domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(config.GetLogLevel())

	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)

	client, err := NewUploadClient(config, appLogger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       config,
		Logger:       appLogger,
		Registry:     registry,
		Metrics:      recorder,
		UploadClient: client,
		Sessions:     service.NewSessionRegistry(client, appLogger, recorder),
	}, nil
}

// NewUploadClient builds the upload client selected by UPLOAD_BACKEND
func NewUploadClient(config domain.Config, appLogger domain.Logger) (domain.UploadClient, error) {
	switch config.GetUploadBackend() {
	case domain.BackendAPI, "":
		return service.NewAPIUploadClient(
			config.GetAPIBaseURL(),
			config.GetAPIUploadPath(),
			config.GetAPIFileField(),
			config.GetUploadTimeout(),
			appLogger,
		), nil

	case domain.BackendSupabase:
		storage, err := supabase.NewStorageClient(config, appLogger)
		if err != nil {
			return nil, err
		}
		return service.NewSupabaseUploadClient(storage, config.GetSupabaseBucket(), appLogger), nil

	case domain.BackendS3:
		if config.GetS3Bucket() == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set for the s3 backend")
		}
		client := service.NewS3Client(
			config.GetS3Region(),
			config.GetS3Endpoint(),
			config.GetAWSAccessKeyID(),
			config.GetAWSSecretAccessKey(),
		)
		appLogger.Info("S3 upload client initialized", "bucket", config.GetS3Bucket(), "region", config.GetS3Region())
		return service.NewS3UploadClient(client, config.GetS3Bucket(), config.GetS3Prefix(), appLogger), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, config.GetUploadBackend())
	}
}
