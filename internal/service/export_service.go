package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/export"
)

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type IExportService interface {
	Export(ctx context.Context, format string, request *dto.ExportRequest) (*ExportResult, error)
}

type exportService struct {
	registry *export.Registry
	logger   logger.ILogger
}

func NewExportService(registry *export.Registry, log logger.ILogger) IExportService {
	return &exportService{
		registry: registry,
		logger:   log,
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (es *exportService) Export(ctx context.Context, format string, request *dto.ExportRequest) (*ExportResult, error) {
	if strings.TrimSpace(request.Text) == "" {
		return nil, ErrEmptyExport
	}

	encoder, err := es.registry.Lookup(format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, err
	}

	data, err := encoder.Encode(request.Text)
	if err != nil {
		es.logger.Error("EXPORT", "Failed to encode document", map[string]interface{}{
			"format": encoder.Extension(),
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("export %s: %w", encoder.Extension(), err)
	}

	name := strings.Trim(unsafeFilename.ReplaceAllString(request.Filename, "_"), "._")
	if name == "" {
		name = "jarvina-" + time.Now().Format("20060102-150405")
	}
	name = strings.TrimSuffix(name, "."+encoder.Extension())

	es.logger.Info("EXPORT", "Document exported", map[string]interface{}{
		"format": encoder.Extension(),
		"bytes":  len(data),
	})

	return &ExportResult{
		Filename:    name + "." + encoder.Extension(),
		ContentType: encoder.ContentType(),
		Data:        data,
	}, nil
}
