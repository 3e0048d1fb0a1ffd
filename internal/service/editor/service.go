package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"draftconv/internal/config"
	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
	editorSvc "draftconv/internal/domain/services/editor"
)

// conversionService implements the ConversionService interface
type conversionService struct {
	converter *Converter
	logger    *slog.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(converter *Converter, logger *slog.Logger) editorSvc.ConversionService {
	return &conversionService{
		converter: converter,
		logger:    logger,
	}
}

func (s *conversionService) ToHTML(ctx context.Context, doc document.Document) (string, error) {
	if err := validateDocument(doc); err != nil {
		return "", err
	}

	start := time.Now()
	html, err := s.converter.ToHTML(doc)
	if err != nil {
		var serr *domain.SerializationError
		if errors.As(err, &serr) {
			s.logger.Warn("document could not be serialized",
				"node_type", serr.NodeType,
				"path", serr.Path,
				"reason", serr.Reason,
			)
		}
		return "", err
	}

	s.logger.Debug("document serialized",
		"blocks", len(doc),
		"bytes", len(html),
		"duration", time.Since(start),
	)
	return html, nil
}

func (s *conversionService) ToDocument(ctx context.Context, html string) (document.Document, error) {
	if len(html) > config.MaxHTMLBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("html exceeds %d bytes", config.MaxHTMLBytes),
		}
	}

	start := time.Now()
	doc, err := s.converter.ToDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML: %w", err)
	}

	s.logger.Debug("document deserialized",
		"bytes", len(html),
		"blocks", len(doc),
		"duration", time.Since(start),
	)
	return doc, nil
}

func (s *conversionService) Normalize(ctx context.Context, doc document.Document) (document.Document, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return s.converter.Normalize(doc)
}

func (s *conversionService) ToMarkdown(ctx context.Context, doc document.Document) (string, error) {
	if err := validateDocument(doc); err != nil {
		return "", err
	}
	return s.converter.ToMarkdown(doc)
}

func (s *conversionService) Plugins(ctx context.Context) []editorSvc.PluginInfo {
	plugins := s.converter.Registry().Plugins()
	infos := make([]editorSvc.PluginInfo, 0, len(plugins))
	for _, p := range plugins {
		info := editorSvc.PluginInfo{
			Type: p.Type,
			Kind: p.Kind.String(),
			Void: p.Void,
			Tag:  p.Tag,
		}
		if p.Embed != nil {
			info.Resource = p.Embed.Resource
			info.EmbedType = p.Embed.EmbedType
			for _, f := range p.Embed.Fields {
				info.Fields = append(info.Fields, f.Name)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// validateDocument checks the shape of an incoming tree before any
// conversion: leaves carry only text, elements carry a type, data keys are
// bounded and nesting stays within config.MaxTreeDepth.
func validateDocument(doc document.Document) error {
	if doc == nil {
		return &domain.ValidationError{Message: "document is required"}
	}
	for i, n := range doc {
		if err := validateNode(n, document.Path{i}, 1); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n document.Node, path document.Path, depth int) error {
	if depth > config.MaxTreeDepth {
		return &domain.ValidationError{
			Message: fmt.Sprintf("node at %s: nesting deeper than %d", path, config.MaxTreeDepth),
		}
	}

	if n.IsText() {
		if n.Type != "" || len(n.Children) > 0 || len(n.Data) > 0 {
			return &domain.ValidationError{
				Message: fmt.Sprintf("text node at %s must not have type, data or children", path),
			}
		}
		return nil
	}

	err := validation.ValidateStruct(&n,
		validation.Field(&n.Type, validation.Required, validation.Length(1, 64)),
		validation.Field(&n.Data, validation.By(validateDataKeys)),
	)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("node at %s: %v", path, err)}
	}

	for i, child := range n.Children {
		if err := validateNode(child, path.Child(i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func validateDataKeys(value interface{}) error {
	data, _ := value.(map[string]any)
	for key := range data {
		if err := validation.Validate(key, validation.Required, validation.Length(1, config.MaxDataKeyLength)); err != nil {
			return fmt.Errorf("data key %q: %w", key, err)
		}
	}
	return nil
}
