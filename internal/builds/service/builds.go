package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"wardrobe-planner/internal/builds/models"
	"wardrobe-planner/internal/builds/repository"
	"wardrobe-planner/internal/planner/export"
	"wardrobe-planner/internal/planner/mapper"
	planner "wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/report"
)

// ============================================================
// Builds Service
// ============================================================

const FormatSVG = "svg"

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotRenderable     = errors.New("configuration cannot be rendered")
)

var artifactNames = map[string]string{
	export.FormatCSV:  "cut-list.csv",
	export.FormatXLSX: "cut-list.xlsx",
	FormatSVG:         "elevation.svg",
}

type Service struct {
	repo     *repository.Repository
	reports  *report.Builder
	store    ArtifactStore
	renderer *mapper.Renderer
}

func NewService(repo *repository.Repository, reports *report.Builder, store ArtifactStore) *Service {
	return &Service{
		repo:     repo,
		reports:  reports,
		store:    store,
		renderer: mapper.NewRenderer(),
	}
}

// Create считает отчет по конфигурации и сохраняет сборку.
// Невалидная конфигурация тоже сохраняется, с valid=false.
func (s *Service) Create(ctx context.Context, name string, cfg planner.Configuration, opts planner.PlinthOptions) (*models.Build, error) {
	rep := s.reports.Build(cfg, opts)
	b := &models.Build{
		Name:          name,
		Configuration: cfg,
		PlinthOptions: opts,
		Report:        rep,
		Valid:         rep.Validation.Valid,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Printf("[BUILDS] Created build %s (%q): valid=%t errors=%d warnings=%d",
		b.ID, b.Name, b.Valid, len(rep.Validation.Errors), len(rep.Validation.Warnings))
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Build, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]models.Summary, error) {
	return s.repo.List(ctx, limit)
}

// Revalidate заново прогоняет расчеты по сохраненной конфигурации
// с текущим справочником материалов.
func (s *Service) Revalidate(ctx context.Context, id string) (*models.Build, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rep := s.reports.Build(b.Configuration, b.PlinthOptions)
	updatedAt, err := s.repo.UpdateReport(ctx, id, rep)
	if err != nil {
		return nil, err
	}

	wasValid := b.Valid
	b.Report = rep
	b.Valid = rep.Validation.Valid
	b.UpdatedAt = updatedAt

	log.Printf("[BUILDS] Revalidated build %s: valid %t -> %t", id, wasValid, b.Valid)
	return b, nil
}

// Delete удаляет сборку и ее файлы. Ошибки хранилища только логируются.
func (s *Service) Delete(ctx context.Context, id string) error {
	artifacts, err := s.repo.ListArtifacts(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, a := range artifacts {
		if err := s.store.Delete(ctx, a.Key); err != nil {
			log.Printf("[BUILDS] Failed to remove artifact %s: %v", a.Key, err)
		}
	}
	log.Printf("[BUILDS] Deleted build %s (%d artifacts)", id, len(artifacts))
	return nil
}

// Artifacts возвращает сохраненные выгрузки сборки.
func (s *Service) Artifacts(ctx context.Context, id string) ([]models.Artifact, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListArtifacts(ctx, id)
}

// ============================================================
// Export
// ============================================================

// Export строит файл сборки (csv, xlsx или svg), кладет его в хранилище
// и возвращает содержимое.
func (s *Service) Export(ctx context.Context, id, format string) (*models.Artifact, []byte, error) {
	filename, ok := artifactNames[format]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.render(b, format)
	if err != nil {
		return nil, nil, err
	}

	artifact := &models.Artifact{
		BuildID:     b.ID,
		Format:      format,
		Key:         ArtifactKey(b.ID, filename),
		ContentType: contentType(format),
		Size:        len(data),
	}
	if err := s.store.Put(ctx, artifact.Key, data, artifact.ContentType); err != nil {
		return nil, nil, fmt.Errorf("store artifact: %w", err)
	}
	if err := s.repo.SaveArtifact(ctx, artifact); err != nil {
		return nil, nil, err
	}

	log.Printf("[BUILDS] Exported build %s as %s (%d bytes)", b.ID, format, len(data))
	return artifact, data, nil
}

// Download отдает ранее сохраненную выгрузку из хранилища, не пересчитывая ее.
func (s *Service) Download(ctx context.Context, id, format string) (*models.Artifact, []byte, error) {
	if _, ok := artifactNames[format]; !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, nil, err
	}

	artifact, err := s.repo.GetArtifact(ctx, id, format)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, format)
		}
		return nil, nil, err
	}

	data, err := s.store.Get(ctx, artifact.Key)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[BUILDS] Downloaded %s of build %s (%d bytes)", format, id, len(data))
	return artifact, data, nil
}

// Filename возвращает имя файла выгрузки для формата.
func Filename(format string) string {
	return artifactNames[format]
}

func (s *Service) render(b *models.Build, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		svg, err := s.renderer.Render(&b.Configuration, &b.PlinthOptions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotRenderable, err)
		}
		return []byte(svg), nil

	case export.FormatXLSX:
		f, err := export.XLSX(b.CutList, &b.Costs)
		if err != nil {
			return nil, fmt.Errorf("build xlsx: %w", err)
		}
		defer f.Close()

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return nil, fmt.Errorf("write xlsx: %w", err)
		}
		return buf.Bytes(), nil

	default:
		var buf bytes.Buffer
		if err := export.CSV(&buf, b.CutList); err != nil {
			return nil, fmt.Errorf("build csv: %w", err)
		}
		return buf.Bytes(), nil
	}
}

func contentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return export.ContentType(format)
}
