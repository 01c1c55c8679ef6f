package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wardrobe-planner/internal/builds/models"
	"wardrobe-planner/internal/planner/report"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("not found")

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	// фиксированная ширина дробной части, чтобы строки сортировались как время
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init применяет миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Create сохраняет новую сборку. ID и даты проставляются здесь.
func (r *Repository) Create(ctx context.Context, b *models.Build) error {
	b.ID = uuid.NewString()
	b.CreatedAt = r.timestamp()
	b.UpdatedAt = b.CreatedAt

	blobs, err := encodeBlobs(b)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO builds (id, name, width, height, depth, configuration, plinth_options,
                            dimension_validation, cut_list, plinth, costs, valid, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		b.ID, b.Name,
		b.Configuration.Width, b.Configuration.Height, b.Configuration.Depth,
		blobs.configuration, blobs.plinthOptions,
		blobs.validation, blobs.cutList, blobs.plinth, blobs.costs,
		b.Valid, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Build, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, configuration, plinth_options, dimension_validation, cut_list,
               plinth, costs, valid, created_at, updated_at
        FROM builds
        WHERE id = ?
    `, id)

	var (
		b     models.Build
		blobs buildBlobs
	)
	err := row.Scan(&b.ID, &b.Name, &blobs.configuration, &blobs.plinthOptions, &blobs.validation,
		&blobs.cutList, &blobs.plinth, &blobs.costs, &b.Valid, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := blobs.decode(&b); err != nil {
		return nil, fmt.Errorf("build %s: %w", id, err)
	}
	return &b, nil
}

// List возвращает сборки от новых к старым. limit приводится к [1, MaxListLimit].
func (r *Repository) List(ctx context.Context, limit int) ([]models.Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, valid, width, height, depth, created_at, updated_at
        FROM builds
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.Summary, 0)
	for rows.Next() {
		var s models.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Valid, &s.Width, &s.Height, &s.Depth, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// UpdateReport перезаписывает результаты расчетов сборки.
func (r *Repository) UpdateReport(ctx context.Context, id string, rep report.Report) (string, error) {
	b := models.Build{Report: rep}
	blobs, err := encodeBlobs(&b)
	if err != nil {
		return "", err
	}

	updatedAt := r.timestamp()
	res, err := r.db.ExecContext(ctx, `
        UPDATE builds
        SET dimension_validation = ?, cut_list = ?, plinth = ?, costs = ?, valid = ?, updated_at = ?
        WHERE id = ?
    `, blobs.validation, blobs.cutList, blobs.plinth, blobs.costs, rep.Validation.Valid, updatedAt, id)
	if err != nil {
		return "", fmt.Errorf("update build: %w", err)
	}
	if err := expectRow(res); err != nil {
		return "", err
	}
	return updatedAt, nil
}

// Delete удаляет сборку вместе с записями о ее файлах.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM build_artifacts WHERE build_id = ?`, id); err != nil {
		return fmt.Errorf("delete artifacts: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete build: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================
// Artifacts
// ============================================================

// SaveArtifact запоминает выгрузку. Повторная выгрузка того же формата
// заменяет запись.
func (r *Repository) SaveArtifact(ctx context.Context, a *models.Artifact) error {
	a.CreatedAt = r.timestamp()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO build_artifacts (build_id, format, object_key, content_type, size, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (build_id, format) DO UPDATE SET
            object_key = excluded.object_key,
            content_type = excluded.content_type,
            size = excluded.size,
            created_at = excluded.created_at
    `, a.BuildID, a.Format, a.Key, a.ContentType, a.Size, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

// GetArtifact возвращает запись о выгрузке заданного формата.
func (r *Repository) GetArtifact(ctx context.Context, buildID, format string) (*models.Artifact, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT build_id, format, object_key, content_type, size, created_at
        FROM build_artifacts
        WHERE build_id = ? AND format = ?
    `, buildID, format)

	var a models.Artifact
	if err := row.Scan(&a.BuildID, &a.Format, &a.Key, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	return &a, nil
}

func (r *Repository) ListArtifacts(ctx context.Context, buildID string) ([]models.Artifact, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT build_id, format, object_key, content_type, size, created_at
        FROM build_artifacts
        WHERE build_id = ?
        ORDER BY format
    `, buildID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := make([]models.Artifact, 0)
	for rows.Next() {
		var a models.Artifact
		if err := rows.Scan(&a.BuildID, &a.Format, &a.Key, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// ============================================================
// Blobs
// ============================================================

type buildBlobs struct {
	configuration string
	plinthOptions string
	validation    string
	cutList       string
	plinth        string
	costs         string
}

func encodeBlobs(b *models.Build) (buildBlobs, error) {
	var blobs buildBlobs
	fields := []struct {
		target *string
		value  any
	}{
		{&blobs.configuration, b.Configuration},
		{&blobs.plinthOptions, b.PlinthOptions},
		{&blobs.validation, b.Validation},
		{&blobs.cutList, b.CutList},
		{&blobs.plinth, b.Plinth},
		{&blobs.costs, b.Costs},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.value)
		if err != nil {
			return blobs, fmt.Errorf("encode build: %w", err)
		}
		*f.target = string(data)
	}
	return blobs, nil
}

func (blobs buildBlobs) decode(b *models.Build) error {
	fields := []struct {
		data   string
		target any
	}{
		{blobs.configuration, &b.Configuration},
		{blobs.plinthOptions, &b.PlinthOptions},
		{blobs.validation, &b.Validation},
		{blobs.cutList, &b.CutList},
		{blobs.plinth, &b.Plinth},
		{blobs.costs, &b.Costs},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.data), f.target); err != nil {
			return fmt.Errorf("decode blob: %w", err)
		}
	}
	return nil
}

// ============================================================
// Helpers
// ============================================================

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(timeLayout)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
