package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/plinth"
)

// ============================================================
// Configuration Parser
// ============================================================

var ErrEmptyBody = errors.New("empty body")

// ParseConfiguration читает дерево конфигурации из JSON.
// Поля не того типа отклоняются здесь, до расчетов.
func ParseConfiguration(r io.Reader) (*models.Configuration, error) {
	var cfg models.Configuration
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBody
		}
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return &cfg, nil
}

// ParsePlinthOptions накладывает переданные опции на значения по умолчанию:
// отсутствующие ключи сохраняют дефолт, явный false/0 его перекрывает.
func ParsePlinthOptions(raw []byte) (models.PlinthOptions, error) {
	opts := plinth.DefaultOptions()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return opts, nil
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("decode plinth options: %w", err)
	}
	return opts, nil
}

// ============================================================
// Combined payloads
// ============================================================

// PlinthRequest: тело запроса {configuration, options}.
type PlinthRequest struct {
	Configuration models.Configuration `json:"configuration"`
	Options       json.RawMessage      `json:"options"`
}

// ParsePlinthRequest читает конфигурацию вместе с опциями цоколя.
func ParsePlinthRequest(body []byte) (*models.Configuration, models.PlinthOptions, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, plinth.DefaultOptions(), ErrEmptyBody
	}

	var req PlinthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, plinth.DefaultOptions(), fmt.Errorf("decode request: %w", err)
	}

	opts, err := ParsePlinthOptions(req.Options)
	if err != nil {
		return nil, opts, err
	}
	return &req.Configuration, opts, nil
}

// ParseRenderRequest как ParsePlinthRequest, но без ключа options
// возвращает nil: фасад рисуется без цоколя.
func ParseRenderRequest(body []byte) (*models.Configuration, *models.PlinthOptions, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, ErrEmptyBody
	}

	var req PlinthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, fmt.Errorf("decode request: %w", err)
	}
	if len(bytes.TrimSpace(req.Options)) == 0 {
		return &req.Configuration, nil, nil
	}

	opts, err := ParsePlinthOptions(req.Options)
	if err != nil {
		return nil, nil, err
	}
	return &req.Configuration, &opts, nil
}
