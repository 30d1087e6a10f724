package mcp

import (
	"context"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// mockRobotsService is a mock implementation of driving.RobotsService.
type mockRobotsService struct {
	outcome  *domain.MatchOutcome
	results  []domain.BatchResult
	parsed   *domain.ParseResult
	files    map[string][]byte
	agentErr error
	info     domain.EngineInfo
	err      error

	// lastBatch records the most recent CheckBatch request.
	lastBatch domain.BatchRequest
}

func (m *mockRobotsService) Check(_ context.Context, _ domain.CheckRequest) (*domain.MatchOutcome, error) {
	return m.outcome, m.err
}

func (m *mockRobotsService) CheckBatch(_ context.Context, req domain.BatchRequest) ([]domain.BatchResult, error) {
	m.lastBatch = req
	return m.results, m.err
}

func (m *mockRobotsService) Parse(_ context.Context, _ []byte) (*domain.ParseResult, error) {
	return m.parsed, m.err
}

func (m *mockRobotsService) Lint(_ context.Context, _ []byte) ([]domain.Diagnostic, error) {
	if m.parsed == nil {
		return nil, m.err
	}
	return m.parsed.Diagnostics, m.err
}

func (m *mockRobotsService) Load(_ context.Context, location string) ([]byte, error) {
	body, ok := m.files[location]
	if !ok {
		return nil, domain.ErrSourceUnavailable
	}
	return body, nil
}

func (m *mockRobotsService) Watch(_ context.Context, _ string) (<-chan domain.SourceUpdate, error) {
	return nil, m.err
}

func (m *mockRobotsService) ValidateUserAgent(_ string) error {
	return m.agentErr
}

func (m *mockRobotsService) Info() domain.EngineInfo {
	return m.info
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
