package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func newRecordingActions() (*CaseActionService, *[]string, *[]string) {
	var copied, opened []string
	svc := &CaseActionService{
		copyText: func(s string) error { copied = append(copied, s); return nil },
		openURL:  func(s string) error { opened = append(opened, s); return nil },
	}
	return svc, &copied, &opened
}

func TestCaseActionService_CopyCitation(t *testing.T) {
	svc, copied, _ := newRecordingActions()

	err := svc.CopyCitation(context.Background(), &domain.CaseResult{
		Title:    "S v Makwanyane and Another",
		Citation: "[1995] ZACC 3",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"S v Makwanyane and Another, [1995] ZACC 3"}, *copied)
}

func TestCaseActionService_CopyCitation_Errors(t *testing.T) {
	svc, _, _ := newRecordingActions()
	assert.ErrorIs(t, svc.CopyCitation(context.Background(), nil), domain.ErrInvalidInput)

	svc.copyText = func(string) error { return errors.New("no clipboard") }
	err := svc.CopyCitation(context.Background(), &domain.CaseResult{Title: "X"})
	assert.ErrorContains(t, err, "no clipboard")
}

func TestCaseActionService_OpenSource(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantErr error
	}{
		{name: "https link", link: "https://www.saflii.org/za/cases/ZACC/1995/3.html"},
		{name: "http link", link: "http://example.org/case"},
		{name: "placeholder", link: "#", wantErr: domain.ErrNotFound},
		{name: "empty", link: "", wantErr: domain.ErrNotFound},
		{name: "relative", link: "/za/cases/ZACC/1995/3.html", wantErr: domain.ErrNotFound},
		{name: "other scheme", link: "javascript:alert(1)", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, opened := newRecordingActions()

			err := svc.OpenSource(context.Background(), &domain.CaseResult{SourceLink: tt.link})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, *opened)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.link}, *opened)
		})
	}
}

func TestFormatCitation_NoCitation(t *testing.T) {
	assert.Equal(t, "Untitled", FormatCitation(&domain.CaseResult{Title: "Untitled"}))
}

func TestNewCaseActionService(t *testing.T) {
	svc := NewCaseActionService()

	assert.NotNil(t, svc.copyText)
	assert.NotNil(t, svc.openURL)
	assert.ErrorIs(t, svc.OpenSource(context.Background(), nil), domain.ErrInvalidInput)
}
