package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, v, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	SetBuildInfo(v, commit, date)
	t.Cleanup(func() {
		SetBuildInfo(oldVersion, oldCommit, oldDate)
	})
}

func TestGetCodenameForVersion(t *testing.T) {
	tests := []struct {
		version  string
		expected string
	}{
		{"0.1.0", "Ember"},
		{"0.3.0", "Lantern"},
		{"0.3.7", "Lantern"},
		{"0.3.0-alpha.1", "Lantern"},
		{"0.3.1+12.abcdef0", "Lantern"},
		{"1.0.0", "Nova"},
		{"0.9.0", ""},
		{"invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetCodenameForVersion(tt.version))
		})
	}
}

func TestDefaultVersionIsValid(t *testing.T) {
	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGetFormattedVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		date     string
		expected string
	}{
		{
			name:     "development build",
			version:  "0.3.0",
			commit:   "unknown",
			date:     "unknown",
			expected: "LuxOS v0.3.0 'Lantern'",
		},
		{
			name:     "release build",
			version:  "0.4.2",
			commit:   "a455fa8c0ffee",
			date:     "2025-07-29",
			expected: "LuxOS v0.4.2 'Beacon', commit a455fa8, built 2025-07-29",
		},
		{
			name:     "unnamed release",
			version:  "0.9.0",
			commit:   "",
			date:     "",
			expected: "LuxOS v0.9.0",
		},
		{
			name:     "invalid version",
			version:  "not-a-version",
			commit:   "unknown",
			date:     "unknown",
			expected: "LuxOS vnot-a-version (invalid version)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			assert.Equal(t, tt.expected, GetFormattedVersion())
		})
	}
}

func TestBuildMetadata(t *testing.T) {
	withBuildInfo(t, "0.3.0+530.a455fa8", "a455fa8", "2025-07-29")

	assert.Equal(t, "0.3.0", GetBaseVersion())
	assert.Equal(t, 530, GetCommitCount())
	assert.False(t, IsPrerelease())

	detailed := GetDetailedVersion()
	assert.True(t, strings.HasPrefix(detailed, "LuxOS v0.3.0+530.a455fa8 'Lantern'"))
	assert.Contains(t, detailed, "Release: Lantern")
	assert.Contains(t, detailed, "Commit Count: 530")
	assert.Contains(t, detailed, "Build Date: 2025-07-29")
}

func TestPrerelease(t *testing.T) {
	withBuildInfo(t, "0.4.0-beta.2", "unknown", "unknown")
	assert.True(t, IsPrerelease())
	assert.Equal(t, 0, GetCommitCount())
	assert.Equal(t, "0.4.0", GetBaseVersion())
}
