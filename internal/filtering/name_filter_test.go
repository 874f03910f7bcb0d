package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFilter_ShouldInclude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		filter     NameFilter
		server     string
		want       bool
		wantReason string
	}{
		{
			name:       "no patterns",
			server:     "github",
			want:       true,
			wantReason: "no name filters specified",
		},
		{
			name:       "include match",
			filter:     NameFilter{Include: []string{"git*"}},
			server:     "github",
			want:       true,
			wantReason: "included by pattern 'git*'",
		},
		{
			name:       "include miss",
			filter:     NameFilter{Include: []string{"git*"}},
			server:     "postgres",
			want:       false,
			wantReason: "no match found in include patterns [git*]",
		},
		{
			name:       "exclude wins over include",
			filter:     NameFilter{Include: []string{"*"}, Exclude: []string{"*-dev"}},
			server:     "github-dev",
			want:       false,
			wantReason: "excluded by pattern '*-dev'",
		},
		{
			name:       "exclude only, no match",
			filter:     NameFilter{Exclude: []string{"*-dev"}},
			server:     "github",
			want:       true,
			wantReason: "no match in exclude patterns [*-dev]",
		},
		{
			name:   "star matches across slashes",
			filter: NameFilter{Include: []string{"io.github.*"}},
			server: "io.github.user/server",
			want:   true,
		},
		{
			name:   "character class",
			filter: NameFilter{Include: []string{"server[1-3]"}},
			server: "server4",
			want:   false,
		},
		{
			name:       "invalid pattern excludes",
			filter:     NameFilter{Include: []string{"[abc"}},
			server:     "a",
			want:       false,
			wantReason: "invalid include pattern '[abc'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, reason := tt.filter.ShouldInclude(tt.server)
			assert.Equal(t, tt.want, got)
			if tt.wantReason != "" {
				assert.Contains(t, reason, tt.wantReason)
			}
		})
	}
}

func TestNameFilter_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NameFilter{}.Validate())
	assert.NoError(t, NameFilter{Include: []string{"a*", "b?"}, Exclude: []string{"[xy]z"}}.Validate())

	err := NameFilter{Include: []string{"[abc"}, Exclude: []string{"ok", "[z"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include pattern '[abc'")
	assert.Contains(t, err.Error(), "exclude pattern '[z'")
}

func TestNameFilter_IsEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, NameFilter{}.IsEmpty())
	assert.False(t, NameFilter{Exclude: []string{"x"}}.IsEmpty())
}
