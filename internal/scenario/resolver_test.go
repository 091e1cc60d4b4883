package scenario

import (
	"errors"
	"strconv"
	"testing"

	"github.com/genc-murat/memprobe/internal/cli"
	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configured = []models.Scenario{
	{ID: "a", SizeMb: 1, Iterations: 10},
	{ID: "b", SizeMb: 2, Iterations: 20},
	{ID: "c", SizeMb: 4, Iterations: 30},
}

func TestResolveAdHocSizes(t *testing.T) {
	got, err := Resolve(cli.Options{"sizes": "10,20", "iterations": "5"}, configured)
	require.NoError(t, err)
	assert.Equal(t, []models.Scenario{
		{ID: "ad-hoc-10mb", SizeMb: 10, Iterations: 5},
		{ID: "ad-hoc-20mb", SizeMb: 20, Iterations: 5},
	}, got)
}

func TestResolveAdHocDefaultIterations(t *testing.T) {
	got, err := Resolve(cli.Options{"sizes": " 64 "}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Scenario{ID: "ad-hoc-64mb", SizeMb: 64, Iterations: DefaultIterations}, got[0])
}

func TestResolveSizesWinOverScenarios(t *testing.T) {
	got, err := Resolve(cli.Options{"sizes": "3", "scenarios": "a,b"}, configured)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ad-hoc-3mb", got[0].ID)
}

func TestResolveSelectsByID(t *testing.T) {
	t.Run("keeps requested order and skips unknown ids", func(t *testing.T) {
		got, err := Resolve(cli.Options{"scenarios": "c, missing ,a"}, configured)
		require.NoError(t, err)
		assert.Equal(t, []models.Scenario{configured[2], configured[0]}, got)
	})

	t.Run("a,missing,b", func(t *testing.T) {
		got, err := Resolve(cli.Options{"scenarios": "a,missing,b"}, configured[:2])
		require.NoError(t, err)
		assert.Equal(t, []models.Scenario{configured[0], configured[1]}, got)
	})

	t.Run("nothing matched", func(t *testing.T) {
		_, err := Resolve(cli.Options{"scenarios": "missing"}, configured[:1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrScenarioNotFound))

		var notFound *models.ScenarioNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, []string{"missing"}, notFound.Requested)
	})
}

func TestResolveConfiguredList(t *testing.T) {
	got, err := Resolve(cli.Options{}, configured)
	require.NoError(t, err)
	assert.Equal(t, configured, got)

	got[0].ID = "mutated"
	assert.Equal(t, "a", configured[0].ID, "resolver must not hand out the caller's slice")
}

func TestResolveNoScenarios(t *testing.T) {
	_, err := Resolve(cli.Options{}, []models.Scenario{})
	assert.ErrorIs(t, err, models.ErrNoScenarios)

	_, err = Resolve(nil, nil)
	assert.ErrorIs(t, err, models.ErrNoScenarios)
}

func TestResolveInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		opts cli.Options
		key  string
	}{
		{"non numeric size", cli.Options{"sizes": "10,abc"}, "sizes"},
		{"zero size", cli.Options{"sizes": "0"}, "sizes"},
		{"empty size item", cli.Options{"sizes": "10,,20"}, "sizes"},
		{"bare sizes flag", cli.Options{"sizes": "true"}, "sizes"},
		{"size wraps to zero bytes", cli.Options{"sizes": "1,9007199254740992"}, "sizes"},
		{"size wraps negative", cli.Options{"sizes": "8796093022208"}, "sizes"},
		{"bad iterations", cli.Options{"sizes": "10", "iterations": "x"}, "iterations"},
		{"negative iterations", cli.Options{"sizes": "10", "iterations": "-5"}, "iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts, configured)
			var invalid *models.InvalidArgumentError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.key, invalid.Key)
		})
	}
}

func TestResolveRejectsOverflowingSize(t *testing.T) {
	got, err := Resolve(cli.Options{"sizes": strconv.Itoa(util.MaxSizeMb + 1)}, nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, util.ErrSizeTooLarge)

	got, err = Resolve(cli.Options{"sizes": strconv.Itoa(util.MaxSizeMb)}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, util.MaxSizeMb, got[0].SizeMb)
}
