package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// ---- ValidateTimeRange -----------------------------------------------------

func TestValidateTimeRange_BothAbsent(t *testing.T) {
	require.NoError(t, domain.ValidateTimeRange(nil, nil))
}

func TestValidateTimeRange_OnlyOneSideSet(t *testing.T) {
	assert.ErrorIs(t, domain.ValidateTimeRange(nil, ptr(120)), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateTimeRange(ptr(60), nil), domain.ErrValidation)

	err := domain.ValidateTimeRange(ptr(60), nil)
	assert.Contains(t, domain.ValidationMessage(err), "both set or both absent")
}

func TestValidateTimeRange_AcceptsEveryValidPair(t *testing.T) {
	// Exhaustive over a coarse grid; boundaries are covered separately below.
	for s := 0; s <= domain.MinutesPerDay; s += 37 {
		for e := s + 1; e <= domain.MinutesPerDay; e += 53 {
			require.NoError(t, domain.ValidateTimeRange(ptr(s), ptr(e)), "(%d,%d)", s, e)
		}
	}
	require.NoError(t, domain.ValidateTimeRange(ptr(0), ptr(1)))
	require.NoError(t, domain.ValidateTimeRange(ptr(540), ptr(600)))
	require.NoError(t, domain.ValidateTimeRange(ptr(1439), ptr(1440)))
}

func TestValidateTimeRange_Rejects(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 10},
		{"end past midnight", 0, 1441},
		{"both at 1440", 1440, 1440},
		{"empty range", 600, 600},
		{"reversed range", 700, 650},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateTimeRange(ptr(tc.start), ptr(tc.end))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- ValidateCost ----------------------------------------------------------

func TestValidateCost(t *testing.T) {
	require.NoError(t, domain.ValidateCost(nil))
	require.NoError(t, domain.ValidateCost(ptr(0.0)))
	require.NoError(t, domain.ValidateCost(ptr(12.34)))
	require.NoError(t, domain.ValidateCost(ptr(1_000_000.0)))

	assert.ErrorIs(t, domain.ValidateCost(ptr(-0.01)), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateCost(ptr(1_000_000.01)), domain.ErrValidation)
}

func TestValidateCost_RejectsNonNumbers(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := domain.ValidateCost(ptr(v))
		require.Error(t, err, v)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "cost must be a number", domain.ValidationMessage(err))
	}
	// NaN fails even when no maximum would catch it.
	assert.ErrorIs(t, domain.ValidateCost(ptr(math.NaN()), domain.WithMaxReasonable(math.Inf(1))), domain.ErrValidation)
}

func TestValidateCost_OverriddenThreshold(t *testing.T) {
	require.NoError(t, domain.ValidateCost(ptr(5_000_000.0), domain.WithMaxReasonable(10_000_000)))
	assert.ErrorIs(t, domain.ValidateCost(ptr(51.0), domain.WithMaxReasonable(50)), domain.ErrValidation)
}

// ---- ValidateDateString ----------------------------------------------------

func TestValidateDateString_Accepts(t *testing.T) {
	for _, s := range []string{"2026-05-23", "2000-02-29", "2024-12-31", "1999-01-01"} {
		assert.NoError(t, domain.ValidateDateString(s), s)
	}
}

func TestValidateDateString_Rejects(t *testing.T) {
	for _, s := range []string{
		"2026-02-29", // not a leap year
		"1900-02-29", // century, not a leap year
		"2026-13-01",
		"2026-00-10",
		"2026-04-31",
		"2026-05-00",
		"0000-01-01",
		"2026-5-23",
		"26-05-23",
		"2026/05/23",
		"2026-05-23T00:00:00Z",
		" 2026-05-23",
		"",
		"abcd-ef-gh",
	} {
		assert.ErrorIs(t, domain.ValidateDateString(s), domain.ErrValidation, s)
	}
}

// ---- text / ids / tags -----------------------------------------------------

func TestRequireText(t *testing.T) {
	got, err := domain.RequireText("title", "  Museum  ")
	require.NoError(t, err)
	assert.Equal(t, "Museum", got)

	_, err = domain.RequireText("title", " \t\n")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "title must not be blank", domain.ValidationMessage(err))
}

func TestValidateID(t *testing.T) {
	require.NoError(t, domain.ValidateID("day_id", 1))
	assert.ErrorIs(t, domain.ValidateID("day_id", 0), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateID("day_id", -4), domain.ErrValidation)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"food", "rome"}, domain.NormalizeTags([]string{" food", "", "  ", "rome "}))
	assert.Empty(t, domain.NormalizeTags(nil))
}

// ---- ValidationError -------------------------------------------------------

func TestValidationError_WrapsSentinel(t *testing.T) {
	err := domain.Invalidf("bad %s", "thing")
	wrapped := errors.Join(errors.New("context"), err)

	assert.ErrorIs(t, wrapped, domain.ErrValidation)
	assert.Equal(t, "bad thing", domain.ValidationMessage(wrapped))
	assert.Equal(t, "validation error: bad thing", err.Error())
}
