package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureError(t *testing.T) {
	err := NewMeasureError("bigramDise")

	assert.Equal(t, ErrorTypeMeasure, err.Type)
	assert.Equal(t, "bigramDise", err.Name)
	assert.True(t, errors.Is(err, ErrUnknownMeasure))
	assert.Equal(t, `measure "bigramDise": unknown measure`, err.Error())
}

func TestFeatureLengthError(t *testing.T) {
	err := NewFeatureLengthError("pos_tags", 4, 11, 10)

	assert.Equal(t, ErrorTypeFeatureLength, err.Type)
	assert.Equal(t, 11, err.Declared)
	assert.Equal(t, 10, err.Actual)
	assert.Equal(t, "feature length mismatch in block pos_tags at row 4: declared 11, got 10", err.Error())

	var target *FeatureLengthError
	assert.True(t, errors.As(fmtWrap(err), &target))
	assert.Equal(t, 4, target.Row)
}

func TestInputError(t *testing.T) {
	underlying := errors.New("expected 7 fields, got 5")
	err := NewInputError("pairs.tsv", 12, underlying)

	assert.Equal(t, ErrorTypeInput, err.Type)
	assert.True(t, errors.Is(err, underlying))
	assert.Equal(t, "input error at pairs.tsv:12: expected 7 fields, got 5", err.Error())

	noLine := NewInputError("pairs.tsv", 0, underlying)
	assert.Equal(t, "input error in pairs.tsv: expected 7 fields, got 5", noLine.Error())
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be positive")
	err := NewConfigError("languages.count", "0", underlying)

	assert.True(t, errors.Is(err, underlying))
	assert.Equal(t, "config error for field languages.count (value 0): must be positive", err.Error())
}

func TestMultiError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	multi := NewMultiError([]error{err1, nil, err2})
	assert.Len(t, multi.Errors, 2)
	assert.True(t, errors.Is(multi, err2))
	assert.Equal(t, "2 errors: [error 1 error 2]", multi.Error())

	single := NewMultiError([]error{err1})
	assert.Equal(t, "error 1", single.Error())

	empty := NewMultiError([]error{nil})
	assert.Equal(t, "no errors", empty.Error())
	assert.NoError(t, empty.ErrorOrNil())
	assert.Error(t, multi.ErrorOrNil())
}

func fmtWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
