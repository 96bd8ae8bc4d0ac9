package guard_test

import (
	"errors"
	"testing"

	"orderledger/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errCommandNotConstructed := errors.New("AssignParcelCommand must be created via constructor")

	type assignParcel struct {
		parcelID string
		guard    guard.ConstructorGuard
	}

	newAssignParcel := func(parcelID string) (assignParcel, error) {
		if parcelID == "" {
			return assignParcel{}, errors.New("parcel id is required")
		}
		return assignParcel{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		cmd, err := newAssignParcel("PCL-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
		assert.Equal(t, "PCL-1", cmd.parcelID)
	})

	t.Run("literal_bypasses_constructor", func(t *testing.T) {
		cmd := assignParcel{parcelID: "PCL-1"}

		assert.Equal(t, errCommandNotConstructed, cmd.guard.Validate(errCommandNotConstructed))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		cmd, err := newAssignParcel("")

		require.Error(t, err)
		require.Error(t, cmd.guard.Validate(errCommandNotConstructed))
	})
}
