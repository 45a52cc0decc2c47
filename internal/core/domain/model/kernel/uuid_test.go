package kernel_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const branchIDText = "7d1c2a9e-3b4f-4e61-9a0c-5f2b8d6e1a42"

func TestNewUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, a.Validate())
	assert.False(t, a.IsEqual(b))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, a.String())
}

func TestUUIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "path parameter", input: branchIDText},
		{name: "upper case header", input: "7D1C2A9E-3B4F-4E61-9A0C-5F2B8D6E1A42"},
		{name: "empty", input: "", wantErr: true},
		{name: "topic name", input: "branch-" + branchIDText, wantErr: true},
		{name: "truncated", input: branchIDText[:23], wantErr: true},
		{name: "bad hex", input: "zd1c2a9e-3b4f-4e61-9a0c-5f2b8d6e1a42", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid UUID format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, branchIDText, id.String())
		})
	}
}

func TestUUIDFromString_NilParsesButIsInvalid(t *testing.T) {
	id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("column value round trips", func(t *testing.T) {
		want := kernel.NewUUID()
		raw := want.Bytes()

		got, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, want.IsEqual(got))
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x7d, 0x1c, 0x2a})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID
	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.True(t, id.IsEqual(kernel.UUID{}))
}

func TestUUID_MapKey(t *testing.T) {
	a, err := kernel.UUIDFromString(branchIDText)
	require.NoError(t, err)
	b, err := kernel.UUIDFromString(branchIDText)
	require.NoError(t, err)

	expired := map[kernel.UUID]struct{}{a: {}}
	_, ok := expired[b]
	assert.True(t, ok, "identifiers parsed separately must address the same branch")
}

func TestUUID_BytesIsACopy(t *testing.T) {
	id := kernel.NewUUID()
	before := id.String()

	raw := id.Bytes()
	raw[0] ^= 0xFF

	assert.Equal(t, before, id.String())
}

func TestUUID_Ptr(t *testing.T) {
	id := kernel.NewUUID()

	p := id.Ptr()
	require.NotNil(t, p)
	assert.True(t, p.IsEqual(id))

	*p = kernel.NewUUID()
	assert.False(t, p.IsEqual(id), "Ptr must not alias the receiver")
}

func TestOptionalUUIDFromString(t *testing.T) {
	id, err := kernel.OptionalUUIDFromString("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = kernel.OptionalUUIDFromString(branchIDText)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, branchIDText, id.String())

	_, err = kernel.OptionalUUIDFromString("branch-1")
	require.Error(t, err)
}
