package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/apiresponse/domain"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := New(100)
	require.NoError(t, err)
	return reg
}

func TestNew_RejectsMaxInsideReservedRange(t *testing.T) {
	_, err := New(domain.ReservedMaxCode)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeCodeOutOfBounds))
}

func TestNew_SeedsReservedCodes(t *testing.T) {
	reg := newRegistry(t)

	msg, err := reg.Resolve(domain.CodeOK)
	require.NoError(t, err)
	assert.Equal(t, "OK", msg)
	assert.Equal(t, len(domain.ReservedMessages), reg.Len())
	assert.Equal(t, domain.ApiCode(20), reg.MinUserCode())
	assert.Equal(t, domain.ApiCode(100), reg.MaxCode())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		code    domain.ApiCode
		errCode domain.ErrorCode
	}{
		{"first user code", 20, ""},
		{"max code", 100, ""},
		{"reserved and seeded", domain.CodeOK, domain.ErrCodeDuplicateCode},
		{"reserved and unseeded", 5, domain.ErrCodeDuplicateCode},
		{"above max", 101, domain.ErrCodeCodeOutOfBounds},
		{"negative", -1, domain.ErrCodeCodeOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry(t)
			err := reg.Register(tt.code, "custom")
			if tt.errCode == "" {
				require.NoError(t, err)
				msg, err := reg.Resolve(tt.code)
				require.NoError(t, err)
				assert.Equal(t, "custom", msg)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, tt.errCode), "got %v", err)
		})
	}
}

func TestRegister_UserCodeTwice(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(42, "first"))

	err := reg.Register(42, "second")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeDuplicateCode))

	msg, err := reg.Resolve(42)
	require.NoError(t, err)
	assert.Equal(t, "first", msg)
}

func TestRegisterAll(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.RegisterAll(map[domain.ApiCode]string{
		21: "Order not found",
		22: "Order already paid",
	}))

	entries := reg.Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, domain.ApiCode(22), last.Code)
	assert.False(t, last.Reserved)
	assert.True(t, entries[0].Reserved)

	err := reg.RegisterAll(map[domain.ApiCode]string{30: "ok", 500: "too high"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeCodeOutOfBounds))
}

func TestResolve_Unknown(t *testing.T) {
	reg := newRegistry(t)
	_, err := reg.Resolve(77)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnknownCode))
}

func TestIsInRange(t *testing.T) {
	reg := newRegistry(t)
	for code := domain.ApiCode(0); code <= reg.MaxCode(); code++ {
		assert.True(t, reg.IsInRange(code), "code %d", code)
	}
	assert.False(t, reg.IsInRange(-1))
	assert.False(t, reg.IsInRange(reg.MaxCode()+1))
}
