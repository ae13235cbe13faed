package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smsPayload struct {
	PhoneNumber      string `json:"phoneNumber" validate:"required"`
	VerificationCode string `json:"verificationCode,omitempty" validate:"required,max=12"`
	Internal         string `json:"-" validate:"omitempty,len=2"`
}

func TestStruct_Success(t *testing.T) {
	assert.NoError(t, Struct(smsPayload{PhoneNumber: "+254700000000", VerificationCode: "123456"}))
}

func TestStruct_Failures(t *testing.T) {
	err := Struct(smsPayload{VerificationCode: "1234567890123", Internal: "abc"})
	require.Error(t, err)

	fields, ok := err.(FieldErrors)
	require.True(t, ok)
	require.Len(t, fields, 3)

	assert.Equal(t, "phoneNumber", fields[0].Field)
	assert.Equal(t, "phoneNumber is required", fields[0].String())
	assert.Equal(t, "verificationCode", fields[1].Field)
	assert.Equal(t, "max", fields[1].Tag)
	assert.Equal(t, "Internal", fields[2].Field)
	assert.Contains(t, err.Error(), "verificationCode failed on max=12")
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct("not a struct")
	require.Error(t, err)
	_, ok := err.(FieldErrors)
	assert.False(t, ok)
}

func TestFieldErrors_Empty(t *testing.T) {
	assert.Equal(t, "validation failed", FieldErrors{}.Error())
}
