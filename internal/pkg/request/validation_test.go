package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reasonBody struct {
	Reason string `binding:"required,trimmedmin=1"`
}

type otpBody struct {
	OTP string `binding:"required,otp"`
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators(), "registering twice is harmless")

	assert.NoError(t, binding.Validator.ValidateStruct(&reasonBody{Reason: " fraud "}))
	assert.Error(t, binding.Validator.ValidateStruct(&reasonBody{Reason: "   "}))

	assert.NoError(t, binding.Validator.ValidateStruct(&otpBody{OTP: "0421"}))
	for _, bad := range []string{"421", "04211", "04a1", "٠١٢٣"} {
		assert.Error(t, binding.Validator.ValidateStruct(&otpBody{OTP: bad}), bad)
	}
}
