package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "a@b.co"))
	assert.Nil(t, Email("email", ""), "empty is Required's problem")
	assert.NotNil(t, Email("email", "no-at-sign"))
	assert.NotNil(t, Email("email", "@b.co"))
	assert.NotNil(t, Email("email", "a@nodot"))
	assert.NotNil(t, Email("email", "a b@c.co"))
}

func TestErrsOrNil(t *testing.T) {
	var errs Errs
	assert.NoError(t, errs.OrNil())

	errs = append(errs, ErrField{Field: "email", Msg: "required"})
	err := errs.OrNil()
	assert.Error(t, err)
	assert.Equal(t, "email: required", err.Error())
}
