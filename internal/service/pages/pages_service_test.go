package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/dataset"
)

func TestLanding(t *testing.T) {
	landing := NewService(dataset.MustLoad()).Landing()
	assert.Len(t, landing.Features, 6)
	assert.Equal(t, "Sarah Smith", landing.Testimonials[1].Author)
}

func TestAuthForm(t *testing.T) {
	svc := NewService(dataset.MustLoad())

	form, err := svc.AuthForm("")
	require.NoError(t, err)
	assert.Equal(t, "signin", form.Name)
	assert.Equal(t, "signup", form.SwitchTarget)

	form, err = svc.AuthForm("signup")
	require.NoError(t, err)
	assert.Equal(t, "Confirm password", form.Fields[3].Placeholder)

	_, err = svc.AuthForm("reset")
	assert.ErrorIs(t, err, ErrUnknownForm)
}
