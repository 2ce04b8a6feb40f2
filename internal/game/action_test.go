package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		want   Action
	}{
		{"fold", 0, Fold()},
		{"check", 50, Check()},
		{"call", 0, Call()},
		{"allin", 0, AllIn()},
		{"All-In", 0, AllIn()},
		{"raise", 40, Raise(40)},
		{" RAISE ", 0, Raise(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.name, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAction("shove", 0)
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = ParseAction("raise", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "raise", Raise(10).Name())
	assert.Equal(t, "raise 10", Raise(10).String())
	assert.Equal(t, "allin", AllIn().String())
	assert.Equal(t, 10, Amount(Raise(10)))
	assert.Equal(t, 0, Amount(Call()))
}
