package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsZero(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero int", Int(0), true},
		{"nonzero int", Int(1), false},
		{"zero float", Float(0), true},
		{"nonzero float", Float(0.1), false},
		{"false bool", MakeBool(false), true},
		{"true bool", MakeBool(true), false},
		{"unit", MakeUnit(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.IsZero())
		})
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"int", Int(5), 5},
		{"float", Float(2.5), 2.5},
		{"true", MakeBool(true), 1},
		{"false", MakeBool(false), 0},
		{"unit", MakeUnit(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Normalized())
		})
	}
}

func TestBoolToInt(t *testing.T) {
	got := BoolToInt(true)
	assert.Equal(t, Integer, got.Kind())
	assert.Equal(t, int64(1), got.AsInt())

	got = BoolToInt(false)
	assert.Equal(t, Integer, got.Kind())
	assert.Equal(t, int64(0), got.AsInt())
}

func TestStringDump(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(7), "Value(Integer, 7)"},
		{Float(1.5), "Value(Float, 1.5)"},
		{MakeBool(true), "Value(Bool, true)"},
		{MakeUnit(), "Value(Unit)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}
