package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"annual checkup", "Annual checkup"},
		{"ANNUAL CHECKUP", "Annual checkup"},
		{"knee Pain Follow-Up", "Knee pain follow-up"},
		{"x", "X"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SentenceCase(tc.in))
	}
}

func TestCapitalizeWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john smith", "John Smith"},
		{"MARY JONES.", "Mary Jones"},
		{"  grace hopper  ", "Grace Hopper"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CapitalizeWords(tc.in))
	}
}
