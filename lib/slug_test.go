package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wearables":             "wearables",
		"iPhone 15 Pro - 256GB": "iphone-15-pro-256gb",
		"Smart Home":            "smart-home",
		"  Audio & Sound  ":     "audio-and-sound",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
