package gateways

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzParseRedirectPage(f *testing.F) {
	f.Add(`<html><body>You are being <a href="https://example.com/x?a=1&amp;b=2">redirected</a>.</body></html>`)
	f.Add(`<html><body>You are being <a href="">redirected</a>.</body></html>`)
	f.Add(`<html><body></body></html>`)
	f.Add("")

	f.Fuzz(func(t *testing.T, body string) {
		url, err := ParseRedirectPage(body)
		if err != nil {
			assert.Empty(t, url, "URL returned alongside error %v", err)
			return
		}

		assert.NotEmpty(t, url, "empty URL without error")
		if !strings.Contains(body, "&amp;amp;") {
			assert.NotContains(t, url, "&amp;", "escaped ampersand left in URL")
		}
	})
}
