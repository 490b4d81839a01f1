package redisstore

import (
	"context"
	"strings"
	"testing"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("dQw4w9WgXcQ", "hello", "en", "80")
	b := Key("dQw4w9WgXcQ", "hello", "en", "80")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "search:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("dQw4w9WgXcQ", "hello", "en", "80")
	variants := []string{
		Key("dQw4w9WgXcQ", "hello", "en", "81"),
		Key("dQw4w9WgXcQ", "hello", "de", "80"),
		Key("dQw4w9WgXcQ", "hellp", "en", "80"),
		Key("dQw4w9WgXcR", "hello", "en", "80"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}

func TestNilResponseCacheIsInert(t *testing.T) {
	var c *ResponseCache
	ctx := context.Background()

	// Must not panic and must behave as a permanent miss.
	c.Set(ctx, "search:abc", []byte("{}"))
	if got := c.Get(ctx, "search:abc"); got != nil {
		t.Errorf("nil cache returned %q", got)
	}
}
