package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Publish hooks
	p := NoopPublishHooks{}
	p.OnCollectStart(ctx, "example.surge.sh")
	p.OnCollectComplete(ctx, "example.surge.sh", 12, 4096, time.Second, nil)
	p.OnUploadStart(ctx, "example.surge.sh", 12, 4096)
	p.OnUploadComplete(ctx, "example.surge.sh", 200, time.Second, nil)
	p.OnDeployEvent(ctx, "example.surge.sh", "progress")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "domains")
	c.OnCacheMiss(ctx, "domains")
	c.OnCacheSet(ctx, "domains", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "surge.surge.sh", "/list")
	h.OnResponse(ctx, "GET", "surge.surge.sh", "/list", 200, time.Second)
	h.OnError(ctx, "GET", "surge.surge.sh", "/list", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Publish().(NoopPublishHooks); !ok {
		t.Error("Publish() should return NoopPublishHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPublish := &testPublishHooks{}
	SetPublishHooks(customPublish)
	if Publish() != customPublish {
		t.Error("SetPublishHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Publish().(NoopPublishHooks); !ok {
		t.Error("Reset() should restore NoopPublishHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPublishHooks{}
	SetPublishHooks(custom)

	// Setting nil should be ignored
	SetPublishHooks(nil)

	if Publish() != custom {
		t.Error("SetPublishHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPublishHooks struct{ NoopPublishHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
