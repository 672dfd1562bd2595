package natskv_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/Strob0t/animalfarm/internal/adapter/natskv"
	"github.com/Strob0t/animalfarm/internal/port/cache"
	"github.com/Strob0t/animalfarm/internal/port/cache/cachetest"
)

var _ cache.Cache = (*natskv.Cache)(nil)

// Requires a JetStream-enabled server at NATS_URL.
func TestCompliance(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}

	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bucket := "ANIMALFARM_TEST_KV"
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: bucket, TTL: time.Minute})
	if err != nil {
		t.Fatalf("create bucket: %v", err)
	}
	defer func() { _ = js.DeleteKeyValue(context.Background(), bucket) }()

	c := natskv.New(kv)
	if c.Bucket() != bucket {
		t.Fatalf("expected bucket %s, got %s", bucket, c.Bucket())
	}
	cachetest.Run(t, c, nil)
}
