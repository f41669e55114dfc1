package storage

import (
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestRedisKV(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	kv, err := Open(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("Open(redis) failed: %v", err)
	}
	defer kv.Close()

	if _, ok := kv.(*Redis); !ok {
		t.Fatalf("Open(redis) = %T, expected *Redis", kv)
	}

	exerciseKV(t, kv)
}

func TestRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := OpenRedis("redis://" + addr + "/0"); err == nil {
		t.Error("OpenRedis() against a closed server should fail")
	}
}
