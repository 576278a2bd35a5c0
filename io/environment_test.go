package io

import (
	"bytes"
	"context"
	"image"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

func encodeTestHDR(t *testing.T) []byte {
	t.Helper()
	img := hdr.NewRGB(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, hdrcolor.RGB{R: 4, G: 2, B: 1})
	img.Set(3, 1, hdrcolor.RGB{R: 0.5, G: 0.25, B: 0.125})

	var buf bytes.Buffer
	if err := rgbe.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeEnvironment(t *testing.T) {
	env, err := DecodeEnvironment("test.hdr", bytes.NewReader(encodeTestHDR(t)))
	if err != nil {
		t.Fatalf("DecodeEnvironment: %v", err)
	}
	if env.Width != 4 || env.Height != 2 || len(env.Pixels) != 4*2*3 {
		t.Fatalf("unexpected size %dx%d (%d floats)", env.Width, env.Height, len(env.Pixels))
	}

	// RGBE keeps an 8-bit mantissa per channel.
	check := func(i int, want float32) {
		if math.Abs(float64(env.Pixels[i]-want)) > float64(want)*0.02+1e-3 {
			t.Errorf("pixel float %d: expected ~%v, got %v", i, want, env.Pixels[i])
		}
	}
	check(0, 4)
	check(1, 2)
	check(2, 1)
	last := (1*4 + 3) * 3
	check(last, 0.5)
	check(last+2, 0.125)

	if math.Abs(float64(env.Mean[0])-4.5/8) > 0.02 {
		t.Errorf("mean red: expected ~%v, got %v", 4.5/8, env.Mean[0])
	}
}

func TestDecodeEnvironmentRejectsGarbage(t *testing.T) {
	if _, err := DecodeEnvironment("junk", bytes.NewReader([]byte("not an hdr file"))); err == nil {
		t.Error("expected an error for non-RGBE input")
	}
}

func TestFetchEnvironment(t *testing.T) {
	payload := encodeTestHDR(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/map.hdr" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	env, err := FetchEnvironment(context.Background(), srv.Client(), srv.URL+"/map.hdr")
	if err != nil {
		t.Fatalf("FetchEnvironment: %v", err)
	}
	if env.Width != 4 {
		t.Errorf("expected width 4, got %d", env.Width)
	}

	if _, err := FetchEnvironment(context.Background(), srv.Client(), srv.URL+"/missing.hdr"); err == nil {
		t.Error("expected an error for a 404")
	}
}

func TestFetchEnvironmentAsyncFailureClosesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ch := FetchEnvironmentAsync(context.Background(), srv.URL, 5*time.Second)
	select {
	case env, ok := <-ch:
		if ok || env != nil {
			t.Errorf("expected channel closed without a value, got %v (ok=%v)", env, ok)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not finish")
	}
}

func TestFetchEnvironmentAsyncDeliversOnce(t *testing.T) {
	payload := encodeTestHDR(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	ch := FetchEnvironmentAsync(context.Background(), srv.URL, 5*time.Second)
	env, ok := <-ch
	if !ok || env == nil {
		t.Fatal("expected an environment map")
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after the single delivery")
	}
}
