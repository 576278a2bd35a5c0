package io

import (
	"context"
	"fmt"
	stdio "io"
	"net/http"
	"time"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"go.uber.org/zap"

	"kusama-scene/internal/logger"
	"kusama-scene/scene"
)

// DecodeEnvironment reads a Radiance RGBE (.hdr) image into a linear
// float environment map.
func DecodeEnvironment(name string, r stdio.Reader) (*scene.EnvironmentMap, error) {
	img, err := rgbe.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	himg, ok := img.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("decode %s: not a high dynamic range image", name)
	}
	return toEnvironment(name, himg), nil
}

func toEnvironment(name string, img hdr.Image) *scene.EnvironmentMap {
	b := img.Bounds()
	env := &scene.EnvironmentMap{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]float32, 0, b.Dx()*b.Dy()*3),
	}
	var sum [3]float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.HDRAt(x, y).HDRRGBA()
			env.Pixels = append(env.Pixels, float32(r), float32(g), float32(bl))
			sum[0] += r
			sum[1] += g
			sum[2] += bl
		}
	}
	if n := float64(b.Dx() * b.Dy()); n > 0 {
		for i := range sum {
			env.Mean[i] = float32(sum[i] / n)
		}
	}
	return env
}

// FetchEnvironment downloads and decodes an equirectangular HDR map.
// There is no retry.
func FetchEnvironment(ctx context.Context, client *http.Client, url string) (*scene.EnvironmentMap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("environment request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("environment fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("environment fetch: unexpected status %s", resp.Status)
	}
	return DecodeEnvironment(url, resp.Body)
}

// FetchEnvironmentAsync runs FetchEnvironment on its own goroutine. The
// channel yields the map once and is then closed; on failure it is closed
// without a value and the error is logged. The goroutine never touches the
// scene, so the receiver decides when to attach the result.
func FetchEnvironmentAsync(ctx context.Context, url string, timeout time.Duration) <-chan *scene.EnvironmentMap {
	out := make(chan *scene.EnvironmentMap, 1)
	client := &http.Client{Timeout: timeout}

	go func() {
		defer close(out)
		start := time.Now()
		env, err := FetchEnvironment(ctx, client, url)
		if err != nil {
			logger.Log.Warn("environment map unavailable, continuing without it",
				zap.String("url", url), zap.Error(err))
			return
		}
		logger.Log.Info("environment map loaded",
			zap.String("url", url),
			zap.Int("width", env.Width),
			zap.Int("height", env.Height),
			zap.Duration("took", time.Since(start)))
		out <- env
	}()
	return out
}
