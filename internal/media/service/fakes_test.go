package service

import (
	"context"
	"sync"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

type fakeFetcher struct {
	mu     sync.Mutex
	assets map[string][]domain.RemoteAsset
	errs   map[string]error
	calls  map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		assets: make(map[string][]domain.RemoteAsset),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeFetcher) FetchResources(_ context.Context, folder string) ([]domain.RemoteAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[folder]++
	if err := f.errs[folder]; err != nil {
		return nil, err
	}
	return f.assets[folder], nil
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeFetcher) set(folder string, assets ...domain.RemoteAsset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets[folder] = assets
}

func (f *fakeFetcher) fail(folder string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[folder] = err
}

type fakeCache struct {
	mu         sync.Mutex
	records    domain.Records
	stale      bool
	readEmpty  bool
	writeErr   error
	writes     int
	thresholds []time.Duration
}

func (c *fakeCache) ReadAll(context.Context) domain.Records {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readEmpty || c.records == nil {
		return domain.Records{}
	}
	return c.records.Clone()
}

func (c *fakeCache) WriteAll(_ context.Context, records domain.Records) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.writeErr != nil {
		return c.writeErr
	}
	c.records = records.Clone()
	c.stale = false
	c.readEmpty = false
	return nil
}

func (c *fakeCache) IsStale(_ context.Context, threshold time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thresholds = append(c.thresholds, threshold)
	return c.stale
}

func (c *fakeCache) snapshot() (domain.Records, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records.Clone(), c.writes
}

func image(publicID string, w, h int) domain.RemoteAsset {
	return domain.RemoteAsset{
		PublicID:  publicID,
		Format:    "png",
		Width:     w,
		Height:    h,
		Tags:      []string{},
		SecureURL: "https://cdn/" + publicID + ".png",
	}
}
