package imagesearch

import (
	"context"
	"errors"
	"testing"
)

// fakeProvider 返回固定结果的提供商
type fakeProvider struct {
	name  string
	data  []byte
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Lookup(context.Context, string) ([]byte, error) {
	p.calls++
	return p.data, p.err
}

func TestChainFallsThroughProviders(t *testing.T) {
	google := &fakeProvider{name: "google", err: ErrNoImage}
	pixabay := &fakeProvider{name: "pixabay", err: errors.New("rate limited")}
	unsplash := &fakeProvider{name: "unsplash", data: []byte("image-bytes")}
	picsum := &fakeProvider{name: "picsum", data: []byte("never-reached")}

	chain := NewChainWithProviders(google, pixabay, unsplash, picsum)

	// 非图示类查询从 pixabay 开始
	data, err := chain.Lookup(context.Background(), "sunset beach photo")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("got %q from wrong provider", data)
	}
	if pixabay.calls != 1 || google.calls != 1 || unsplash.calls != 1 {
		t.Errorf("call counts pixabay=%d google=%d unsplash=%d, want 1 each",
			pixabay.calls, google.calls, unsplash.calls)
	}
	if picsum.calls != 0 {
		t.Errorf("picsum called %d times after earlier hit", picsum.calls)
	}
}

func TestChainDiagramQueriesPreferGoogle(t *testing.T) {
	google := &fakeProvider{name: "google", data: []byte("diagram")}
	pixabay := &fakeProvider{name: "pixabay", data: []byte("photo")}

	chain := NewChainWithProviders(google, pixabay, nil, nil)

	data, err := chain.Lookup(context.Background(), "system architecture diagram")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if string(data) != "diagram" {
		t.Errorf("diagram query got %q, want google result first", data)
	}
	if pixabay.calls != 0 {
		t.Error("pixabay must not be consulted when google hits on a diagram query")
	}
}

func TestChainAllProvidersMiss(t *testing.T) {
	miss := func(name string) *fakeProvider { return &fakeProvider{name: name, err: ErrNoImage} }
	chain := NewChainWithProviders(miss("google"), miss("pixabay"), miss("unsplash"), miss("picsum"))

	if _, err := chain.Lookup(context.Background(), "anything"); err != ErrNoImage {
		t.Fatalf("Lookup() error = %v, want ErrNoImage", err)
	}
}

func TestChainSkipsNilProviders(t *testing.T) {
	picsum := &fakeProvider{name: "picsum", data: []byte("seeded")}
	chain := NewChainWithProviders(nil, nil, nil, picsum)

	data, err := chain.Lookup(context.Background(), "whatever works")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if string(data) != "seeded" {
		t.Errorf("got %q", data)
	}
}
