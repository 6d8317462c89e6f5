package cloudinary

import (
	"context"
	"testing"

	"github.com/srinibas-vastra/backend/internal/config"
)

func testClient() *Client {
	return NewClient(&config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		UploadFolder:        "product-images",
		StagingFolder:       "staging",
	})
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned delivery URL",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/staging/user-1/pan-front.jpg",
			"staging/user-1/pan-front",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/product-images/owner/saree.png",
			"product-images/owner/saree",
		},
		{
			"dot in folder name is not an extension",
			"https://res.cloudinary.com/demo/image/upload/v1/shop.v2/image",
			"shop.v2/image",
		},
		{"no upload segment", "https://example.com/foo/bar.jpg", ""},
		{"not a URL", "://broken", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PublicIDFromURL(tc.url); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCommitPassesThroughNonStagedURLs(t *testing.T) {
	c := testClient()

	committed := "https://res.cloudinary.com/demo/image/upload/v1/seller-docs/owner/pan-front.jpg"
	got, err := c.Commit(context.Background(), committed, "owner")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got != committed {
		t.Fatalf("already-committed URL must pass through, got %q", got)
	}

	foreign := "https://example.com/not-hosted.jpg"
	got, err = c.Commit(context.Background(), foreign, "owner")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got != foreign {
		t.Fatalf("foreign URL must pass through, got %q", got)
	}
}

func TestSignIsSortedAndStable(t *testing.T) {
	c := testClient()

	a := c.sign(map[string]string{"timestamp": "100", "public_id": "x"})
	b := c.sign(map[string]string{"public_id": "x", "timestamp": "100"})
	if a != b {
		t.Fatalf("signature must not depend on map order")
	}
	if a == c.sign(map[string]string{"public_id": "y", "timestamp": "100"}) {
		t.Fatalf("signature must depend on parameter values")
	}
}

func TestConfigured(t *testing.T) {
	if !testClient().Configured() {
		t.Fatalf("expected fully configured client")
	}
	if NewClient(&config.Config{}).Configured() {
		t.Fatalf("expected unconfigured client")
	}
}
