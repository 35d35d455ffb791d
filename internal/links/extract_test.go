package links

import "testing"

func TestExtractPreviewFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantTitle string
		wantDesc  string
		wantImage string
		wantSite  string
	}{
		{
			name: "full open graph",
			doc: `<html><head>
				<meta property="og:title" content="OG Title">
				<meta property="og:description" content="OG Desc">
				<meta property="og:image" content="https://img.example/og.png">
				<meta property="og:site_name" content="Example">
				<title>Doc Title</title>
				<meta name="description" content="Meta Desc">
			</head></html>`,
			wantTitle: "OG Title",
			wantDesc:  "OG Desc",
			wantImage: "https://img.example/og.png",
			wantSite:  "Example",
		},
		{
			name: "title tag only",
			doc:  `<html><head><title>Hi</title></head></html>`,
			wantTitle: "Hi",
			wantDesc:  FallbackDescription,
			wantImage: DefaultImage,
		},
		{
			name: "meta description without og",
			doc: `<html><head>
				<title>Page</title>
				<meta name="description" content="Plain description">
			</head></html>`,
			wantTitle: "Page",
			wantDesc:  "Plain description",
			wantImage: DefaultImage,
		},
		{
			name: "twitter image fallback",
			doc: `<html><head>
				<meta name="twitter:image" content="https://img.example/tw.png">
			</head></html>`,
			wantTitle: FallbackTitle,
			wantDesc:  FallbackDescription,
			wantImage: "https://img.example/tw.png",
		},
		{
			name: "twitter image via property attribute",
			doc: `<html><head>
				<meta property="twitter:image" content="https://img.example/tw2.png">
			</head></html>`,
			wantTitle: FallbackTitle,
			wantDesc:  FallbackDescription,
			wantImage: "https://img.example/tw2.png",
		},
		{
			name: "og image wins over twitter",
			doc: `<html><head>
				<meta property="og:image" content="https://img.example/og.png">
				<meta name="twitter:image" content="https://img.example/tw.png">
			</head></html>`,
			wantTitle: FallbackTitle,
			wantDesc:  FallbackDescription,
			wantImage: "https://img.example/og.png",
		},
		{
			name:      "nothing usable",
			doc:       `<html><body><p>hello</p></body></html>`,
			wantTitle: FallbackTitle,
			wantDesc:  FallbackDescription,
			wantImage: DefaultImage,
		},
		{
			name:      "malformed html degrades to fallbacks",
			doc:       `<<<not really html><meta content=`,
			wantTitle: FallbackTitle,
			wantDesc:  FallbackDescription,
			wantImage: DefaultImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ExtractPreview(tt.doc, "https://source.example")
			if err != nil {
				t.Fatalf("ExtractPreview: %v", err)
			}
			if p.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", p.Title, tt.wantTitle)
			}
			if p.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", p.Description, tt.wantDesc)
			}
			if p.Image != tt.wantImage {
				t.Errorf("Image = %q, want %q", p.Image, tt.wantImage)
			}
			if p.SiteName != tt.wantSite {
				t.Errorf("SiteName = %q, want %q", p.SiteName, tt.wantSite)
			}
			if p.SourceURL != "https://source.example" {
				t.Errorf("SourceURL = %q", p.SourceURL)
			}
		})
	}
}

func TestExtractPreviewFirstTitleWins(t *testing.T) {
	doc := `<html><head><title>First</title></head><body><title>Second</title></body></html>`
	p, err := ExtractPreview(doc, "https://s.example")
	if err != nil {
		t.Fatalf("ExtractPreview: %v", err)
	}
	if p.Title != "First" {
		t.Errorf("Title = %q, want First", p.Title)
	}
}
