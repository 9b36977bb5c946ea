package descriptor

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	d, err := Resolve("/kbd/A/A/EMO/A/1.webp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if d.BucketName != "kbd" {
		t.Errorf("Expected bucket kbd, got %s", d.BucketName)
	}
	if d.ImagePath != "A/A/EMO/A/1.webp" {
		t.Errorf("Expected image path A/A/EMO/A/1.webp, got %s", d.ImagePath)
	}
	if d.ConfigDir != "A/A/EMO" {
		t.Errorf("Expected config dir A/A/EMO, got %s", d.ConfigDir)
	}
	if d.FolderName != "A" {
		t.Errorf("Expected folder name A, got %s", d.FolderName)
	}
	if d.ConfigKey != "A/A/EMO/A.json" {
		t.Errorf("Expected config key A/A/EMO/A.json, got %s", d.ConfigKey)
	}
}

func TestResolveShallowestValidPath(t *testing.T) {
	// Exactly bucket + folder + file: config dir is empty, descriptor at bucket root.
	d, err := Resolve("/assets/cards/hero.png")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if d.ConfigDir != "" {
		t.Errorf("Expected empty config dir, got %q", d.ConfigDir)
	}
	if d.ConfigKey != "cards.json" {
		t.Errorf("Expected config key cards.json, got %s", d.ConfigKey)
	}
	if d.FontKey("custom.ttf") != "fonts/custom.ttf" {
		t.Errorf("Expected font key fonts/custom.ttf, got %s", d.FontKey("custom.ttf"))
	}
}

func TestResolveIgnoresEmptySegments(t *testing.T) {
	d, err := Resolve("//kbd//A/A//1.webp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if d.BucketName != "kbd" {
		t.Errorf("Expected bucket kbd, got %s", d.BucketName)
	}
	if d.ImagePath != "A/A/1.webp" {
		t.Errorf("Expected image path A/A/1.webp, got %s", d.ImagePath)
	}
}

func TestResolveMalformedPaths(t *testing.T) {
	badPaths := []string{
		"",
		"/",
		"/bucket",
		"/bucket/file.png",
		"/bucket//file.png",
	}

	for _, p := range badPaths {
		_, err := Resolve(p)
		if err == nil {
			t.Errorf("Expected error for path %q, got none", p)
			continue
		}
		var mpe *MalformedPathError
		if !errors.As(err, &mpe) {
			t.Errorf("Expected MalformedPathError for %q, got %T", p, err)
		}
	}
}

func TestFontKey(t *testing.T) {
	d, err := Resolve("/kbd/A/A/EMO/A/1.webp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := d.FontKey("brand.otf"); got != "A/A/EMO/fonts/brand.otf" {
		t.Errorf("Expected A/A/EMO/fonts/brand.otf, got %s", got)
	}
}
