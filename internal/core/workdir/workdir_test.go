package workdir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_Temporary(t *testing.T) {
	ctx := SolverContext{Label: "SolverA", DocumentName: "Beam"}

	first, err := Resolve(ctx, Temporary, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !first.Created {
		t.Error("Expected Created = true for temp dir")
	}
	if !strings.HasPrefix(filepath.Base(first.Path), TempPrefix) {
		t.Errorf("Expected %q prefix, got %s", TempPrefix, first.Path)
	}
	if !DirectoryExists(first.Path) {
		t.Errorf("Temp dir %s does not exist", first.Path)
	}
	defer func() { _ = os.RemoveAll(first.Path) }()

	// Successive calls must yield distinct directories
	second, err := Resolve(ctx, Temporary, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	defer func() { _ = os.RemoveAll(second.Path) }()
	if first.Path == second.Path {
		t.Errorf("Expected unique temp dirs, both calls returned %s", first.Path)
	}
}

func TestResolve_Beside(t *testing.T) {
	docDir := t.TempDir()
	docPath := filepath.Join(docDir, "model.FCStd")

	ctx := SolverContext{Label: "SolverA", DocumentName: "model", DocumentPath: docPath}
	res, err := Resolve(ctx, Beside, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Warning != nil {
		t.Errorf("Unexpected warning: %v", res.Warning)
	}

	want := filepath.Join(docDir, "model", "SolverA")
	if res.Path != want {
		t.Errorf("Expected %s, got %s", want, res.Path)
	}
	if !res.Created {
		t.Error("Expected Created = true on first resolution")
	}
	if !DirectoryExists(res.Path) {
		t.Errorf("Directory %s was not created", res.Path)
	}

	// Second resolution with identical inputs must succeed and not
	// re-create
	again, err := Resolve(ctx, Beside, "")
	if err != nil {
		t.Fatalf("Second Resolve() error = %v", err)
	}
	if again.Path != want {
		t.Errorf("Expected stable path %s, got %s", want, again.Path)
	}
	if again.Created {
		t.Error("Expected Created = false on repeated resolution")
	}
}

func TestResolve_BesideUnsaved(t *testing.T) {
	ctx := SolverContext{Label: "SolverA", DocumentName: "Unsaved"}

	res, err := Resolve(ctx, Beside, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil (recoverable condition)", err)
	}
	defer func() { _ = os.RemoveAll(res.Path) }()

	var warn *MustSaveDocument
	if !errors.As(res.Warning, &warn) {
		t.Fatalf("Expected MustSaveDocument warning, got %v", res.Warning)
	}
	if warn.Fallback != res.Path {
		t.Errorf("Warning fallback %s != resolved path %s", warn.Fallback, res.Path)
	}
	if !strings.HasPrefix(filepath.Base(res.Path), TempPrefix) {
		t.Errorf("Fallback should be a temp dir, got %s", res.Path)
	}
	if !DirectoryExists(res.Path) {
		t.Errorf("Fallback dir %s does not exist", res.Path)
	}
}

func TestResolve_Custom(t *testing.T) {
	base := t.TempDir()
	ctx := SolverContext{Label: "CalculiX", DocumentName: "Beam"}

	res, err := Resolve(ctx, Custom, base)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := filepath.Join(base, "Beam", "CalculiX")
	if res.Path != want {
		t.Errorf("Expected %s, got %s", want, res.Path)
	}
	if !DirectoryExists(res.Path) {
		t.Errorf("Directory %s was not created", res.Path)
	}

	// Idempotent
	again, err := Resolve(ctx, Custom, base)
	if err != nil {
		t.Fatalf("Second Resolve() error = %v", err)
	}
	if again.Path != want || again.Created {
		t.Errorf("Expected stable existing path, got %+v", again)
	}
}

func TestResolve_CustomMissingBase(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")
	ctx := SolverContext{Label: "SolverA", DocumentName: "Beam"}

	res, err := Resolve(ctx, Custom, missing)
	if !errors.Is(err, ErrDirectoryDoesNotExist) {
		t.Fatalf("Expected ErrDirectoryDoesNotExist, got %v", err)
	}
	if res.Path != "" {
		t.Errorf("Expected empty path on failure, got %s", res.Path)
	}
	// No fallback creation happened
	if DirectoryExists(missing) {
		t.Error("Missing base must not be created")
	}
}

func TestResolve_Unknown(t *testing.T) {
	ctx := SolverContext{Label: "SolverA", DocumentName: "Beam"}

	res, err := Resolve(ctx, Unknown, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if res.Path != "" || res.Created || res.Warning != nil {
		t.Errorf("Expected empty result for Unknown mode, got %+v", res)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"temporary", Temporary},
		{"temp", Temporary},
		{"Beside", Beside},
		{" custom ", Custom},
		{"", Unknown},
		{"network", Unknown},
	}
	for _, c := range cases {
		if got := ParseMode(c.in); got != c.want {
			t.Errorf("ParseMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	if !DirectoryExists(dir) {
		t.Errorf("Expected %s to exist", dir)
	}
	if DirectoryExists(filepath.Join(dir, "gone")) {
		t.Error("Expected missing path to report false")
	}

	// A regular file is not a directory
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if DirectoryExists(file) {
		t.Error("Expected file path to report false")
	}
}
