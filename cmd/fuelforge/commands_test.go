package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeBackend answers /predict with RON = 90 + the second component's
// share. A 5% blend is answered last.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/predict" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			FuelType string `json:"fuelType"`
			Recipe   []struct {
				Name       string  `json:"name"`
				Percentage float64 `json:"percentage"`
			} `json:"recipe"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Recipe) < 2 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "bad recipe"}`))
			return
		}
		share := req.Recipe[1].Percentage
		if share == 5 {
			time.Sleep(50 * time.Millisecond)
		}
		fmt.Fprintf(w, `{"RON": %g, "MON": 88, "AKI": 91, "Viability_Score": 80, "viability_insight": "Good."}`, 90+share)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeRecipe(t *testing.T, dir, name, fuel string, additive float64) string {
	t.Helper()
	body := fmt.Sprintf(`fuel: %s
components:
  - name: Isooctane
    percentage: %g
  - name: Ethanol
    percentage: %g
`, fuel, 100-additive, additive)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write recipe: %v", err)
	}
	return path
}

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	base := []string{
		"--env", filepath.Join(dir, "missing.env"),
		"--api-url", srv.URL + "/api",
		"--log-file", "stderr",
		"--quiet",
		"--export-dir", filepath.Join(dir, "exports"),
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCompareCommandJSONKeepsArgumentOrder(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	slow := writeRecipe(t, dir, "e5.yaml", "gasoline", 5)
	fast := writeRecipe(t, dir, "e10.yaml", "gasoline", 10)

	out, err := execute(t, srv, "compare", slow, fast, "--format", "json")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	var doc comparisonJSON
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(doc.Columns) != 2 || doc.Columns[0].File != slow || doc.Columns[1].File != fast {
		t.Fatalf("unexpected columns %+v", doc.Columns)
	}
	if doc.Columns[0].Title != "Blend 1" || doc.Columns[0].Summary != "Isooctane + Ethanol" {
		t.Fatalf("unexpected first column %+v", doc.Columns[0])
	}
	var ron *rowJSON
	for i := range doc.Rows {
		if doc.Rows[i].Key == "RON" {
			ron = &doc.Rows[i]
		}
	}
	if ron == nil {
		t.Fatal("RON row missing")
	}
	if ron.Values[0] != "95.00" || ron.Values[1] != "100.00" {
		t.Fatalf("RON values = %v, want [95.00 100.00]", ron.Values)
	}
}

func TestCompareCommandRejectsMixedFuel(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	a := writeRecipe(t, dir, "a.yaml", "gasoline", 10)
	b := writeRecipe(t, dir, "b.yaml", "diesel", 10)

	_, err := execute(t, srv, "compare", a, b)
	if !errors.Is(err, errMixedFuel) {
		t.Fatalf("expected errMixedFuel, got %v", err)
	}
}

func TestCompareCommandRejectsFormat(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	a := writeRecipe(t, dir, "a.yaml", "gasoline", 10)

	_, err := execute(t, srv, "compare", a, a, "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestPredictCommandExports(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	file := writeRecipe(t, dir, "e10.yaml", "gasoline", 10)

	out, err := execute(t, srv, "predict", "-f", file, "--export")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, "Isooctane + Ethanol") {
		t.Fatalf("result view missing recipe summary:\n%s", out)
	}
	idx := strings.Index(out, "Exported ")
	if idx < 0 {
		t.Fatalf("no export line:\n%s", out)
	}
	path := strings.TrimSpace(out[idx+len("Exported "):])
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("export is not a PDF")
	}
	if !strings.HasPrefix(filepath.Base(path), "FuelForge_Report_blend_") {
		t.Fatalf("unexpected export name %s", path)
	}
}

func TestPredictCommandRejectsUnnormalizedRecipe(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := "fuel: gasoline\ncomponents:\n  - name: Isooctane\n    percentage: 60\n  - name: Ethanol\n    percentage: 20\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, srv, "predict", "-f", path); err == nil {
		t.Fatal("expected validation error for an 80% recipe")
	}
}

func TestRadarCommandWritesSVG(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()
	file := writeRecipe(t, dir, "e10.yaml", "gasoline", 10)
	svg := filepath.Join(dir, "out", "radar.svg")

	if _, err := execute(t, srv, "radar", "-f", file, "--svg", svg); err != nil {
		t.Fatalf("radar: %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Fatalf("unexpected svg prefix %q", string(data[:min(20, len(data))]))
	}
}
