// Command export renders every scenario in the testcases package to a PNG
// file under testdata/scenarios.  Strategies which produce one plane per
// class write one file per plane.
// Run from the module root directory.
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/paint"
	"seehuhn.de/go/multiclass/testcases"
)

const outDir = "testdata/scenarios"

func main() {
	multiclass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := export(name, tc); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
				os.Exit(1)
			}
		}
	}
}

func export(name string, tc testcases.TestCase) error {
	ip, err := multiclass.New(tc.Config, nil)
	if err != nil {
		return err
	}
	res, err := ip.Run(context.Background())
	if err != nil {
		return err
	}

	if res.Planes != nil {
		for i, img := range paint.Planes(res) {
			fname := fmt.Sprintf("%s_%d.png", name, i)
			if err := writePNG(filepath.Join(outDir, fname), img); err != nil {
				return err
			}
		}
		return nil
	}
	return writePNG(filepath.Join(outDir, name+".png"), paint.Image(res))
}

func writePNG(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
