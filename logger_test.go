// seehuhn.de/go/multiclass - multiclass density map compositing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package multiclass_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"seehuhn.de/go/multiclass"
)

func TestLogger(t *testing.T) {
	if multiclass.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}

	buf := &bytes.Buffer{}
	multiclass.SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer multiclass.SetLogger(nil)

	// an all-zero class triggers the empty domain fallback
	c := &multiclass.Config{
		Width:  3,
		Height: 2,
		Data:   []multiclass.ClassData{{Name: "zero", Values: make([]float64, 6)}},
	}
	run(t, c)

	out := buf.String()
	for _, want := range []string{"msg=tiling", "tiles=6", "level=WARN", "empty value domain"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}

	multiclass.SetLogger(nil)
	if multiclass.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the default")
	}
}
