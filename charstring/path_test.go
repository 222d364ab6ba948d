// SPDX-License-Identifier: GPL-3.0-or-later

package charstring

import "testing"

func TestPathSVG(t *testing.T) {
	var p Path
	p.moveTo(0, 0)
	p.lineTo(100, 100)
	p.curveTo(110, 120, 130, 140, 150, 100)
	p.closePath()

	want := "M 0,0 L 100,100 C 110,120 130,140 150,100 Z"
	if got := p.SVG(); got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
}

func TestPathSVGEmpty(t *testing.T) {
	var p Path
	if got := p.SVG(); got != "" {
		t.Errorf("SVG() = %q, want empty", got)
	}
}
