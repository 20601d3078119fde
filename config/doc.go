// Package config loads outline definitions from HCL files.
//
// A file declares units, named points and outlines:
//
//	units {
//	  kx = 19
//	  ky = kx - 1
//	}
//
//	point "thumb" {
//	  x      = 0
//	  y      = -ky
//	  r      = 15
//	  bind   = [5, 0, 5, 0]
//	  tags   = ["key"]
//	  mirror = 100 # also registers mirror_thumb across x = 100
//	}
//
//	outline "plate" {
//	  part "main" {
//	    what  = "rectangle"
//	    size  = [kx, ky]
//	    where = true
//	  }
//	  part "cut" {
//	    ref = "-screw" # shorthand part
//	  }
//	}
//
// Units are evaluated in declaration order and may use earlier units.
// Point coordinates are evaluated when loading. Part attributes that refer
// to units stay lazy (see units.Expr) because shapes add units of their own,
// such as sx, sy and r.
package config
