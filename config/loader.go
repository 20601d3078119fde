package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/units"
)

// File is a loaded definition, ready for outline.Generate.
type File struct {
	Units  units.Units
	Points *anchor.Registry
	Config outline.Config
}

// fileRoot decodes the top-level blocks of one file.
type fileRoot struct {
	Units    []*bodyBlock    `hcl:"units,block"`
	Points   []*namedBlock   `hcl:"point,block"`
	Outlines []*outlineBlock `hcl:"outline,block"`
}

type bodyBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type namedBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type outlineBlock struct {
	Name  string        `hcl:"name,label"`
	Parts []*namedBlock `hcl:"part,block"`
}

// pointAttrs are decoded with the units in scope.
type pointAttrs struct {
	X      float64        `hcl:"x,optional"`
	Y      float64        `hcl:"y,optional"`
	R      float64        `hcl:"r,optional"`
	Bind   hcl.Expression `hcl:"bind,optional"`
	Tags   []string       `hcl:"tags,optional"`
	Mirror *float64       `hcl:"mirror,optional"`
}

// Load parses every .hcl file found at paths. Directories are walked
// recursively and files are read in lexical order.
func Load(paths ...string) (*File, error) {
	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}

	parser := hclparse.NewParser()
	roots := make([]*fileRoot, 0, len(files))
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		root, err := decodeRoot(f, file)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return build(roots)
}

// Parse loads a single definition from memory. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	root, err := decodeRoot(f, filename)
	if err != nil {
		return nil, err
	}
	return build([]*fileRoot{root})
}

func decodeRoot(f *hcl.File, filename string) (*fileRoot, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &root, nil
}

func build(roots []*fileRoot) (*File, error) {
	out := &File{Points: anchor.NewRegistry()}

	for _, root := range roots {
		for _, b := range root.Units {
			u, err := decodeUnits(b.Body, out.Units)
			if err != nil {
				return nil, err
			}
			out.Units = u
		}
	}
	for _, root := range roots {
		for _, b := range root.Points {
			if err := decodePoint(b, out.Units, out.Points); err != nil {
				return nil, err
			}
		}
	}
	for _, root := range roots {
		for _, b := range root.Outlines {
			decl, err := decodeOutline(b, out.Units)
			if err != nil {
				return nil, err
			}
			out.Config.Outlines = append(out.Config.Outlines, decl)
		}
	}

	outline.Logger().Debug("HCL loading complete.",
		"units", out.Units.Len(), "points", out.Points.Len(), "outlines", len(out.Config.Outlines))
	return out, nil
}

// decodeUnits evaluates unit attributes in source order, each against the
// units defined before it.
func decodeUnits(body hcl.Body, u units.Units) (units.Units, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return u, fmt.Errorf("failed to decode units: %w", diags)
	}
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})
	for _, a := range ordered {
		v, err := units.FromHCL(a.Expr).Number(u)
		if err != nil {
			return u, fmt.Errorf("unit %q at %s: %w", a.Name, a.Range, err)
		}
		u = u.Extend(map[string]float64{a.Name: v})
	}
	return u, nil
}

func decodePoint(b *namedBlock, u units.Units, reg *anchor.Registry) error {
	var attrs pointAttrs
	if diags := gohcl.DecodeBody(b.Body, u.Context(), &attrs); diags.HasErrors() {
		return fmt.Errorf("failed to decode point %q: %w", b.Name, diags)
	}
	bind, err := lazy(attrs.Bind, u)
	if err != nil {
		return fmt.Errorf("point %q bind: %w", b.Name, err)
	}
	p := &anchor.Point{
		X: attrs.X,
		Y: attrs.Y,
		R: attrs.R,
		Meta: anchor.Meta{
			Name: b.Name,
			Bind: bind,
			Tags: attrs.Tags,
		},
	}
	if attrs.Mirror != nil {
		return reg.AddMirrored(p, *attrs.Mirror)
	}
	return reg.Add(p)
}

func decodeOutline(b *outlineBlock, u units.Units) (outline.Declaration, error) {
	decl := outline.Declaration{Name: b.Name}
	for _, pb := range b.Parts {
		attrs, diags := pb.Body.JustAttributes()
		if diags.HasErrors() {
			return decl, fmt.Errorf("failed to decode part %s.%s: %w", b.Name, pb.Name, diags)
		}
		values := make(map[string]any, len(attrs))
		for name, a := range attrs {
			v, err := lazy(a.Expr, u)
			if err != nil {
				return decl, fmt.Errorf("part %s.%s attribute %q: %w", b.Name, pb.Name, name, err)
			}
			values[name] = v
		}

		part := outline.Part{Name: pb.Name, Value: values}
		if ref, ok := values["ref"]; ok {
			s, isString := ref.(string)
			if len(values) != 1 || !isString {
				return decl, fmt.Errorf("part %s.%s: ref must be the only attribute and a string", b.Name, pb.Name)
			}
			part.Value = s
		}
		decl.Parts = append(decl.Parts, part)
	}
	return decl, nil
}

// lazy evaluates constant expressions now and keeps expressions that refer
// to units for later.
func lazy(expr hcl.Expression, u units.Units) (any, error) {
	if expr == nil {
		return nil, nil
	}
	e := units.FromHCL(expr)
	if len(e.Variables()) > 0 {
		return e, nil
	}
	return e.Native(u)
}

// findHCLFiles walks paths and returns every .hcl file once, sorted.
// Missing paths are skipped.
func findHCLFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}
