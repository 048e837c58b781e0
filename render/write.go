// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

//go:embed page.html.tmpl
var pageTemplate string

var tmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	// swatches are drawn by style.Swatch from palette colors.
	"swatch": func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec
}).Parse(pageTemplate))

type view struct {
	*Page
	Info template.HTML
	Data *Page
}

// Write renders the page as a standalone HTML document.
func Write(w io.Writer, page *Page) error {
	v := view{
		Page: page,
		// InfoHTML was checked by mapdef.Definition.Validate.
		Info: template.HTML(page.InfoHTML), //nolint:gosec
		Data: page,
	}

	if err := tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}

	return nil
}

// WriteFile renders the page to path, replacing it atomically. Missing
// parent directories are created.
func WriteFile(path string, page *Page) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = Write(f, page); err != nil {
		return err
	}

	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("error setting permissions: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", f.Name(), err)
	}

	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	return nil
}
