package main

import (
	"bytes"
	"flag"
	"os"
	"text/template"

	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/commands"
	"github.com/keshon/abyss/internal/logging"
	v "github.com/keshon/abyss/internal/version"
	"github.com/keshon/abyss/pkg/cmd"
)

func main() {
	tmplPath := flag.String("template", "README.md.tmpl", "README template")
	outPath := flag.String("out", "README.md", "output file")
	prefix := flag.String("prefix", "a!", "command prefix shown in usage")
	flag.Parse()

	log := logging.Fallback()
	if err := build(*tmplPath, *outPath, *prefix); err != nil {
		log.Fatal("failed to build README", zap.Error(err))
	}
	log.Info("README updated", zap.String("path", *outPath))
}

func build(tmplPath, outPath, prefix string) error {
	tmplData, err := os.ReadFile(tmplPath)
	if err != nil {
		return err
	}
	tmpl, err := template.New("readme").Parse(string(tmplData))
	if err != nil {
		return err
	}

	// the catalog is never called while rendering
	reg := cmd.NewRegistry()
	commands.Register(reg, commands.Deps{Prefix: prefix, Catalog: spotify.New("", "")})

	var out bytes.Buffer
	err = tmpl.Execute(&out, map[string]any{
		"AppName":         v.AppName,
		"Prefix":          prefix,
		"CommandSections": commands.Markdown(reg, prefix),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}
