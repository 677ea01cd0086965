package pipeline

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/sink"
)

// Render generates output artifacts in the requested formats.
func Render(body *interlinear.Body, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(body, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(body *interlinear.Body, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return sink.RenderText(body), nil
	case FormatHTML:
		return sink.RenderHTML(body, buildHTMLOptions(body, opts)...), nil
	case FormatANSI:
		return sink.RenderANSI(body, sink.WithANSIProfile(colorProfile(opts.ColorProfile))), nil
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Tokens {
			jsonOpts = append(jsonOpts, sink.WithJSONTokens())
		}
		data, err := sink.RenderJSON(body, jsonOpts...)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		return data, nil
	}
	return nil, ValidateFormat(format)
}

// buildHTMLOptions builds HTML rendering options.
func buildHTMLOptions(body *interlinear.Body, opts Options) []sink.HTMLOption {
	title := opts.Title
	if title == "" {
		title = body.Title
	}
	htmlOpts := []sink.HTMLOption{sink.WithHTMLTitle(title)}
	if opts.Header != "" {
		htmlOpts = append(htmlOpts, sink.WithHTMLHeader(opts.Header))
	}
	if opts.Footer != "" {
		htmlOpts = append(htmlOpts, sink.WithHTMLFooter(opts.Footer))
	}
	if opts.Fragment {
		htmlOpts = append(htmlOpts, sink.WithHTMLFragment())
	}
	return htmlOpts
}

func colorProfile(name string) termenv.Profile {
	switch name {
	case "ascii":
		return termenv.Ascii
	case "ansi":
		return termenv.ANSI
	case "truecolor":
		return termenv.TrueColor
	}
	return termenv.ANSI256
}
