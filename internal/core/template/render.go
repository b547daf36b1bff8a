// Copyright (c) 2026 Raytha. All rights reserved.

package template

import (
	"fmt"
	htmltemplate "html/template"
	"regexp"
	"strings"
	texttemplate "text/template"
)

// variablePattern matches {{ Category.Path.Segments }} placeholders.
// Paths may contain hyphens because field developer names do.
var variablePattern = regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_-]*(?:\.[A-Za-z0-9_-]+)*)\s*\}\}`)

/*
RenderWeb renders a web template's content against a variable payload.

Description: Placeholders like {{ ContentItem.PublishedContent.title }} are
resolved against a nested map payload. Resolution is forgiving: a path that
does not exist renders as an empty string rather than failing the page.
Values are HTML-escaped; a template is user content, its data doubly so.

Parameters:
  - content: string (Template source)
  - data: map[string]any (Nested variable payload)

Returns:
  - string: The rendered output
  - error: Template syntax errors only
*/
func RenderWeb(content string, data map[string]any) (string, error) {
	parsed, err := htmltemplate.New("web").Funcs(htmltemplate.FuncMap{
		"resolve": resolvePath,
	}).Parse(rewriteVariables(content))
	if err != nil {
		return "", fmt.Errorf("template: parse: %w", err)
	}

	var builder strings.Builder
	if err := parsed.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("template: execute: %w", err)
	}
	return builder.String(), nil
}

// RenderEmail renders an email template's subject and body without HTML
// escaping.
func RenderEmail(subject, content string, data map[string]any) (renderedSubject, renderedContent string, err error) {
	renderedSubject, err = renderText("subject", subject, data)
	if err != nil {
		return "", "", err
	}
	renderedContent, err = renderText("content", content, data)
	if err != nil {
		return "", "", err
	}
	return renderedSubject, renderedContent, nil
}

func renderText(name, content string, data map[string]any) (string, error) {
	parsed, err := texttemplate.New(name).Funcs(texttemplate.FuncMap{
		"resolve": resolvePath,
	}).Parse(rewriteVariables(content))
	if err != nil {
		return "", fmt.Errorf("template: parse %s: %w", name, err)
	}

	var builder strings.Builder
	if err := parsed.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("template: execute %s: %w", name, err)
	}
	return builder.String(), nil
}

// rewriteVariables converts {{ A.B.C }} placeholders into resolve calls so
// hyphenated developer names and missing paths both work.
func rewriteVariables(content string) string {
	return variablePattern.ReplaceAllStringFunc(content, func(match string) string {
		path := variablePattern.FindStringSubmatch(match)[1]

		var builder strings.Builder
		builder.WriteString(`{{resolve .`)
		for _, segment := range strings.Split(path, ".") {
			builder.WriteString(fmt.Sprintf(" %q", segment))
		}
		builder.WriteString(`}}`)
		return builder.String()
	})
}

// resolvePath walks a nested map payload segment by segment.
//
// A terminal map holding a Value key (the raw/Text pair of choice and
// relationship fields) unwraps to its raw value, so the base path and the
// .Text path both resolve. Unknown segments resolve to "".
func resolvePath(data map[string]any, segments ...string) any {
	var current any = data

	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = node[segment]
		if !ok {
			return ""
		}
	}

	if node, ok := current.(map[string]any); ok {
		if raw, found := node["Value"]; found {
			return raw
		}
	}
	return current
}
