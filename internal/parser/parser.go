// Package parser extracts frontmatter, wikilinks, tags, and typed inline
// properties from Markdown content.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/laguz/internal/props"
)

var (
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
	tagRe      = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)
)

// Parser bundles the regexes above with a props engine. Construct once with
// New and share; it holds no mutable state.
type Parser struct {
	engine *props.Engine
}

// New creates a Parser.
func New() *Parser {
	return &Parser{engine: props.NewEngine()}
}

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Links       []string
	Tags        []string
	Title       string
	// Props are the inline properties found in the body, in document order.
	Props []props.Property
}

// Parse extracts frontmatter, body, wikilinks, tags, and inline properties
// from raw Markdown bytes.
func (p *Parser) Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	properties := p.engine.Parse(body)

	links := extractLinks(body, properties)
	tags := extractTags(body, fm, properties)
	title := deriveTitle(fm, body)

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Links:       links,
		Tags:        tags,
		Title:       title,
		Props:       properties,
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	// Find end delimiter.
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter — treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	// Body starts after closing delimiter line.
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML — return body only, no error (permissive fallback).
		return nil, string(data), nil
	}

	return fm, body, nil
}

// extractLinks returns deduplicated link targets: wikilinks from the body
// plus @Name relations carried by inline properties.
func extractLinks(body string, properties []props.Property) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(target string) {
		target = strings.TrimSpace(target)
		if target == "" {
			return
		}
		if _, ok := seen[target]; ok {
			return
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}

	for _, m := range wikilinkRe.FindAllStringSubmatch(body, -1) {
		raw := m[1]
		// Handle aliases: [[Target|Alias]] → Target.
		target := raw
		if i := strings.Index(raw, "|"); i >= 0 {
			target = raw[:i]
		}
		add(target)
	}

	for _, pr := range properties {
		switch pr.Value.Kind {
		case props.KindLink:
			add(pr.Value.Text)
		case props.KindLinks:
			for _, name := range pr.Value.Items {
				add(name)
			}
		}
	}

	return out
}

// extractTags collects tags from the frontmatter "tags" field, inline #tags
// in the body, and tag-valued inline properties.
func extractTags(body string, fm map[string]interface{}, properties []props.Property) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	// Tags from frontmatter.
	if fm != nil {
		if raw, ok := fm["tags"]; ok {
			if list, ok := raw.([]interface{}); ok {
				for _, item := range list {
					if s, ok := item.(string); ok {
						add(s)
					}
				}
			}
		}
	}

	// Inline #tags from body.
	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}

	// Tag-valued inline properties.
	for _, pr := range properties {
		if pr.Value.Kind == props.KindTags {
			for _, tag := range pr.Value.Items {
				add(tag)
			}
		}
	}

	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
