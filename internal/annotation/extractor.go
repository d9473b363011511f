// Package annotation parses the field documentation micro-syntax used to
// describe wrapper class fields:
//
//	@type <token>            scalar, object or wrapper type name
//	@type <token>[]          array of <token>
//	@optional                marks the field as optional
//	@className=<identifier>  class referenced by a wrapper field
//
// Any other text in the comment is kept as the field description.
package annotation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-wsdltypes/pkg/introspect"
)

var (
	arrayTypePattern = regexp.MustCompile(`@type (\w*)\[\]`)
	typePattern      = regexp.MustCompile(`@type (\w+)`)
	optionalPattern  = regexp.MustCompile(`@optional`)
	classNamePattern = regexp.MustCompile(`@className=(\S*)`)
	tagStartPattern  = regexp.MustCompile(`(?:^|\s)@(?:type|optional|className)\b`)
)

// Extract parses raw field documentation. A missing `@type` yields the void
// type; an empty or absent comment yields the zero annotation with Type set to
// void.
func Extract(doc string) introspect.Annotation {
	ann := introspect.Annotation{Type: introspect.VoidType}
	if strings.TrimSpace(doc) == "" {
		return ann
	}

	if m := arrayTypePattern.FindStringSubmatch(doc); m != nil {
		ann.Array = true
		if m[1] != "" {
			ann.Type = m[1]
		}
	} else if m := typePattern.FindStringSubmatch(doc); m != nil {
		ann.Type = m[1]
	}

	ann.Optional = optionalPattern.MatchString(doc)
	if m := classNamePattern.FindStringSubmatch(doc); m != nil {
		ann.ClassName = strings.TrimSuffix(m[1], "*/")
	}
	ann.Description = description(doc)
	return ann
}

// description collects the free text of a doc comment, dropping comment
// delimiters and everything from the first recognised tag on each line.
func description(doc string) string {
	var parts []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		if loc := tagStartPattern.FindStringIndex(line); loc != nil {
			line = line[:loc[0]]
		}
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
