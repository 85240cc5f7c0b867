package validate

import (
	"regexp"
	"strings"
)

// BaseTemplateName is the file every other template extends.
const BaseTemplateName = "base.html"

var (
	doctypeRe    = regexp.MustCompile(`(?i)<!DOCTYPE\s+html`)
	htmlTagRe    = regexp.MustCompile(`(?i)<html[\s>]`)
	headOpenRe   = regexp.MustCompile(`(?i)<head[\s>]`)
	headCloseRe  = regexp.MustCompile(`(?i)</head>`)
	bodyOpenRe   = regexp.MustCompile(`(?i)<body[\s>]`)
	bodyCloseRe  = regexp.MustCompile(`(?i)</body>`)
	viewportRe   = regexp.MustCompile(`(?i)<meta[^>]+name=["']viewport["'][^>]*>`)
	extendsRe    = regexp.MustCompile(`\{%\s*extends\s+['"][^'"]+['"]\s*%\}`)
	loadStaticRe = regexp.MustCompile(`\{%\s*load\s+static\s*%\}`)
	blockOpenRe  = regexp.MustCompile(`\{%\s*block\s+\w+\s*%\}`)
	blockCloseRe = regexp.MustCompile(`\{%\s*endblock\s*(?:\w+\s*)?%\}`)
)

// Template validates Django-template-shaped HTML for the given filename and
// returns the valid (possibly repaired) content. On an unrepairable failure
// the returned *Error carries the original, unrepaired content: invalid
// output is never silently passed off as a success.
func Template(filename, content string) (string, error) {
	if err := checkTemplate(filename, content); err != nil {
		repaired := RepairTemplate(filename, content)
		if repairedErr := checkTemplate(filename, repaired); repairedErr != nil {
			return "", &Error{Reason: repairedErr.(*Error).Reason, Content: content}
		}
		return repaired, nil
	}
	return content, nil
}

// checkTemplate runs the structural rules without attempting repair.
func checkTemplate(filename, content string) error {
	if strings.TrimSpace(content) == "" {
		return &Error{Reason: "template content is empty", Content: content}
	}

	if filename == BaseTemplateName {
		switch {
		case !doctypeRe.MatchString(content):
			return &Error{Reason: "base template is missing a doctype declaration", Content: content}
		case !htmlTagRe.MatchString(content):
			return &Error{Reason: "base template is missing an <html> tag", Content: content}
		case !headOpenRe.MatchString(content) || !headCloseRe.MatchString(content):
			return &Error{Reason: "base template is missing a <head> section", Content: content}
		case !bodyOpenRe.MatchString(content) || !bodyCloseRe.MatchString(content):
			return &Error{Reason: "base template is missing a <body> section", Content: content}
		case !viewportRe.MatchString(content):
			return &Error{Reason: "base template is missing a responsive viewport meta tag", Content: content}
		}
	} else {
		extendsLoc := extendsRe.FindStringIndex(content)
		loadLoc := loadStaticRe.FindStringIndex(content)
		switch {
		case extendsLoc == nil:
			return &Error{Reason: "template is missing an {% extends %} tag", Content: content}
		case loadLoc == nil:
			return &Error{Reason: "template is missing a {% load static %} tag", Content: content}
		case extendsLoc[0] > loadLoc[0]:
			return &Error{Reason: "{% extends %} must appear before {% load static %}", Content: content}
		}
	}

	if len(blockOpenRe.FindAllString(content, -1)) != len(blockCloseRe.FindAllString(content, -1)) {
		return &Error{Reason: "unbalanced {% block %}/{% endblock %} tags", Content: content}
	}

	return nil
}

// RepairTemplate attempts one mechanical rewrite of the common structural
// defects in non-base templates: the extends and load-static tags are pulled
// out of wherever the model put them (inserted with defaults when absent)
// and re-emitted at the top in the required order, with the rest of the
// document preserved. Repair is idempotent: repairing already-valid content
// returns it unchanged.
func RepairTemplate(filename, content string) string {
	if filename == BaseTemplateName {
		// Base templates have no mechanical repair: a missing head or
		// viewport tag cannot be conjured without inventing content.
		return content
	}
	if checkTemplate(filename, content) == nil {
		return content
	}

	extendsTag := "{% extends 'base.html' %}"
	if loc := extendsRe.FindStringIndex(content); loc != nil {
		extendsTag = content[loc[0]:loc[1]]
		content = cutTagLine(content, loc)
	}

	loadTag := "{% load static %}"
	if loc := loadStaticRe.FindStringIndex(content); loc != nil {
		loadTag = content[loc[0]:loc[1]]
		content = cutTagLine(content, loc)
	}

	return extendsTag + "\n" + loadTag + "\n" + content
}

// cutTagLine removes content[loc[0]:loc[1]] along with one trailing newline,
// so re-emitting the tag does not leave a blank line behind.
func cutTagLine(content string, loc []int) string {
	end := loc[1]
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return content[:loc[0]] + content[end:]
}
