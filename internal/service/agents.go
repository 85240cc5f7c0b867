package service

import (
	"path"
	"strings"

	"github.com/rileyblackwell/imagi-oasis/internal/validate"
)

// AgentMode selects which generation agent handles a request. Each mode
// carries its own system prompt, sampling temperature, project-context
// policy and output validator.
type AgentMode string

const (
	AgentTemplate    AgentMode = "template"
	AgentStylesheet  AgentMode = "stylesheet"
	AgentChat        AgentMode = "chat"
	AgentApplication AgentMode = "application"
)

const templateSystemPrompt = `You are an expert Django front-end developer. You produce complete,
production-ready Django templates.

Rules:
- Respond with the full contents of the requested template file and nothing else.
- Non-base templates must start with {% extends 'base.html' %} followed by {% load static %}.
- base.html must be a complete HTML5 document with a responsive viewport meta tag.
- Every {% block %} must have a matching {% endblock %}.
- Do not include commentary, explanations or markdown fences.`

const stylesheetSystemPrompt = `You are an expert CSS developer. You produce complete, modern,
responsive stylesheets.

Rules:
- Respond with the full contents of the stylesheet and nothing else.
- Use plain CSS only, no preprocessor syntax.
- Do not include commentary, explanations or markdown fences.`

const chatSystemPrompt = `You are a helpful web development assistant for a Django project.
Answer questions about the project clearly and concisely. When the user
references a file you have been shown, ground your answer in its actual
contents.`

const applicationSystemPrompt = `You are an expert Django developer. You write complete, working
Python application code: views, models, URL configurations and forms.

Rules:
- Respond with the full contents of the requested file and nothing else.
- Follow Django conventions and keep imports minimal.
- Do not include commentary or explanations outside the code.`

// agentProfile is the static behaviour of one agent mode.
type agentProfile struct {
	systemPrompt string
	temperature  float64
	// fullProject loads the whole project tree as context; otherwise
	// only the target file (when one exists) is attached.
	fullProject bool
	// requiresFile rejects requests without a target filename.
	requiresFile bool
	validate     validatorFunc
}

type validatorFunc func(filename, content string) (string, error)

var agentProfiles = map[AgentMode]agentProfile{
	AgentTemplate: {
		systemPrompt: templateSystemPrompt,
		temperature:  0.5,
		fullProject:  true,
		requiresFile: true,
		validate: func(filename, content string) (string, error) {
			if extracted, ok := validate.ExtractFenced(content); ok {
				content = extracted
			}
			return validate.Template(filename, content)
		},
	},
	AgentStylesheet: {
		systemPrompt: stylesheetSystemPrompt,
		temperature:  0.5,
		fullProject:  true,
		requiresFile: true,
		validate: func(_, content string) (string, error) {
			return validate.Stylesheet(content)
		},
	},
	AgentChat: {
		systemPrompt: chatSystemPrompt,
		temperature:  0.7,
		validate: func(_, content string) (string, error) {
			if strings.TrimSpace(content) == "" {
				return "", &validate.Error{Reason: "empty response", Content: content}
			}
			return content, nil
		},
	},
	AgentApplication: {
		systemPrompt: applicationSystemPrompt,
		temperature:  0.5,
		requiresFile: true,
		validate: func(_, content string) (string, error) {
			if extracted, ok := validate.ExtractFenced(content); ok {
				content = extracted
			}
			if strings.TrimSpace(content) == "" {
				return "", &validate.Error{Reason: "empty response", Content: content}
			}
			return content, nil
		},
	},
}

// validatorForFile picks the validator matching a file's format, used when
// restoring prior versions where the original agent mode is not recorded.
func validatorForFile(filename string) validatorFunc {
	switch strings.ToLower(path.Ext(filename)) {
	case ".css":
		return agentProfiles[AgentStylesheet].validate
	case ".html":
		return agentProfiles[AgentTemplate].validate
	default:
		return agentProfiles[AgentApplication].validate
	}
}
