package prompt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyblackwell/imagi-oasis/internal/llm"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/prompt"
)

func TestBuild_Order(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	in := prompt.Input{
		SystemPrompt: "you are the template agent",
		ContextFiles: []model.ProjectFile{
			{Path: "base.html", Content: "<html>BASE</html>", Type: "html"},
			{Path: "styles.css", Content: ":root{}", Type: "css"},
		},
		History: []model.Message{
			{Role: model.RoleUser, Content: "make a base template", CreatedAt: base},
			{Role: model.RoleAssistant, Content: "<html>BASE</html>", CreatedAt: base.Add(time.Second)},
		},
		TargetFile: "about.html",
		UserInput:  "add an about page",
	}

	messages := prompt.Build(in)
	require.Len(t, messages, 7)

	assert.Equal(t, llm.ChatMessage{Role: "system", Content: "you are the template agent"}, messages[0])
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "[File: base.html]\n<html>BASE</html>", messages[1].Content)
	assert.Equal(t, "assistant", messages[2].Role)
	assert.Equal(t, "[File: styles.css]\n:root{}", messages[2].Content)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "make a base template", messages[3].Content)
	assert.Equal(t, "assistant", messages[4].Role)
	assert.Equal(t, "system", messages[5].Role)
	assert.Contains(t, messages[5].Content, "about.html")
	assert.Equal(t, "user", messages[6].Role)
	assert.Equal(t, "[File: about.html]\nadd an about page", messages[6].Content)
}

func TestBuild_FileMode(t *testing.T) {
	messages := prompt.Build(prompt.Input{
		SystemPrompt: "sys",
		TargetFile:   "index.html",
		UserInput:    "build a landing page",
	})

	require.Len(t, messages, 3)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "system", messages[1].Role)
	assert.Contains(t, messages[1].Content, "index.html")
	assert.Equal(t, "user", messages[2].Role)
	assert.Equal(t, "[File: index.html]\nbuild a landing page", messages[2].Content)
}

func TestBuild_ChatMode(t *testing.T) {
	messages := prompt.Build(prompt.Input{
		SystemPrompt: "sys",
		UserInput:    "what does this page do?",
	})

	// No current-task message and no file tag in chat mode.
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "what does this page do?", messages[1].Content)
}

func TestBuild_EmptyProject(t *testing.T) {
	// First generation for a project: no context files, no history. The
	// prompt still carries system + current-task + user messages.
	messages := prompt.Build(prompt.Input{
		SystemPrompt: "sys",
		TargetFile:   "base.html",
		UserInput:    "create the base template",
	})

	require.Len(t, messages, 3)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "system", messages[1].Role)
	assert.Equal(t, "user", messages[2].Role)
}

func TestBuild_HistoryOrderPreserved(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	history := []model.Message{
		{Role: model.RoleUser, Content: "first", CreatedAt: base},
		{Role: model.RoleAssistant, Content: "second", CreatedAt: base.Add(time.Second)},
		{Role: model.RoleUser, Content: "third", CreatedAt: base.Add(2 * time.Second)},
	}

	messages := prompt.Build(prompt.Input{SystemPrompt: "sys", History: history, UserInput: "next"})

	require.Len(t, messages, 5)
	assert.Equal(t, "first", messages[1].Content)
	assert.Equal(t, "second", messages[2].Content)
	assert.Equal(t, "third", messages[3].Content)
	assert.Equal(t, "next", messages[4].Content)
}
