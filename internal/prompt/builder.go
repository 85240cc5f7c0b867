// Package prompt assembles the ordered message list sent to a vendor.
//
// The assembly order is a contract, not a convenience: vendor models are
// sensitive to system-prompt placement, and moving file context after the
// conversation replay changes which content the model treats as current.
package prompt

import (
	"fmt"

	"github.com/rileyblackwell/imagi-oasis/internal/llm"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
)

// Input carries everything one generation's prompt is assembled from.
type Input struct {
	// SystemPrompt is the agent-specific system message, always first.
	SystemPrompt string
	// ContextFiles are the project's existing files, injected after the
	// system prompt and before the conversation replay.
	ContextFiles []model.ProjectFile
	// History is the prior conversation, already in creation-time order.
	History []model.Message
	// TargetFile names the file being generated. Empty in plain chat mode:
	// no current-task message and no file tag on the user message.
	TargetFile string
	// UserInput is the caller's instruction, appended last.
	UserInput string
}

// Build produces the final ordered message list:
//
//  1. agent system prompt
//  2. project file snapshots as assistant turns
//  3. prior conversation replay, original roles preserved
//  4. synthetic current-task system message (file modes only)
//  5. the new user message, file-tagged in file modes
func Build(in Input) []llm.ChatMessage {
	messages := make([]llm.ChatMessage, 0, len(in.ContextFiles)+len(in.History)+3)

	if in.SystemPrompt != "" {
		messages = append(messages, llm.ChatMessage{Role: llm.RoleSystem, Content: in.SystemPrompt})
	}

	// File snapshots use the assistant role on purpose: the model treats
	// them as things it already produced rather than as instructions, which
	// keeps continuations consistent with prior output.
	for _, file := range in.ContextFiles {
		messages = append(messages, llm.ChatMessage{
			Role:    llm.RoleAssistant,
			Content: FileTag(file.Path) + "\n" + file.Content,
		})
	}

	for _, msg := range in.History {
		messages = append(messages, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	if in.TargetFile != "" {
		messages = append(messages, llm.ChatMessage{
			Role:    llm.RoleSystem,
			Content: fmt.Sprintf("You are currently working on the file %s. Respond with the complete updated contents of that file.", in.TargetFile),
		})
	}

	userContent := in.UserInput
	if in.TargetFile != "" {
		// The tag keeps multi-file conversations disambiguated on replay.
		userContent = FileTag(in.TargetFile) + "\n" + userContent
	}
	messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: userContent})

	return messages
}

// FileTag is the "[File: name]" marker used both for context snapshots and
// for tagging user messages with their target file.
func FileTag(filename string) string {
	return fmt.Sprintf("[File: %s]", filename)
}
