package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/credits"
	"github.com/rileyblackwell/imagi-oasis/internal/llm"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/projectfs"
	"github.com/rileyblackwell/imagi-oasis/internal/prompt"
	"github.com/rileyblackwell/imagi-oasis/internal/registry"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
	"github.com/rileyblackwell/imagi-oasis/internal/validate"
)

// GenerateRequest carries one generation turn through the pipeline.
type GenerateRequest struct {
	UserID         string
	ConversationID string
	ProjectID      string
	Mode           AgentMode
	Model          string
	Filename       string
	UserInput      string
}

// InsufficientCreditsError reports how many credits the rejected request
// would have needed. It unwraps to app_errors.ErrInsufficientCredits so the
// API layer maps it without knowing the concrete type.
type InsufficientCreditsError struct {
	Required decimal.Decimal
	Balance  decimal.Decimal
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %s, have %s", e.Required, e.Balance)
}

func (e *InsufficientCreditsError) Unwrap() error { return app_errors.ErrInsufficientCredits }

// GenerationService runs the full generation pipeline: credit gate, prompt
// assembly, vendor dispatch, response validation and the atomic exchange
// write. A turn that fails validation costs the user nothing.
type GenerationService struct {
	repo   repository.Repository
	llm    llm.Client
	ledger *credits.Ledger
	loader *projectfs.Loader
	logger *slog.Logger
}

func NewGenerationService(
	repo repository.Repository,
	client llm.Client,
	ledger *credits.Ledger,
	loader *projectfs.Loader,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{repo: repo, llm: client, ledger: ledger, loader: loader, logger: logger}
}

// Generate processes one user turn and returns the validated response.
func (s *GenerationService) Generate(ctx context.Context, req *GenerateRequest) (*model.GenerateResult, error) {
	profile, ok := agentProfiles[req.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown agent mode %q", app_errors.ErrValidation, req.Mode)
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, fmt.Errorf("%w: user input is empty", app_errors.ErrValidation)
	}
	if profile.requiresFile && req.Filename == "" {
		return nil, fmt.Errorf("%w: agent mode %q requires a target file", app_errors.ErrValidation, req.Mode)
	}
	if _, ok := registry.Get(req.Model); !ok {
		return nil, fmt.Errorf("%w: %s", app_errors.ErrUnsupportedModel, req.Model)
	}

	// Step 1: credit gate, before any vendor traffic.
	sufficient, cost, err := s.ledger.Check(ctx, req.UserID, req.Model)
	if err != nil {
		return nil, fmt.Errorf("could not check balance: %w", err)
	}
	if !sufficient {
		balance, _ := s.ledger.Balance(ctx, req.UserID)
		return nil, &InsufficientCreditsError{Required: cost, Balance: balance}
	}

	// Step 2: get or create the conversation.
	conv, err := s.resolveConversation(ctx, req, profile)
	if err != nil {
		return nil, err
	}

	// Step 3: assemble the prompt.
	messages, err := s.buildPrompt(ctx, req, profile, conv)
	if err != nil {
		return nil, err
	}

	// Step 4: dispatch to the vendor.
	resp, err := s.llm.Complete(ctx, &llm.GenerateRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: profile.temperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	// Step 5: validate (and where possible repair) the response. A failure
	// here aborts the turn before anything is persisted or debited.
	content, err := profile.validate(req.Filename, resp.Text)
	if err != nil {
		s.logger.Warn("response failed validation",
			"conversation_id", conv.ID, "model", req.Model, "error", err)
		return nil, fmt.Errorf("%w: %w", app_errors.ErrInvalidResponse, err)
	}

	// Step 6: persist both turns and the debit atomically. The assistant
	// message is stamped strictly after the user message so the pair stays
	// ordered under the ordering index.
	var pageID *string
	if req.Filename != "" {
		page, err := s.repo.GetOrCreatePage(ctx, conv.ID, req.Filename)
		if err != nil {
			return nil, fmt.Errorf("could not resolve page: %w", err)
		}
		pageID = &page.ID
	}

	now := time.Now().UTC()
	userMsg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		PageID:         pageID,
		Role:           model.RoleUser,
		Content:        req.UserInput,
		CreatedAt:      now,
	}
	assistantMsg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		PageID:         userMsg.PageID,
		Role:           model.RoleAssistant,
		Content:        content,
		CreatedAt:      now.Add(time.Millisecond),
	}
	debit := s.ledger.DebitFor(req.UserID, req.Model)
	if err := s.repo.AppendExchange(ctx, conv.ID, userMsg, assistantMsg, debit); err != nil {
		if err == repository.ErrInsufficientCredits {
			// Balance drained between the gate and the commit.
			return nil, &InsufficientCreditsError{Required: cost, Balance: decimal.Zero}
		}
		return nil, fmt.Errorf("could not save exchange: %w", err)
	}

	// Step 7: materialize the file for file-producing agents.
	if req.Filename != "" && req.ProjectID != "" && req.Mode != AgentChat {
		if err := s.loader.WriteFile(req.ProjectID, req.Filename, content); err != nil {
			s.logger.Error("could not write generated file",
				"project_id", req.ProjectID, "filename", req.Filename, "error", err)
		}
	}

	s.logger.Info("generation complete",
		"conversation_id", conv.ID, "model", req.Model, "mode", req.Mode,
		"credits_used", cost)

	return &model.GenerateResult{
		Response:       content,
		ConversationID: conv.ID,
		CreditsUsed:    cost,
	}, nil
}

// resolveConversation loads the request's conversation, or starts a new one
// seeded with the agent's system prompt when no ID was supplied.
func (s *GenerationService) resolveConversation(ctx context.Context, req *GenerateRequest, profile agentProfile) (*model.Conversation, error) {
	if req.ConversationID == "" {
		now := time.Now().UTC()
		conv := &model.Conversation{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.ProjectID != "" {
			conv.ProjectID = &req.ProjectID
		}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("could not create conversation: %w", err)
		}
		if err := s.repo.UpsertSystemPrompt(ctx, conv.ID, profile.systemPrompt); err != nil {
			return nil, fmt.Errorf("could not save system prompt: %w", err)
		}
		return conv, nil
	}

	conv, err := s.repo.GetConversation(ctx, req.ConversationID)
	if err != nil {
		return nil, domainErr(err)
	}
	if conv.UserID != req.UserID {
		return nil, app_errors.ErrNotFound
	}
	return conv, nil
}

// buildPrompt gathers history and project context and hands them to the
// prompt builder in its fixed order.
func (s *GenerationService) buildPrompt(ctx context.Context, req *GenerateRequest, profile agentProfile, conv *model.Conversation) ([]llm.ChatMessage, error) {
	systemPrompt := profile.systemPrompt
	if stored, err := s.repo.GetSystemPrompt(ctx, conv.ID); err == nil && stored.Content != "" {
		systemPrompt = stored.Content
	}

	var contextFiles []model.ProjectFile
	if req.ProjectID != "" {
		if profile.fullProject {
			contextFiles = s.loader.Load(req.ProjectID)
		} else if req.Filename != "" {
			if f, ok := s.loader.LoadFile(req.ProjectID, req.Filename); ok {
				contextFiles = []model.ProjectFile{f}
			}
		}
	}

	history, err := s.repo.GetMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	return prompt.Build(prompt.Input{
		SystemPrompt: systemPrompt,
		ContextFiles: contextFiles,
		History:      history,
		TargetFile:   req.Filename,
		UserInput:    req.UserInput,
	}), nil
}

// Undo removes the most recent exchange for one file of a conversation and
// restores the previous assistant version, re-validated for its format.
func (s *GenerationService) Undo(ctx context.Context, userID, conversationID, filename, projectID string) (*model.UndoResult, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, domainErr(err)
	}
	if conv.UserID != userID {
		return nil, app_errors.ErrNotFound
	}

	page, err := s.repo.GetPage(ctx, conversationID, filename)
	if err != nil {
		if err == repository.ErrNotFound {
			return &model.UndoResult{Message: "nothing to undo"}, nil
		}
		return nil, err
	}

	latest, err := s.repo.GetLatestAssistantMessage(ctx, page.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return &model.UndoResult{Message: "nothing to undo"}, nil
		}
		return nil, err
	}

	toDelete := []string{latest.ID}
	if paired, err := s.repo.GetLatestUserMessageBefore(ctx, page.ID, latest.CreatedAt); err == nil {
		toDelete = append(toDelete, paired.ID)
	} else if err != repository.ErrNotFound {
		return nil, err
	}
	if err := s.repo.DeleteMessages(ctx, toDelete); err != nil {
		return nil, fmt.Errorf("could not delete exchange: %w", err)
	}

	previous, err := s.repo.GetLatestAssistantMessage(ctx, page.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return &model.UndoResult{Message: "no previous version available"}, nil
		}
		return nil, err
	}

	content := previous.Content
	if restored, verr := validatorForFile(filename)(filename, content); verr == nil {
		content = restored
	} else {
		s.logger.Warn("restored version failed validation",
			"conversation_id", conversationID, "filename", filename, "error", verr)
		// Serve the raw prior content rather than losing the version.
		var ve *validate.Error
		if errors.As(verr, &ve) && ve.Content != "" {
			content = ve.Content
		}
	}

	if projectID != "" {
		if err := s.loader.WriteFile(projectID, filename, content); err != nil {
			s.logger.Error("could not write restored file",
				"project_id", projectID, "filename", filename, "error", err)
		}
	}

	s.logger.Info("undo complete", "conversation_id", conversationID, "filename", filename)
	return &model.UndoResult{Content: &content, Message: "restored previous version"}, nil
}
