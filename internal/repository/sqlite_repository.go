package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rileyblackwell/imagi-oasis/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, user_id, project_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.UserID, conv.ProjectID, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, user_id, project_id, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conv model.Conversation
	var projectID sql.NullString
	err := row.Scan(&conv.ID, &conv.UserID, &projectID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if projectID.Valid {
		conv.ProjectID = &projectID.String
	}
	return &conv, nil
}

func (r *sqliteRepository) GetConversations(ctx context.Context, userID string) ([]*model.Conversation, error) {
	query := "SELECT id, user_id, project_id, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		var projectID sql.NullString
		if err := rows.Scan(&conv.ID, &conv.UserID, &projectID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		if projectID.Valid {
			conv.ProjectID = &projectID.String
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	// Cascades to system_prompts, pages and messages via foreign keys.
	res, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", conversationID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) ClearConversation(ctx context.Context, conversationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("could not delete pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", time.Now().UTC(), conversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) UpsertSystemPrompt(ctx context.Context, conversationID, content string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO system_prompts (id, conversation_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), conversationID, content, now, now)
	return err
}

func (r *sqliteRepository) GetSystemPrompt(ctx context.Context, conversationID string) (*model.SystemPrompt, error) {
	query := "SELECT id, conversation_id, content, created_at, updated_at FROM system_prompts WHERE conversation_id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var sp model.SystemPrompt
	err := row.Scan(&sp.ID, &sp.ConversationID, &sp.Content, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

func (r *sqliteRepository) GetOrCreatePage(ctx context.Context, conversationID, filename string) (*model.Page, error) {
	page, err := r.GetPage(ctx, conversationID, filename)
	if err == nil {
		return page, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	created := &model.Page{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Filename:       filename,
		CreatedAt:      time.Now().UTC(),
	}
	query := `
		INSERT INTO pages (id, conversation_id, filename, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(conversation_id, filename) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, created.ID, created.ConversationID, created.Filename, created.CreatedAt); err != nil {
		return nil, fmt.Errorf("could not insert page: %w", err)
	}
	// Re-read to cover the conflict branch (a concurrent create won the race).
	return r.GetPage(ctx, conversationID, filename)
}

func (r *sqliteRepository) GetPage(ctx context.Context, conversationID, filename string) (*model.Page, error) {
	query := "SELECT id, conversation_id, filename, created_at FROM pages WHERE conversation_id = ? AND filename = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID, filename)

	var page model.Page
	err := row.Scan(&page.ID, &page.ConversationID, &page.Filename, &page.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetMessages replays a conversation in strict timestamp order. The rowid
// tiebreak keeps same-instant pairs in insertion order.
func (r *sqliteRepository) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := `
		SELECT id, conversation_id, page_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// AppendExchange is the single write path for a completed generation. The
// user message, the assistant message, the conversation timestamp bump and
// the conditional balance deduction commit or roll back together.
func (r *sqliteRepository) AppendExchange(ctx context.Context, conversationID string, userMsg, assistantMsg *model.Message, debit *CreditDebit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO messages (id, conversation_id, page_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, msg := range []*model.Message{userMsg, assistantMsg} {
		if msg == nil {
			continue
		}
		_, err = tx.ExecContext(ctx, insertQuery, msg.ID, conversationID, msg.PageID, msg.Role, msg.Content, msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("could not insert %s message: %w", msg.Role, err)
		}
	}

	if debit != nil {
		// Read-check-write under the transaction's write lock (the connection
		// opens transactions with BEGIN IMMEDIATE). Two simultaneous
		// generations for a user with funds for one cannot both pass the
		// check, because the second transaction blocks until the first
		// commits its new balance.
		var raw string
		err := tx.QueryRowContext(ctx, "SELECT balance FROM credit_balances WHERE user_id = ?", debit.UserID).Scan(&raw)
		if err == sql.ErrNoRows {
			return ErrInsufficientCredits
		}
		if err != nil {
			return fmt.Errorf("could not read balance: %w", err)
		}
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("corrupt balance for user %s: %w", debit.UserID, err)
		}
		if balance.LessThan(debit.Amount) {
			return ErrInsufficientCredits
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE credit_balances SET balance = ?, updated_at = ? WHERE user_id = ?",
			balance.Sub(debit.Amount).String(), time.Now().UTC(), debit.UserID,
		)
		if err != nil {
			return fmt.Errorf("could not deduct credits: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", time.Now().UTC(), conversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetLatestAssistantMessage(ctx context.Context, pageID string) (*model.Message, error) {
	query := `
		SELECT id, conversation_id, page_id, role, content, created_at
		FROM messages
		WHERE page_id = ? AND role = 'assistant'
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, pageID)
	msg, err := scanMessage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (r *sqliteRepository) GetLatestUserMessageBefore(ctx context.Context, pageID string, before time.Time) (*model.Message, error) {
	query := `
		SELECT id, conversation_id, page_id, role, content, created_at
		FROM messages
		WHERE page_id = ? AND role = 'user' AND created_at < ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, pageID, before)
	msg, err := scanMessage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (r *sqliteRepository) DeleteMessages(ctx context.Context, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range messageIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id); err != nil {
			return fmt.Errorf("could not delete message %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	row := r.db.QueryRowContext(ctx, "SELECT balance FROM credit_balances WHERE user_id = ?", userID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			// No row yet means a zero balance, not an error: balances are
			// created lazily on the first grant.
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt balance for user %s: %w", userID, err)
	}
	return balance, nil
}

func (r *sqliteRepository) GrantCredits(ctx context.Context, userID string, amount decimal.Decimal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	current := decimal.Zero
	err = tx.QueryRowContext(ctx, "SELECT balance FROM credit_balances WHERE user_id = ?", userID).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// First grant creates the row.
	case err != nil:
		return fmt.Errorf("could not read balance: %w", err)
	default:
		current, err = decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("corrupt balance for user %s: %w", userID, err)
		}
	}

	query := `
		INSERT INTO credit_balances (user_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET balance = excluded.balance, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, userID, current.Add(amount).String(), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not grant credits: %w", err)
	}
	return tx.Commit()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*model.Message, error) {
	var msg model.Message
	var pageID sql.NullString
	if err := row.Scan(&msg.ID, &msg.ConversationID, &pageID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
		return nil, err
	}
	if pageID.Valid {
		msg.PageID = &pageID.String
	}
	return &msg, nil
}
