package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MemoEditor holds the memo list and validates input before submitting.
type MemoEditor struct {
	api   *Client
	Memos []Memo
}

func NewMemoEditor(api *Client) *MemoEditor {
	return &MemoEditor{api: api}
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"title", "content"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid memo: " + strings.Join(parts, ", ")
}

func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string)}
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "min":
			out.Fields[field] = "must not be empty"
		case "max":
			out.Fields[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			out.Fields[field] = "is invalid"
		}
	}
	return out
}

// Refresh loads memos, or searches them when query is not blank.
func (e *MemoEditor) Refresh(ctx context.Context, query string) error {
	var (
		memos []Memo
		err   error
	)
	if q := strings.TrimSpace(query); q != "" {
		memos, err = e.api.SearchMemos(ctx, q)
	} else {
		memos, err = e.api.ListMemos(ctx, 0, 0)
	}
	if err != nil {
		return err
	}
	e.Memos = memos
	return nil
}

func (e *MemoEditor) Get(ctx context.Context, memoId int64) (*Memo, error) {
	return e.api.GetMemo(ctx, memoId)
}

// Create validates and submits a new memo.
func (e *MemoEditor) Create(ctx context.Context, title, content string) (*Memo, error) {
	in := MemoInput{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	m, err := e.api.CreateMemo(ctx, in)
	if err != nil {
		return nil, err
	}
	e.Memos = append([]Memo{*m}, e.Memos...)
	return m, nil
}

// Update validates and submits changed fields; nil fields are left alone.
func (e *MemoEditor) Update(ctx context.Context, memoId int64, title, content *string) (*Memo, error) {
	in := UpdateMemoInput{Title: trimmed(title), Content: trimmed(content)}
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	m, err := e.api.UpdateMemo(ctx, memoId, in)
	if err != nil {
		return nil, err
	}
	e.replace(*m)
	return m, nil
}

func (e *MemoEditor) Delete(ctx context.Context, memoId int64) error {
	if err := e.api.DeleteMemo(ctx, memoId); err != nil {
		return err
	}
	for i, m := range e.Memos {
		if m.Id == memoId {
			e.Memos = append(e.Memos[:i], e.Memos[i+1:]...)
			break
		}
	}
	return nil
}

func (e *MemoEditor) Regenerate(ctx context.Context, memoId int64) (*Memo, error) {
	m, err := e.api.RegenerateMemoAI(ctx, memoId)
	if err != nil {
		return nil, err
	}
	e.replace(*m)
	return m, nil
}

func (e *MemoEditor) replace(m Memo) {
	for i := range e.Memos {
		if e.Memos[i].Id == m.Id {
			e.Memos[i] = m
			return
		}
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
