package blocks

import "strings"

const (
	todoChecked   = "[x] "
	todoUnchecked = "[ ] "
	codeFence     = "```"

	// DividerContent is the stored content of a divider block.
	DividerContent = "---"
)

// ParseTodo splits todo content into its checkbox state and text.
// Content without a checkbox prefix is an unchecked item.
func ParseTodo(content string) (checked bool, text string) {
	switch {
	case strings.HasPrefix(content, todoChecked), strings.HasPrefix(content, "[X] "):
		return true, content[len(todoChecked):]
	case strings.HasPrefix(content, todoUnchecked):
		return false, content[len(todoUnchecked):]
	case content == "[x]" || content == "[X]":
		return true, ""
	case content == "[ ]":
		return false, ""
	}
	return false, content
}

// FormatTodo encodes a checkbox state as a content prefix.
func FormatTodo(checked bool, text string) string {
	if checked {
		return todoChecked + text
	}
	return todoUnchecked + text
}

// ToggleTodo flips the checkbox state of todo content.
func ToggleTodo(content string) string {
	checked, text := ParseTodo(content)
	return FormatTodo(!checked, text)
}

// ParseCode unwraps a fenced code body. Unfenced content is returned as is
// with an empty language.
func ParseCode(content string) (language, code string) {
	if !strings.HasPrefix(content, codeFence) {
		return "", content
	}
	body := strings.TrimPrefix(content, codeFence)
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return "", content
	}
	language = strings.TrimSpace(body[:nl])
	body = body[nl+1:]
	if !strings.HasSuffix(body, codeFence) {
		return "", content
	}
	code = strings.TrimSuffix(strings.TrimSuffix(body, codeFence), "\n")
	return language, code
}

// FormatCode wraps code in a fence when a language is known.
func FormatCode(language, code string) string {
	if language == "" {
		return code
	}
	return codeFence + language + "\n" + code + "\n" + codeFence
}
