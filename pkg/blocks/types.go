package blocks

// Type is the kind of a content block.
type Type string

const (
	TypeText         Type = "text"
	TypeHeading1     Type = "heading1"
	TypeHeading2     Type = "heading2"
	TypeHeading3     Type = "heading3"
	TypeBulletList   Type = "bullet_list"
	TypeNumberedList Type = "numbered_list"
	TypeTodo         Type = "todo"
	TypeCode         Type = "code"
	TypeQuote        Type = "quote"
	TypeDivider      Type = "divider"
)

// All lists every block kind in menu order.
var All = []Type{
	TypeText,
	TypeHeading1,
	TypeHeading2,
	TypeHeading3,
	TypeBulletList,
	TypeNumberedList,
	TypeTodo,
	TypeCode,
	TypeQuote,
	TypeDivider,
}

// ValidatorTag is the go-playground "oneof" rule accepting every kind.
const ValidatorTag = "oneof=text heading1 heading2 heading3 bullet_list numbered_list todo code quote divider"

func (t Type) Valid() bool {
	for _, k := range All {
		if k == t {
			return true
		}
	}
	return false
}

func (t Type) IsHeading() bool {
	return t == TypeHeading1 || t == TypeHeading2 || t == TypeHeading3
}

// Label is the human readable name shown in type menus.
func (t Type) Label() string {
	switch t {
	case TypeText:
		return "Text"
	case TypeHeading1:
		return "Heading 1"
	case TypeHeading2:
		return "Heading 2"
	case TypeHeading3:
		return "Heading 3"
	case TypeBulletList:
		return "Bulleted list"
	case TypeNumberedList:
		return "Numbered list"
	case TypeTodo:
		return "To-do"
	case TypeCode:
		return "Code"
	case TypeQuote:
		return "Quote"
	case TypeDivider:
		return "Divider"
	}
	return string(t)
}

// Draft is a block that has not been persisted yet: a kind and its content.
type Draft struct {
	Type    Type
	Content string
}
