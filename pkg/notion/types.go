package notion

import (
	"encoding/json"
	"fmt"
)

type RichText struct {
	PlainText string `json:"plain_text"`
}

type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

type Property struct {
	Type  string     `json:"type"`
	Title []RichText `json:"title,omitempty"`
}

type Page struct {
	Object     string              `json:"object"`
	Id         string              `json:"id"`
	Icon       *Icon               `json:"icon"`
	Properties map[string]Property `json:"properties"`
}

// BlockData is the type-specific payload of a block. Only the fields the
// importer reads are decoded.
type BlockData struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Language string     `json:"language"`
}

type Block struct {
	Id          string
	Type        string
	HasChildren bool
	Data        BlockData
}

func (b *Block) UnmarshalJSON(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	var head struct {
		Id          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return err
	}
	b.Id = head.Id
	b.Type = head.Type
	b.HasChildren = head.HasChildren
	b.Data = BlockData{}

	if data, ok := fields[head.Type]; ok && len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &b.Data); err != nil {
			return fmt.Errorf("decode %s block: %w", head.Type, err)
		}
	}
	return nil
}

type childrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// APIError is the error object returned by the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion api error: status %d, code %s: %s", e.Status, e.Code, e.Message)
}

const CodeObjectNotFound = "object_not_found"
